package service

import (
	"context"
	"strings"
	"testing"

	"shopping-chat-be/internal/dto"
	"shopping-chat-be/pkg/apperrors"
	"shopping-chat-be/pkg/assistant"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type recordingHandler struct {
	page  assistant.Page
	calls int
}

func (h *recordingHandler) Handle(ctx context.Context, query string, contextData map[string]interface{}) (*assistant.Outcome, error) {
	h.calls++
	switch h.page {
	case assistant.PageSettings:
		return &assistant.Outcome{
			Page:     assistant.PageSettings,
			Settings: &assistant.SettingsResult{Message: "settings reply"},
		}, nil
	default:
		return &assistant.Outcome{
			Page:      assistant.PageDashboard,
			Dashboard: &assistant.DashboardResult{Message: "dashboard reply"},
		}, nil
	}
}

func newTestChatService(maxQueryLength int) (IChatService, *recordingHandler, *recordingHandler) {
	dashboardHandler := &recordingHandler{page: assistant.PageDashboard}
	settingsHandler := &recordingHandler{page: assistant.PageSettings}

	registry := assistant.NewRegistry()
	registry.Register(assistant.PageDashboard, dashboardHandler)
	registry.Register(assistant.PageSettings, settingsHandler)

	return NewChatService(registry, maxQueryLength, noopLogger{}), dashboardHandler, settingsHandler
}

func TestProcessUnifiedRoutesByPage(t *testing.T) {
	svc, dashboardHandler, settingsHandler := newTestChatService(500)

	res, err := svc.ProcessUnified(context.Background(), &dto.UnifiedChatRequest{
		Query:    "what's my email?",
		Metadata: &dto.ChatMetadata{Page: "settings"},
	})
	if err != nil {
		t.Fatalf("ProcessUnified() error = %v", err)
	}
	if settingsHandler.calls != 1 || dashboardHandler.calls != 0 {
		t.Errorf("calls: settings=%d dashboard=%d", settingsHandler.calls, dashboardHandler.calls)
	}
	settingsRes, ok := res.(*dto.SettingsChatResponse)
	if !ok {
		t.Fatalf("response type = %T, want SettingsChatResponse", res)
	}
	if settingsRes.GeneralResponse != "settings reply" {
		t.Errorf("GeneralResponse = %q", settingsRes.GeneralResponse)
	}
}

func TestProcessUnifiedDefaultsToDashboard(t *testing.T) {
	tests := []struct {
		name     string
		metadata *dto.ChatMetadata
	}{
		{"nil metadata", nil},
		{"empty page", &dto.ChatMetadata{Source: "webapp"}},
		{"unknown page", &dto.ChatMetadata{Page: "checkout"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, dashboardHandler, _ := newTestChatService(500)

			res, err := svc.ProcessUnified(context.Background(), &dto.UnifiedChatRequest{
				Query:    "show me books",
				Metadata: tt.metadata,
			})
			if err != nil {
				t.Fatalf("ProcessUnified() error = %v", err)
			}
			if dashboardHandler.calls != 1 {
				t.Errorf("dashboard calls = %d", dashboardHandler.calls)
			}
			if _, ok := res.(*dto.DashboardChatResponse); !ok {
				t.Fatalf("response type = %T, want DashboardChatResponse", res)
			}
		})
	}
}

func TestProcessUnifiedRejectsEmptyQuery(t *testing.T) {
	svc, dashboardHandler, _ := newTestChatService(500)

	_, err := svc.ProcessUnified(context.Background(), &dto.UnifiedChatRequest{Query: "   "})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !apperrors.IsValidation(err) {
		t.Errorf("kind = %q, want validation", apperrors.KindOf(err))
	}
	if dashboardHandler.calls != 0 {
		t.Error("no handler may run for an invalid query")
	}
}

func TestProcessUnifiedRejectsOverlongQuery(t *testing.T) {
	svc, dashboardHandler, _ := newTestChatService(500)

	_, err := svc.ProcessUnified(context.Background(), &dto.UnifiedChatRequest{
		Query: strings.Repeat("a", 501),
	})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !apperrors.IsValidation(err) {
		t.Errorf("kind = %q, want validation", apperrors.KindOf(err))
	}
	if dashboardHandler.calls != 0 {
		t.Error("no handler may run for an over-long query")
	}
}

func TestProcessUnifiedQueryLengthCountsRunes(t *testing.T) {
	svc, dashboardHandler, _ := newTestChatService(500)

	// 500 multi-byte runes, well over 500 bytes.
	if _, err := svc.ProcessUnified(context.Background(), &dto.UnifiedChatRequest{
		Query: strings.Repeat("ü", 500),
	}); err != nil {
		t.Fatalf("a 500-rune query must pass: %v", err)
	}
	if dashboardHandler.calls != 1 {
		t.Errorf("dashboard calls = %d", dashboardHandler.calls)
	}
}

func TestStatus(t *testing.T) {
	svc, _, _ := newTestChatService(500)

	status := svc.Status()
	if status.Status != "ok" {
		t.Errorf("Status = %q", status.Status)
	}
	if status.Message == "" || status.Timestamp.IsZero() {
		t.Errorf("status = %+v", status)
	}
}
