package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"shopping-chat-be/internal/dto"
	"shopping-chat-be/internal/pkg/serverutils"
	"shopping-chat-be/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeChatService struct {
	response interface{}
	err      error
	calls    int
	lastReq  *dto.UnifiedChatRequest
}

func (f *fakeChatService) ProcessUnified(ctx context.Context, request *dto.UnifiedChatRequest) (interface{}, error) {
	f.calls++
	f.lastReq = request
	return f.response, f.err
}

func (f *fakeChatService) Status() *dto.StatusResponse {
	return &dto.StatusResponse{Status: "ok", Message: "Chat service is running", Timestamp: time.Now()}
}

func newTestApp(svc *fakeChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(noopLogger{}))
	NewChatController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func postUnified(t *testing.T, app *fiber.App, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/chat/unified", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestUnifiedSuccess(t *testing.T) {
	svc := &fakeChatService{
		response: &dto.DashboardChatResponse{
			ResponseMessage: "Showing books",
			Filters: dto.DashboardFiltersDTO{
				Categories: []string{"Books"},
				Stores:     []string{},
				Lists:      []string{},
			},
		},
	}
	app := newTestApp(svc)

	status, body := postUnified(t, app, `{"query": "show me books", "metadata": {"page": "dashboard"}}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Showing books", body["response_message"])
	assert.NotContains(t, body, "generalResponse")
	require.Equal(t, 1, svc.calls)
	assert.Equal(t, "show me books", svc.lastReq.Query)
	assert.Equal(t, "dashboard", svc.lastReq.Metadata.Page)
}

func TestUnifiedMissingQuery(t *testing.T) {
	svc := &fakeChatService{}
	app := newTestApp(svc)

	status, body := postUnified(t, app, `{"metadata": {"page": "dashboard"}}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, string(apperrors.KindValidation), body["error_type"])
	assert.Equal(t, 0, svc.calls, "service must not run for an invalid request")
}

func TestUnifiedMalformedBody(t *testing.T) {
	svc := &fakeChatService{}
	app := newTestApp(svc)

	status, body := postUnified(t, app, `not json at all`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, string(apperrors.KindValidation), body["error_type"])
	assert.Equal(t, 0, svc.calls)
}

func TestUnifiedErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"validation", apperrors.Validation("query must not be empty"), fiber.StatusBadRequest, "validation_error"},
		{"timeout", apperrors.Timeout("llm call exceeded timeout", nil), fiber.StatusGatewayTimeout, "timeout_error"},
		{"upstream", apperrors.Upstream("llm backend call failed", nil), fiber.StatusBadGateway, "upstream_error"},
		{"internal", apperrors.Internal("wiring broken", nil), fiber.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeChatService{err: tt.err})

			status, body := postUnified(t, app, `{"query": "hello"}`)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantType, body["error_type"])
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestUnifiedInternalDetailsHidden(t *testing.T) {
	app := newTestApp(&fakeChatService{err: apperrors.Internal("db password rejected", nil)})

	status, body := postUnified(t, app, `{"query": "hello"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestStatusEndpoint(t *testing.T) {
	app := newTestApp(&fakeChatService{})

	req := httptest.NewRequest("GET", "/api/chat/status", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.False(t, body.Timestamp.IsZero())
}
