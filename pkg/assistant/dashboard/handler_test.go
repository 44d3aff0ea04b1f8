package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"shopping-chat-be/pkg/apperrors"
	"shopping-chat-be/pkg/assistant"
	"shopping-chat-be/pkg/llm"

	"go.uber.org/zap"
)

type fakeInvoker struct {
	response string
	err      error
	calls    int
	lastPage string
	history  []llm.Message
}

func (f *fakeInvoker) Invoke(ctx context.Context, page string, history []llm.Message) (string, error) {
	f.calls++
	f.lastPage = page
	f.history = history
	return f.response, f.err
}

func TestHandlerSuccess(t *testing.T) {
	invoker := &fakeInvoker{response: `{"response_message": "Showing books", "filters": {"categories": ["Books"]}}`}
	h := NewHandler(invoker, zap.NewNop())

	contextData := map[string]interface{}{
		"availableCategories": []interface{}{"Books", "Electronics"},
	}

	outcome, err := h.Handle(context.Background(), "show me books", contextData)
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if outcome.Page != assistant.PageDashboard {
		t.Errorf("Page = %q", outcome.Page)
	}
	if outcome.Dashboard == nil {
		t.Fatal("Dashboard result missing")
	}
	if outcome.Dashboard.Message != "Showing books" {
		t.Errorf("Message = %q", outcome.Dashboard.Message)
	}
	if invoker.lastPage != string(assistant.PageDashboard) {
		t.Errorf("invoked page = %q", invoker.lastPage)
	}
	if len(invoker.history) != 2 {
		t.Fatalf("history length = %d, want system + user", len(invoker.history))
	}
	if invoker.history[0].Role != llm.RoleSystem {
		t.Errorf("first message role = %q", invoker.history[0].Role)
	}
	if !strings.Contains(invoker.history[1].Content, "show me books") {
		t.Error("user prompt must contain the query")
	}
	if !strings.Contains(invoker.history[1].Content, `"Books"`) {
		t.Error("user prompt must enumerate available options")
	}
}

func TestHandlerDegradesOnTimeout(t *testing.T) {
	invoker := &fakeInvoker{err: apperrors.Timeout("llm call exceeded timeout", context.DeadlineExceeded)}
	h := NewHandler(invoker, zap.NewNop())

	outcome, err := h.Handle(context.Background(), "show me books", nil)
	if err != nil {
		t.Fatalf("timeout must degrade, not fail: %v", err)
	}
	if outcome.Dashboard == nil || outcome.Dashboard.Message != degradedMessage {
		t.Errorf("outcome = %+v, want degraded message", outcome.Dashboard)
	}
	if outcome.Dashboard.ClearAll || len(outcome.Dashboard.Filters.Categories) != 0 {
		t.Error("degraded response must not change any filters")
	}
}

func TestHandlerDegradesOnUpstream(t *testing.T) {
	invoker := &fakeInvoker{err: apperrors.Upstream("llm backend call failed", errors.New("boom"))}
	h := NewHandler(invoker, zap.NewNop())

	outcome, err := h.Handle(context.Background(), "show me books", nil)
	if err != nil {
		t.Fatalf("upstream failure must degrade, not fail: %v", err)
	}
	if outcome.Dashboard.Message != degradedMessage {
		t.Errorf("Message = %q", outcome.Dashboard.Message)
	}
}

func TestHandlerDegradesOnUnparseableOutput(t *testing.T) {
	invoker := &fakeInvoker{response: "I am unable to produce JSON today."}
	h := NewHandler(invoker, zap.NewNop())

	outcome, err := h.Handle(context.Background(), "show me books", nil)
	if err != nil {
		t.Fatalf("unparseable output must degrade, not fail: %v", err)
	}
	if outcome.Dashboard.Message != degradedMessage {
		t.Errorf("Message = %q", outcome.Dashboard.Message)
	}
}

func TestHandlerPropagatesOtherErrors(t *testing.T) {
	invoker := &fakeInvoker{err: apperrors.Internal("wiring broken", nil)}
	h := NewHandler(invoker, zap.NewNop())

	_, err := h.Handle(context.Background(), "show me books", nil)
	if err == nil {
		t.Fatal("internal errors must propagate")
	}
	if apperrors.KindOf(err) != apperrors.KindInternal {
		t.Errorf("kind = %q", apperrors.KindOf(err))
	}
}
