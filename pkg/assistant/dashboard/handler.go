package dashboard

import (
	"context"

	"shopping-chat-be/pkg/apperrors"
	"shopping-chat-be/pkg/assistant"
	"shopping-chat-be/pkg/llm"
	"shopping-chat-be/pkg/llm/gateway"

	"go.uber.org/zap"
)

const degradedMessage = "I'm having trouble reaching the assistant right now. Your filters are unchanged - please try again in a moment."

// Handler answers dashboard queries: filtering, sorting, grouping and view
// preferences, plus short general questions.
type Handler struct {
	invoker gateway.Invoker
	logger  *zap.Logger
}

var _ assistant.Handler = &Handler{}

func NewHandler(invoker gateway.Invoker, logger *zap.Logger) *Handler {
	return &Handler{
		invoker: invoker,
		logger:  logger,
	}
}

func (h *Handler) Handle(ctx context.Context, query string, contextData map[string]interface{}) (*assistant.Outcome, error) {
	dc, err := assistant.DecodeDashboardContext(contextData)
	if err != nil {
		return nil, apperrors.Validation("contextData is not a valid dashboard context")
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: buildUserPrompt(query, dc)},
	}

	raw, err := h.invoker.Invoke(ctx, string(assistant.PageDashboard), history)
	if err != nil {
		if apperrors.IsTimeout(err) || apperrors.IsUpstream(err) {
			h.logger.Warn("dashboard query degraded",
				zap.String("reason", string(apperrors.KindOf(err))),
				zap.Error(err))
			return h.degraded(), nil
		}
		return nil, err
	}

	result, err := parseModelOutput(raw, dc)
	if err != nil {
		// Malformed model output is an upstream fault, not ours.
		h.logger.Warn("dashboard model output unparseable", zap.Error(err))
		return h.degraded(), nil
	}

	return &assistant.Outcome{
		Page:      assistant.PageDashboard,
		Dashboard: result,
	}, nil
}

// degraded keeps the UI alive when the model is slow or broken: apologetic
// text, no filter changes.
func (h *Handler) degraded() *assistant.Outcome {
	return &assistant.Outcome{
		Page: assistant.PageDashboard,
		Dashboard: &assistant.DashboardResult{
			Message: degradedMessage,
		},
	}
}
