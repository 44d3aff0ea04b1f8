package settings

import (
	"context"
	"strings"

	"shopping-chat-be/pkg/apperrors"
	"shopping-chat-be/pkg/assistant"
	"shopping-chat-be/pkg/llm"
	"shopping-chat-be/pkg/llm/gateway"

	"go.uber.org/zap"
)

const degradedMessage = "I'm sorry, I couldn't reach the assistant just now. Please try again in a moment."

// Handler answers questions about the user's profile, credit cards and
// memberships. Output is free text; there is no structured state to drive.
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
	sc, err := assistant.DecodeSettingsContext(contextData)
	if err != nil {
		return nil, apperrors.Validation("contextData is not a valid settings context")
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: buildSystemPrompt(sc)},
	}
	if sc.LastConversation != nil {
		history = append(history,
			llm.Message{Role: llm.RoleUser, Content: sc.LastConversation.Query},
			llm.Message{Role: llm.RoleAssistant, Content: sc.LastConversation.Response},
		)
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: query})

	raw, err := h.invoker.Invoke(ctx, string(assistant.PageSettings), history)
	if err != nil {
		if apperrors.IsTimeout(err) || apperrors.IsUpstream(err) {
			h.logger.Warn("settings query degraded",
				zap.String("reason", string(apperrors.KindOf(err))),
				zap.Error(err))
			return h.degraded(), nil
		}
		return nil, err
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		h.logger.Warn("settings model returned empty text")
		return h.degraded(), nil
	}

	return &assistant.Outcome{
		Page:     assistant.PageSettings,
		Settings: &assistant.SettingsResult{Message: text},
	}, nil
}

func (h *Handler) degraded() *assistant.Outcome {
	return &assistant.Outcome{
		Page:     assistant.PageSettings,
		Settings: &assistant.SettingsResult{Message: degradedMessage},
	}
}
