package extension

import (
	"context"
	"encoding/json"
	"strings"

	"shopping-chat-be/pkg/apperrors"
	"shopping-chat-be/pkg/assistant"
	"shopping-chat-be/pkg/llm"
	"shopping-chat-be/pkg/llm/gateway"

	"go.uber.org/zap"
)

const degradedMessage = "I encountered an error processing your request. Please try again."

const systemPrompt = `You are the shopping assistant for a browser extension, helping users navigate the extension and webapp, find products, compare prices, and get shopping recommendations. Be helpful, friendly, and concise.

Available navigation destinations:
- dashboard: the main dashboard of the webapp
- settings: user settings and preferences
- savings: the savings stack page with saved deals and price alerts
- history: browsing history of recently viewed products
- lists: the user's saved shopping lists

Navigation rules:
1. For questions about profile information, credit cards, or memberships, direct users to the settings page.
2. For questions about recent products or browsing history, offer the history page or a detailed view in the dashboard.
3. For questions about benefits, rewards, or savings on a product, direct them to the savings page.
4. When you need to ask a clarifying question back, do not set any navigation destination.

Respond with ONE JSON object: {"response_message": "text shown to the user", "goto": "optional destination"}. Omit goto when no navigation applies.`

// validDestinations is the closed set the extension UI can navigate to.
// Anything else from the model is dropped.
var validDestinations = map[string]bool{
	"dashboard": true,
	"settings":  true,
	"savings":   true,
	"history":   true,
	"lists":     true,
}

// Handler serves browser-extension queries: a text reply plus an optional
// navigation target.
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

type modelOutput struct {
	ResponseMessage string `json:"response_message"`
	Goto            string `json:"goto"`
}

func (h *Handler) Handle(ctx context.Context, query string, contextData map[string]interface{}) (*assistant.Outcome, error) {
	ec, err := assistant.DecodeExtensionContext(contextData)
	if err != nil {
		return nil, apperrors.Validation("contextData is not a valid extension context")
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
	}
	if ec.LastConversation != nil {
		history = append(history,
			llm.Message{Role: llm.RoleUser, Content: ec.LastConversation.Query},
			llm.Message{Role: llm.RoleAssistant, Content: ec.LastConversation.Response},
		)
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: query})

	raw, err := h.invoker.Invoke(ctx, string(assistant.PageExtension), history)
	if err != nil {
		if apperrors.IsTimeout(err) || apperrors.IsUpstream(err) {
			h.logger.Warn("extension query degraded",
				zap.String("reason", string(apperrors.KindOf(err))),
				zap.Error(err))
			return h.degraded(), nil
		}
		return nil, err
	}

	result := parseModelOutput(raw)
	return &assistant.Outcome{
		Page:      assistant.PageExtension,
		Extension: result,
	}, nil
}

const fallbackMessage = "I'm not sure how to respond to that."

// parseModelOutput is lenient: structured JSON when the model complies,
// the raw text as a plain reply when it does not. Valid JSON with no
// response_message is treated like blank output; the raw JSON literal is
// never shown to the user.
func parseModelOutput(raw string) *assistant.ExtensionResult {
	cleaned := strings.TrimSpace(raw)
	startIdx := strings.Index(cleaned, "{")
	endIdx := strings.LastIndex(cleaned, "}")
	if startIdx != -1 && endIdx > startIdx {
		var out modelOutput
		if err := json.Unmarshal([]byte(cleaned[startIdx:endIdx+1]), &out); err == nil {
			if out.ResponseMessage == "" {
				return &assistant.ExtensionResult{Message: fallbackMessage}
			}
			dest := strings.ToLower(strings.TrimSpace(out.Goto))
			if !validDestinations[dest] {
				dest = ""
			}
			return &assistant.ExtensionResult{Message: out.ResponseMessage, Goto: dest}
		}
	}
	if cleaned == "" {
		cleaned = fallbackMessage
	}
	return &assistant.ExtensionResult{Message: cleaned}
}

func (h *Handler) degraded() *assistant.Outcome {
	return &assistant.Outcome{
		Page:      assistant.PageExtension,
		Extension: &assistant.ExtensionResult{Message: degradedMessage},
	}
}
