package gateway

import (
	"context"
	"errors"
	"time"

	"shopping-chat-be/pkg/apperrors"
	"shopping-chat-be/pkg/llm"

	"go.uber.org/zap"
)

// Invoker is the capability handlers depend on. Keeping it narrow makes
// handlers trivial to test with a fake.
type Invoker interface {
	Invoke(ctx context.Context, page string, history []llm.Message) (string, error)
}

// ModelRoute pins the model parameters used for one page type. Routes are
// keyed by the resolved page, never by raw client input, so a client cannot
// escalate to a more expensive model by crafting metadata.
type ModelRoute struct {
	Model       string
	Temperature float64
	MaxTokens   int
	JSONOutput  bool
}

// Gateway wraps the LLM provider with a hard per-request timeout and a
// uniform error contract. One attempt per request: retrying a generative
// call risks duplicate or contradictory answers.
type Gateway struct {
	provider llm.Provider
	routes   map[string]ModelRoute
	fallback ModelRoute
	timeout  time.Duration
	logger   *zap.Logger
}

func New(provider llm.Provider, routes map[string]ModelRoute, fallback ModelRoute, timeout time.Duration, logger *zap.Logger) *Gateway {
	return &Gateway{
		provider: provider,
		routes:   routes,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger,
	}
}

var _ Invoker = &Gateway{}

func (g *Gateway) Invoke(ctx context.Context, page string, history []llm.Message) (string, error) {
	route, ok := g.routes[page]
	if !ok {
		route = g.fallback
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	opts := []llm.Option{
		llm.WithModel(route.Model),
		llm.WithTemperature(route.Temperature),
		llm.WithMaxTokens(route.MaxTokens),
	}
	if route.JSONOutput {
		opts = append(opts, llm.WithJSONOutput())
	}

	started := time.Now()
	response, err := g.provider.Chat(ctx, history, opts...)
	elapsed := time.Since(started)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			g.logger.Warn("llm call timed out",
				zap.String("page", page),
				zap.String("model", route.Model),
				zap.Duration("elapsed", elapsed))
			return "", apperrors.Timeout("llm call exceeded timeout", err)
		}
		g.logger.Warn("llm call failed",
			zap.String("page", page),
			zap.String("model", route.Model),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return "", apperrors.Upstream("llm backend call failed", err)
	}

	if response == "" {
		return "", apperrors.Upstream("llm backend returned an empty response", nil)
	}

	g.logger.Debug("llm call completed",
		zap.String("page", page),
		zap.String("model", route.Model),
		zap.Duration("elapsed", elapsed))

	return response, nil
}
