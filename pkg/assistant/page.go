package assistant

import (
	"context"
	"strings"
)

// Page is the client-declared target surface for a query. It determines
// which handler runs and which wire schema the response uses.
type Page string

const (
	PageDashboard Page = "dashboard"
	PageSettings  Page = "settings"
	PageExtension Page = "extension"
)

// Handler processes one page type: normalize context, build the prompt,
// invoke the model, parse the output into a page result.
type Handler interface {
	Handle(ctx context.Context, query string, contextData map[string]interface{}) (*Outcome, error)
}

// Registry maps page identifiers to handlers. New page types register here
// without touching existing handler code. Resolution never fails: anything
// absent or unrecognized falls back to the dashboard handler.
type Registry struct {
	handlers map[Page]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[Page]Handler),
	}
}

// Register installs the handler for a page. A dashboard handler must be
// registered before Resolve is used; it is the fallback for every
// unrecognized page value.
func (r *Registry) Register(page Page, handler Handler) {
	r.handlers[page] = handler
}

// Resolve returns the page and handler for a raw metadata value.
func (r *Registry) Resolve(raw string) (Page, Handler) {
	page := Page(strings.ToLower(strings.TrimSpace(raw)))
	if h, ok := r.handlers[page]; ok {
		return page, h
	}
	return PageDashboard, r.handlers[PageDashboard]
}
