package dashboard

import (
	"encoding/json"
	"fmt"
	"strings"

	"shopping-chat-be/pkg/assistant"
)

const defaultMessage = "I've updated the view according to your request."

// modelOutput mirrors the JSON shape the model is instructed to return.
// The model does not always comply, so every field is revalidated before
// anything reaches the response.
type modelOutput struct {
	GeneralResponse string                `json:"generalResponse"`
	ResponseMessage string                `json:"response_message"`
	Filters         *modelFilters         `json:"filters"`
	Price           *assistant.PriceRange `json:"price"` // models sometimes hoist price to the root
	ViewMode        string                `json:"view_mode"`
	SortBy          string                `json:"sort_by"`
	GroupBy         string                `json:"group_by"`
}

type modelFilters struct {
	Categories []string              `json:"categories"`
	Stores     []string              `json:"stores"`
	Lists      []string              `json:"lists"`
	ClearAll   bool                  `json:"clearAll"`
	TimeRange  *assistant.TimeRange  `json:"timeRange"`
	Price      *assistant.PriceRange `json:"price"`
}

// parseModelOutput turns raw model text into a validated DashboardResult.
// This is the trust boundary between generative output and the response
// schema: any category/store/list value outside the request's available
// sets is dropped, clearAll empties everything, and absent time/price stay
// nil so they never read as zero constraints.
func parseModelOutput(raw string, dc *assistant.DashboardContext) (*assistant.DashboardResult, error) {
	jsonContent := extractJSON(raw)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON object found in model output")
	}

	var out modelOutput
	if err := json.Unmarshal([]byte(jsonContent), &out); err != nil {
		return nil, fmt.Errorf("unmarshal model output: %w", err)
	}

	result := &assistant.DashboardResult{
		Message: firstNonEmpty(out.ResponseMessage, out.GeneralResponse, defaultMessage),
	}

	if out.Filters != nil && out.Filters.ClearAll {
		result.ClearAll = true
		if out.ResponseMessage == "" {
			result.Message = "I've cleared all filters for you."
		}
		return result, nil
	}

	if out.Filters != nil {
		result.Filters.Categories = keepAllowed(out.Filters.Categories, dc.AvailableCategories)
		result.Filters.Stores = keepAllowed(out.Filters.Stores, dc.AvailableStores)
		result.Filters.Lists = keepAllowed(out.Filters.Lists, listNames(dc.AvailableLists))
		if !out.Filters.TimeRange.Empty() {
			result.Filters.TimeRange = out.Filters.TimeRange
		}
		if !out.Filters.Price.Empty() {
			result.Filters.Price = out.Filters.Price
		}
	}
	if result.Filters.Price == nil && !out.Price.Empty() {
		result.Filters.Price = out.Price
	}

	result.ViewMode = keepOption(out.ViewMode, dc.AvailableViewModes)
	result.SortBy = keepOption(out.SortBy, dc.AvailableSortOptions)
	result.GroupBy = keepOption(out.GroupBy, dc.AvailableGroupOptions)

	return result, nil
}

// keepAllowed filters values down to members of the allowed set. Matching
// is case-insensitive and the canonical casing from the allowed set wins.
// An out-of-set value is a per-field validation failure, never a request
// failure.
func keepAllowed(values, allowed []string) []string {
	if len(values) == 0 || len(allowed) == 0 {
		return nil
	}
	canonical := make(map[string]string, len(allowed))
	for _, a := range allowed {
		canonical[strings.ToLower(a)] = a
	}
	var kept []string
	seen := make(map[string]bool)
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if c, ok := canonical[key]; ok && !seen[key] {
			kept = append(kept, c)
			seen[key] = true
		}
	}
	return kept
}

// keepOption validates a single selection against its option list. An
// empty option list means the client did not enumerate choices, so the
// value passes through.
func keepOption(value string, allowed []string) string {
	if value == "" || len(allowed) == 0 {
		return value
	}
	for _, a := range allowed {
		if strings.EqualFold(a, value) {
			return a
		}
	}
	return ""
}

// extractJSON isolates the JSON object from model text, tolerating code
// fences and prose around it.
func extractJSON(response string) string {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	startIdx := strings.Index(cleaned, "{")
	endIdx := strings.LastIndex(cleaned, "}")
	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}
	return cleaned[startIdx : endIdx+1]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
