package dashboard

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"shopping-chat-be/pkg/assistant"
)

// systemPrompt constrains the model to dashboard semantics: only the
// enumerated options are valid, existing filters make requests incremental,
// and the reply must be a single JSON object.
const systemPrompt = `You are an AI assistant for a shopping dashboard. You can answer general questions AND filter, sort, or organize products on the dashboard.

FIRST determine whether the query is a general question or a dashboard request.

RULES:
1. ONLY use categories, stores, lists, view modes, sort options and group options from AVAILABLE OPTIONS. NEVER invent new ones. Preserve their original spelling and capitalization.
2. The CURRENT UI STATE always takes precedence over the LAST CONVERSATION. If the state shows filters were cleared, ignore filters mentioned in the last conversation.
3. When existing filters are applied and the user makes any filter-related request (categories, stores, lists, price, time range), ask for clarification about whether to add to or replace the current filters, unless the query directly answers a clarification you asked in the last conversation. When asking for clarification, return ONLY the response_message field.
4. For ADD requests merge new filters with existing ones; for REMOVE requests drop the named filters; for REPLACE requests discard every existing filter and keep only the new ones.
5. If the user wants all products with no filters ("clear all filters", "show all products"), set clearAll to true inside filters.
6. Extract price bounds from phrases like "under $50" into the price object (min/max numbers).
7. Calculate time ranges from CURRENT DATE, ISO startDate/endDate plus a short description like "Mar 10 - Mar 12".
8. For "larger tiles" or "more details" use view_mode "details+image"; for "smaller" or "compact" use "image-only".
9. For "budget friendly", "cheapest" or "affordable" set sort_by to "price-low-high" and say so in the response message.
10. When a requested item has no matching option, pick the closest available option only if one is clearly related, and be transparent about the substitution in response_message. If nothing matches, say the option is not available.
11. If you do not understand the request, do not set clearAll; reply that products can be filtered by categories, stores, lists, price, last viewed date, sorting, or view mode.

Respond with ONE JSON object:
{
  "generalResponse": "only for general questions",
  "filters": {
    "categories": [], "stores": [], "lists": [],
    "clearAll": false,
    "timeRange": {"startDate": "", "endDate": "", "description": ""},
    "price": {"min": 0, "max": 0}
  },
  "view_mode": "", "sort_by": "", "group_by": "",
  "response_message": "summary of what was applied"
}
Omit any field that does not apply. For general questions keep the answer under 40 words.`

// buildContext renders the request context the way the model sees it:
// current date, the enumerated valid options, the live UI state, and the
// previous exchange when one exists.
func buildContext(dc *assistant.DashboardContext) string {
	now := time.Now()

	var b strings.Builder
	fmt.Fprintf(&b, "CURRENT DATE: %s (%s)\n", now.Format("Monday, January 02, 2006"), now.Format(time.RFC3339))

	b.WriteString("\nAVAILABLE OPTIONS:\n")
	fmt.Fprintf(&b, "- Categories: %s\n", jsonList(dc.AvailableCategories))
	fmt.Fprintf(&b, "- Stores: %s\n", jsonList(dc.AvailableStores))
	fmt.Fprintf(&b, "- Lists: %s\n", jsonList(listNames(dc.AvailableLists)))
	fmt.Fprintf(&b, "- View Modes: %s\n", jsonList(dc.AvailableViewModes))
	fmt.Fprintf(&b, "- Sort Options: %s\n", jsonList(dc.AvailableSortOptions))
	fmt.Fprintf(&b, "- Group Options: %s\n", jsonList(dc.AvailableGroupOptions))

	filtersCleared := false
	if dc.UIState != nil {
		b.WriteString("\nCURRENT UI STATE:\n")
		if state, err := json.MarshalIndent(dc.UIState, "", "  "); err == nil {
			b.Write(state)
			b.WriteString("\n")
		}
		if !dc.UIState.Filters.Active() {
			b.WriteString("\nIMPORTANT: ALL FILTERS HAVE BEEN MANUALLY CLEARED. IGNORE ANY FILTER REFERENCES IN LAST CONVERSATION.\n")
			filtersCleared = true
		}
	}

	if dc.LastConversation != nil {
		b.WriteString("\nLAST CONVERSATION:\n")
		fmt.Fprintf(&b, "User: %s\n", dc.LastConversation.Query)
		fmt.Fprintf(&b, "Assistant: %s\n", dc.LastConversation.Response)
		if filtersCleared {
			b.WriteString("\nNOTE: The filters mentioned in the last conversation are no longer active. All filters have been cleared.\n")
		}
	}

	return b.String()
}

func buildUserPrompt(query string, dc *assistant.DashboardContext) string {
	var b strings.Builder
	b.WriteString("Context:\n")
	b.WriteString(buildContext(dc))
	fmt.Fprintf(&b, "\nUser query: %s\n", query)
	b.WriteString("\nProvide a JSON response with appropriate filters and a natural language response. Only use options that are available in the context.")
	return b.String()
}

func listNames(lists []assistant.ListRef) []string {
	names := make([]string, 0, len(lists))
	for _, l := range lists {
		names = append(names, l.Name)
	}
	return names
}

func jsonList(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return string(data)
}
