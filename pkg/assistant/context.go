package assistant

import (
	"encoding/json"
)

// Exchange is one prior query/response pair, used only to disambiguate
// follow-up queries ("show me more of those").
type Exchange struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

// ListRef identifies a user list the dashboard can filter by.
type ListRef struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// TimeRange filters by last-viewed date. Absent means no constraint.
type TimeRange struct {
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

func (t *TimeRange) Empty() bool {
	return t == nil || (t.StartDate == "" && t.EndDate == "" && t.Description == "")
}

// PriceRange filters by price. Pointers distinguish "unset" from zero so
// an absent bound never excludes free items.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

func (p *PriceRange) Empty() bool {
	return p == nil || (p.Min == nil && p.Max == nil)
}

// UIFilters mirrors the dashboard's active filter state.
type UIFilters struct {
	Categories []string    `json:"categories"`
	Stores     []string    `json:"stores"`
	Lists      []string    `json:"lists"`
	TimeRange  *TimeRange  `json:"timeRange,omitempty"`
	Price      *PriceRange `json:"price,omitempty"`
}

// Active reports whether any filter is currently applied.
func (f *UIFilters) Active() bool {
	if f == nil {
		return false
	}
	if len(f.Categories) > 0 || len(f.Stores) > 0 || len(f.Lists) > 0 {
		return true
	}
	if !f.TimeRange.Empty() {
		return true
	}
	return !f.Price.Empty()
}

// UIState is the dashboard view state at the time of the query.
type UIState struct {
	Filters  *UIFilters `json:"filters,omitempty"`
	ViewMode string     `json:"viewMode,omitempty"`
	SortBy   string     `json:"sortBy,omitempty"`
	GroupBy  string     `json:"groupBy,omitempty"`
}

// DashboardContext is the minimal, typed context the dashboard handler
// needs. Unknown fields in the raw payload are dropped; missing optional
// fields default to empty.
type DashboardContext struct {
	AvailableCategories   []string   `json:"availableCategories"`
	AvailableStores       []string   `json:"availableStores"`
	AvailableLists        []ListRef  `json:"availableLists"`
	AvailableViewModes    []string   `json:"availableViewModes"`
	AvailableSortOptions  []string   `json:"availableSortOptions"`
	AvailableGroupOptions []string   `json:"availableGroupOptions"`
	UIState               *UIState   `json:"uiState,omitempty"`
	LastConversation      *Exchange  `json:"lastConversation,omitempty"`
}

// CreditCards holds the user's saved cards and the catalogue of cards that
// could be added. Card entries stay opaque: the prompt builder walks them,
// nothing else inspects them.
type CreditCards struct {
	UserCards      []map[string]interface{} `json:"userCards"`
	AvailableCards []map[string]interface{} `json:"availableCards"`
}

// SettingsContext carries read-only reference data for settings queries.
type SettingsContext struct {
	Profile          map[string]interface{}   `json:"profile"`
	CreditCards      *CreditCards             `json:"creditCards,omitempty"`
	Memberships      []map[string]interface{} `json:"memberships"`
	LastConversation *Exchange                `json:"lastConversation,omitempty"`
}

// ExtensionContext carries only the last conversation; extension queries
// are otherwise context-free.
type ExtensionContext struct {
	LastConversation *Exchange `json:"lastConversation,omitempty"`
}

// decodeContext narrows a raw contextData map to the typed subset a page
// needs. The JSON round trip drops unknown fields silently (forward
// compatibility) and leaves missing fields at their zero value.
func decodeContext(raw map[string]interface{}, out interface{}) error {
	if raw == nil {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func DecodeDashboardContext(raw map[string]interface{}) (*DashboardContext, error) {
	dc := &DashboardContext{}
	if err := decodeContext(raw, dc); err != nil {
		return nil, err
	}
	if dc.LastConversation != nil && (dc.LastConversation.Query == "" || dc.LastConversation.Response == "") {
		dc.LastConversation = nil
	}
	return dc, nil
}

func DecodeSettingsContext(raw map[string]interface{}) (*SettingsContext, error) {
	sc := &SettingsContext{}
	if err := decodeContext(raw, sc); err != nil {
		return nil, err
	}
	if sc.LastConversation != nil && (sc.LastConversation.Query == "" || sc.LastConversation.Response == "") {
		sc.LastConversation = nil
	}
	return sc, nil
}

func DecodeExtensionContext(raw map[string]interface{}) (*ExtensionContext, error) {
	ec := &ExtensionContext{}
	if err := decodeContext(raw, ec); err != nil {
		return nil, err
	}
	if ec.LastConversation != nil && (ec.LastConversation.Query == "" || ec.LastConversation.Response == "") {
		ec.LastConversation = nil
	}
	return ec, nil
}
