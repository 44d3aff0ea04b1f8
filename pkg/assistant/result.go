package assistant

// FilterSet is the validated filter selection a dashboard query resolves
// to. Every value has been checked against the request's available sets.
type FilterSet struct {
	Categories []string
	Stores     []string
	Lists      []string
	TimeRange  *TimeRange
	Price      *PriceRange
}

// DashboardResult is the dashboard handler's output before assembly.
type DashboardResult struct {
	Message  string
	Filters  FilterSet
	ViewMode string
	SortBy   string
	GroupBy  string
	ClearAll bool
}

// SettingsResult is free text only; the settings page has no structured
// view state to drive.
type SettingsResult struct {
	Message string
}

// ExtensionResult carries the reply plus an optional navigation target.
type ExtensionResult struct {
	Message string
	Goto    string
}

// Outcome is the page-tagged union handed to the response assembler.
// Exactly one result field is set, matching Page.
type Outcome struct {
	Page      Page
	Dashboard *DashboardResult
	Settings  *SettingsResult
	Extension *ExtensionResult
}
