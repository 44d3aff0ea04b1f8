package dto

import (
	"time"
)

// UnifiedChatRequest is the body of POST /api/chat/unified.
type UnifiedChatRequest struct {
	Query       string                 `json:"query" validate:"required"`
	ContextData map[string]interface{} `json:"contextData"`
	Metadata    *ChatMetadata          `json:"metadata"`
}

type ChatMetadata struct {
	Source string `json:"source,omitempty"`
	Page   string `json:"page,omitempty"`
}

// TimeRangeDTO and PriceRangeDTO are omitted entirely when no constraint
// applies; a present-but-zero range would wrongly exclude results.
type TimeRangeDTO struct {
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

type PriceRangeDTO struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

type DashboardFiltersDTO struct {
	Categories []string       `json:"categories"`
	Stores     []string       `json:"stores"`
	Lists      []string       `json:"lists"`
	TimeRange  *TimeRangeDTO  `json:"timeRange,omitempty"`
	Price      *PriceRangeDTO `json:"price,omitempty"`
}

// DashboardChatResponse is the dashboard wire schema. It never carries a
// generalResponse field; that belongs to the settings schema.
type DashboardChatResponse struct {
	ResponseMessage string              `json:"response_message"`
	Filters         DashboardFiltersDTO `json:"filters"`
	ViewMode        string              `json:"view_mode,omitempty"`
	SortBy          string              `json:"sort_by,omitempty"`
	GroupBy         string              `json:"group_by,omitempty"`
	ClearAll        bool                `json:"clear_all"`
}

// SettingsChatResponse is the settings wire schema: free text only.
type SettingsChatResponse struct {
	GeneralResponse string `json:"generalResponse"`
}

// ExtensionChatResponse is the extension wire schema.
type ExtensionChatResponse struct {
	ResponseMessage string `json:"response_message"`
	Goto            string `json:"goto,omitempty"`
}

type StatusResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
