package mapper

import (
	"shopping-chat-be/internal/dto"
	"shopping-chat-be/pkg/apperrors"
	"shopping-chat-be/pkg/assistant"
)

// AssembleChatResponse maps a handler outcome onto the exact wire schema
// for its page. Pure shape mapping; the two page schemas never leak into
// each other.
func AssembleChatResponse(outcome *assistant.Outcome) (interface{}, error) {
	if outcome == nil {
		return nil, apperrors.Internal("handler produced no outcome", nil)
	}

	switch outcome.Page {
	case assistant.PageDashboard:
		if outcome.Dashboard == nil {
			return nil, apperrors.Internal("dashboard outcome missing result", nil)
		}
		return toDashboardResponse(outcome.Dashboard), nil
	case assistant.PageSettings:
		if outcome.Settings == nil {
			return nil, apperrors.Internal("settings outcome missing result", nil)
		}
		return &dto.SettingsChatResponse{
			GeneralResponse: outcome.Settings.Message,
		}, nil
	case assistant.PageExtension:
		if outcome.Extension == nil {
			return nil, apperrors.Internal("extension outcome missing result", nil)
		}
		return &dto.ExtensionChatResponse{
			ResponseMessage: outcome.Extension.Message,
			Goto:            outcome.Extension.Goto,
		}, nil
	default:
		return nil, apperrors.Internal("unknown outcome page: "+string(outcome.Page), nil)
	}
}

func toDashboardResponse(result *assistant.DashboardResult) *dto.DashboardChatResponse {
	resp := &dto.DashboardChatResponse{
		ResponseMessage: result.Message,
		Filters: dto.DashboardFiltersDTO{
			Categories: emptyIfNil(result.Filters.Categories),
			Stores:     emptyIfNil(result.Filters.Stores),
			Lists:      emptyIfNil(result.Filters.Lists),
		},
		ViewMode: result.ViewMode,
		SortBy:   result.SortBy,
		GroupBy:  result.GroupBy,
		ClearAll: result.ClearAll,
	}
	if tr := result.Filters.TimeRange; !tr.Empty() {
		resp.Filters.TimeRange = &dto.TimeRangeDTO{
			StartDate:   tr.StartDate,
			EndDate:     tr.EndDate,
			Description: tr.Description,
		}
	}
	if pr := result.Filters.Price; !pr.Empty() {
		resp.Filters.Price = &dto.PriceRangeDTO{
			Min: pr.Min,
			Max: pr.Max,
		}
	}
	return resp
}

// emptyIfNil keeps filter arrays present in the JSON even when empty.
func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
