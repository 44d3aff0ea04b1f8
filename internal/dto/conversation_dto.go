package dto

import (
	"time"
)

type SaveConversationRequest struct {
	Query    string        `json:"query" validate:"required"`
	Response string        `json:"response" validate:"required"`
	Metadata *ChatMetadata `json:"metadata"`
}

type ConversationDTO struct {
	Id        string    `json:"_id"`
	UserId    string    `json:"userId"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Source    string    `json:"source"`
	Page      string    `json:"page"`
	CreatedAt time.Time `json:"createdAt"`
}

type ConversationListResponse struct {
	Message string            `json:"message"`
	Data    []ConversationDTO `json:"data,omitempty"`
	Count   *int64            `json:"count,omitempty"`
}

type HistoryStatusResponse struct {
	Status       string    `json:"status"`
	Message      string    `json:"message"`
	UserId       string    `json:"userId"`
	MessageCount int64     `json:"messageCount"`
	Timestamp    time.Time `json:"timestamp"`
}
