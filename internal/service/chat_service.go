package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"shopping-chat-be/internal/dto"
	"shopping-chat-be/internal/mapper"
	"shopping-chat-be/internal/pkg/logger"
	"shopping-chat-be/pkg/apperrors"
	"shopping-chat-be/pkg/assistant"
)

// IChatService is the unified query dispatcher: validate, route by page,
// handle, assemble.
type IChatService interface {
	ProcessUnified(ctx context.Context, request *dto.UnifiedChatRequest) (interface{}, error)
	Status() *dto.StatusResponse
}

type chatService struct {
	registry       *assistant.Registry
	maxQueryLength int
	log            logger.ILogger
}

func NewChatService(registry *assistant.Registry, maxQueryLength int, log logger.ILogger) IChatService {
	return &chatService{
		registry:       registry,
		maxQueryLength: maxQueryLength,
		log:            log,
	}
}

func (s *chatService) ProcessUnified(ctx context.Context, request *dto.UnifiedChatRequest) (interface{}, error) {
	if strings.TrimSpace(request.Query) == "" {
		return nil, apperrors.Validation("query must not be empty")
	}
	if utf8.RuneCountInString(request.Query) > s.maxQueryLength {
		return nil, apperrors.Validation(
			fmt.Sprintf("query exceeds maximum length of %d characters", s.maxQueryLength))
	}

	rawPage := ""
	if request.Metadata != nil {
		rawPage = request.Metadata.Page
	}
	page, handler := s.registry.Resolve(rawPage)

	s.log.Info("chat", "processing unified query", map[string]interface{}{
		"page":         string(page),
		"query_length": utf8.RuneCountInString(request.Query),
	})

	outcome, err := handler.Handle(ctx, request.Query, request.ContextData)
	if err != nil {
		return nil, err
	}

	return mapper.AssembleChatResponse(outcome)
}

func (s *chatService) Status() *dto.StatusResponse {
	return &dto.StatusResponse{
		Status:    "ok",
		Message:   "Chat service is running",
		Timestamp: time.Now(),
	}
}
