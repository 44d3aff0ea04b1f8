package service

import (
	"context"
	"fmt"
	"time"

	"shopping-chat-be/internal/dto"
	"shopping-chat-be/internal/model"
	"shopping-chat-be/internal/pkg/logger"
	"shopping-chat-be/internal/repository/contract"
	"shopping-chat-be/pkg/apperrors"

	gocache "github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
)

type IConversationService interface {
	Save(ctx context.Context, userId string, request *dto.SaveConversationRequest) (*dto.ConversationDTO, error)
	List(ctx context.Context, userId string, limit int64, before *time.Time) ([]dto.ConversationDTO, error)
	Clear(ctx context.Context, userId string) (int64, error)
	Status(ctx context.Context, userId string) (*dto.HistoryStatusResponse, error)
}

// cachedHistory is one user's most recent history fetch; reused only for
// an identical query shape.
type cachedHistory struct {
	limit int64
	items []dto.ConversationDTO
}

type conversationService struct {
	repo  contract.IConversationRepository
	cache *gocache.Cache
	log   logger.ILogger
}

func NewConversationService(repo contract.IConversationRepository, log logger.ILogger) IConversationService {
	return &conversationService{
		repo:  repo,
		cache: gocache.New(30*time.Second, time.Minute),
		log:   log,
	}
}

func (s *conversationService) Save(ctx context.Context, userId string, request *dto.SaveConversationRequest) (*dto.ConversationDTO, error) {
	oid, err := parseUserId(userId)
	if err != nil {
		return nil, err
	}

	message := &model.ChatMessage{
		UserId:    oid,
		Query:     request.Query,
		Response:  request.Response,
		Source:    "webapp",
		Page:      "dashboard",
		CreatedAt: time.Now(),
	}
	if request.Metadata != nil {
		if request.Metadata.Source != "" {
			message.Source = request.Metadata.Source
		}
		if request.Metadata.Page != "" {
			message.Page = request.Metadata.Page
		}
	}

	if err := s.repo.Save(ctx, message); err != nil {
		return nil, apperrors.Internal("failed to save chat conversation", err)
	}

	s.cache.Delete(historyKey(userId))

	converted := toConversationDTO(message)
	return &converted, nil
}

func (s *conversationService) List(ctx context.Context, userId string, limit int64, before *time.Time) ([]dto.ConversationDTO, error) {
	oid, err := parseUserId(userId)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	// Only unpaginated fetches are cached; "before" queries are rare and
	// always hit the repository.
	cacheable := before == nil
	if cacheable {
		if entry, found := s.cache.Get(historyKey(userId)); found {
			if cached, ok := entry.(cachedHistory); ok && cached.limit == limit {
				return cached.items, nil
			}
		}
	}

	cutoff := time.Now()
	if before != nil {
		cutoff = *before
	}

	messages, err := s.repo.FindByUser(ctx, oid, limit, cutoff)
	if err != nil {
		return nil, apperrors.Internal("failed to retrieve chat conversations", err)
	}

	items := make([]dto.ConversationDTO, 0, len(messages))
	for _, m := range messages {
		items = append(items, toConversationDTO(m))
	}

	if cacheable {
		s.cache.SetDefault(historyKey(userId), cachedHistory{limit: limit, items: items})
	}
	return items, nil
}

func (s *conversationService) Clear(ctx context.Context, userId string) (int64, error) {
	oid, err := parseUserId(userId)
	if err != nil {
		return 0, err
	}

	deleted, err := s.repo.DeleteByUser(ctx, oid)
	if err != nil {
		return 0, apperrors.Internal("failed to clear chat history", err)
	}

	s.cache.Delete(historyKey(userId))
	s.log.Info("conversation", "chat history cleared", map[string]interface{}{
		"user_id": userId,
		"deleted": deleted,
	})
	return deleted, nil
}

func (s *conversationService) Status(ctx context.Context, userId string) (*dto.HistoryStatusResponse, error) {
	oid, err := parseUserId(userId)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByUser(ctx, oid)
	if err != nil {
		return nil, apperrors.Internal("failed to check history status", err)
	}

	return &dto.HistoryStatusResponse{
		Status:       "ok",
		Message:      "Chat history API is working correctly",
		UserId:       userId,
		MessageCount: count,
		Timestamp:    time.Now(),
	}, nil
}

func parseUserId(userId string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation("invalid user id in token")
	}
	return oid, nil
}

func historyKey(userId string) string {
	return fmt.Sprintf("history:%s", userId)
}

func toConversationDTO(m *model.ChatMessage) dto.ConversationDTO {
	return dto.ConversationDTO{
		Id:        m.Id.Hex(),
		UserId:    m.UserId.Hex(),
		Query:     m.Query,
		Response:  m.Response,
		Source:    m.Source,
		Page:      m.Page,
		CreatedAt: m.CreatedAt,
	}
}
