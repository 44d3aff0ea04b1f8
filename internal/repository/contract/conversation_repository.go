package contract

import (
	"context"
	"time"

	"shopping-chat-be/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IConversationRepository interface {
	// EnsureIndexes creates the TTL and lookup indexes; called once at startup.
	EnsureIndexes(ctx context.Context) error

	Save(ctx context.Context, message *model.ChatMessage) error

	// FindByUser returns up to limit exchanges created before the given
	// instant, oldest first.
	FindByUser(ctx context.Context, userId primitive.ObjectID, limit int64, before time.Time) ([]*model.ChatMessage, error)

	DeleteByUser(ctx context.Context, userId primitive.ObjectID) (int64, error)

	CountByUser(ctx context.Context, userId primitive.ObjectID) (int64, error)
}
