package implementation

import (
	"context"
	"time"

	"shopping-chat-be/internal/model"
	"shopping-chat-be/internal/repository/contract"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// conversationTTLSeconds matches the 2-day retention of the chatmessages
// collection.
const conversationTTLSeconds = 172800

type conversationRepository struct {
	collection *mongo.Collection
}

func NewConversationRepository(db *mongo.Database) contract.IConversationRepository {
	return &conversationRepository{
		collection: db.Collection(model.ChatMessageCollection),
	}
}

// EnsureIndexes creates the TTL and lookup indexes. Index creation is
// idempotent on the Mongo side.
func (r *conversationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(conversationTTLSeconds),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
	return err
}

func (r *conversationRepository) Save(ctx context.Context, message *model.ChatMessage) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	res, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		message.Id = oid
	}
	return nil
}

func (r *conversationRepository) FindByUser(ctx context.Context, userId primitive.ObjectID, limit int64, before time.Time) ([]*model.ChatMessage, error) {
	filter := bson.M{
		"userId":    userId,
		"createdAt": bson.M{"$lt": before},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*model.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	// Newest-first from Mongo, chronological for the caller.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *conversationRepository) DeleteByUser(ctx context.Context, userId primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"userId": userId})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *conversationRepository) CountByUser(ctx context.Context, userId primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userId})
}
