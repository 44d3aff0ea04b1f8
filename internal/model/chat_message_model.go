package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is one persisted query/response exchange. Documents expire
// after two days via a TTL index on createdAt.
type ChatMessage struct {
	Id        primitive.ObjectID `bson:"_id,omitempty"`
	UserId    primitive.ObjectID `bson:"userId"`
	Query     string             `bson:"query"`
	Response  string             `bson:"response"`
	Source    string             `bson:"source"`
	Page      string             `bson:"page"`
	CreatedAt time.Time          `bson:"createdAt"`
}

const ChatMessageCollection = "chatmessages"
