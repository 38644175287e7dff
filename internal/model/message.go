package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message belongs to exactly one conversation and is immutable once
// stored. Insertion order doubles as chronological order.
type Message struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ConversationID primitive.ObjectID `json:"conversationId" bson:"conversation_id"`
	SenderID       string             `json:"senderId" bson:"sender_id"`
	Body           string             `json:"message" bson:"body"`
	CreatedAt      time.Time          `json:"createdAt" bson:"created_at"`
}

// MessageView is a stored message joined with its sender's display
// attributes, as returned by the history endpoint.
type MessageView struct {
	User    UserSummary `json:"user"`
	Message string      `json:"message"`
}
