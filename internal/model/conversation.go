package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is an unordered pair of user ids. It is created lazily the
// first time two users exchange a message, or explicitly via the API.
// Membership always holds exactly two distinct user ids.
type Conversation struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Members   []string           `json:"members" bson:"members"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// ConversationSummary pairs a conversation id with the peer's display
// attributes, as returned by the conversation listing endpoint.
type ConversationSummary struct {
	ConversationID string      `json:"conversationId"`
	User           UserSummary `json:"user"`
}

// Peer returns the member that is not userID. Empty when userID is not
// a member.
func (c *Conversation) Peer(userID string) string {
	for _, m := range c.Members {
		if m != userID {
			return m
		}
	}
	return ""
}
