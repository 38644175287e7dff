package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jayprakash-mahato/dchat/internal/db"
	"github.com/jayprakash-mahato/dchat/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var ErrInvalidMessage = errors.New("invalid message: body and sender are required")

type MessageRepository interface {
	Insert(ctx context.Context, msg *model.Message) (string, error)
	ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error)
}

type messageRepository struct {
	mongoRepo *db.Repository[model.Message]
	logger    *zap.Logger
}

func NewMessageRepository(repo *db.Repository[model.Message], logger *zap.Logger) MessageRepository {
	return &messageRepository{
		mongoRepo: repo,
		logger:    logger,
	}
}

func (m *messageRepository) Insert(ctx context.Context, msg *model.Message) (string, error) {
	if msg == nil || msg.Body == "" || msg.SenderID == "" {
		return "", ErrInvalidMessage
	}

	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	result, err := m.mongoRepo.Create(ctx, *msg)
	if err != nil {
		m.logger.Error("failed to insert message",
			zap.String("conversation_id", msg.ConversationID.Hex()),
			zap.String("sender_id", msg.SenderID),
			zap.Error(err),
		)
		return "", fmt.Errorf("insert message: %w", err)
	}

	insertedID := insertedHex(result)
	m.logger.Debug("message inserted",
		zap.String("inserted_id", insertedID),
		zap.String("conversation_id", msg.ConversationID.Hex()),
	)
	return insertedID, nil
}

// ListByConversation returns the conversation's messages in insertion order.
func (m *messageRepository) ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().ObjectID("conversation_id", conversationID)
	if err := filter.Err(); err != nil {
		// an id that can never match selects nothing
		m.logger.Debug("unmatchable conversation id",
			zap.String("conversation_id", conversationID),
			zap.Error(err),
		)
		return []model.Message{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	messages, err := m.mongoRepo.FindAll(ctx, filter.Build(), opts)
	if err != nil {
		m.logger.Error("failed to list messages",
			zap.String("conversation_id", conversationID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}
