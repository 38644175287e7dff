package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jayprakash-mahato/dchat/internal/db"
	"github.com/jayprakash-mahato/dchat/internal/model"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var ErrConversationNotFound = errors.New("conversation not found")

type ConversationRepository interface {
	Create(ctx context.Context, memberA, memberB string) (string, error)
	ListForMember(ctx context.Context, userID string) ([]model.Conversation, error)
	FindByMembers(ctx context.Context, memberA, memberB string) (*model.Conversation, error)
}

type conversationRepository struct {
	mongoRepo *db.Repository[model.Conversation]
	logger    *zap.Logger
}

func NewConversationRepository(repo *db.Repository[model.Conversation], logger *zap.Logger) ConversationRepository {
	return &conversationRepository{
		mongoRepo: repo,
		logger:    logger,
	}
}

// Create inserts a new conversation for the pair. It intentionally does
// not check for an existing conversation between the same members; see
// the duplicate-conversation note in DESIGN.md.
func (r *conversationRepository) Create(ctx context.Context, memberA, memberB string) (string, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	conversation := model.Conversation{
		Members:   []string{memberA, memberB},
		CreatedAt: time.Now().UTC(),
	}

	result, err := r.mongoRepo.Create(ctx, conversation)
	if err != nil {
		r.logger.Error("failed to insert conversation",
			zap.String("member_a", memberA),
			zap.String("member_b", memberB),
			zap.Error(err),
		)
		return "", fmt.Errorf("insert conversation: %w", err)
	}

	return insertedHex(result), nil
}

func (r *conversationRepository) ListForMember(ctx context.Context, userID string) ([]model.Conversation, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().In("members", []string{userID}).Build()

	conversations, err := r.mongoRepo.FindAll(ctx, filter)
	if err != nil {
		r.logger.Error("failed to list conversations", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return conversations, nil
}

// FindByMembers resolves the conversation containing both members. Used by
// the history endpoint when the client has not started a conversation yet.
func (r *conversationRepository) FindByMembers(ctx context.Context, memberA, memberB string) (*model.Conversation, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().All("members", []string{memberA, memberB}).Build()

	conversation, err := r.mongoRepo.FindOne(ctx, filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("find conversation by members: %w", err)
	}
	return conversation, nil
}
