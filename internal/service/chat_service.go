package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jayprakash-mahato/dchat/internal/model"
	"github.com/jayprakash-mahato/dchat/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// NewConversationID is the sentinel conversation id clients send before a
// conversation between the pair exists.
const NewConversationID = "new"

var ErrInvalidInput = errors.New("invalid input")

type ChatService interface {
	CreateConversation(ctx context.Context, senderID, receiverID string) (string, error)
	ListConversations(ctx context.Context, userID string) ([]model.ConversationSummary, error)
	SaveMessage(ctx context.Context, conversationID, senderID, body, receiverID string) error
	ListMessages(ctx context.Context, conversationID, senderID, receiverID string) ([]model.MessageView, error)
	ListUsers(ctx context.Context, excludeID string) ([]model.UserSummary, error)
}

type chatService struct {
	users         repo.UserRepository
	conversations repo.ConversationRepository
	messages      repo.MessageRepository
	logger        *zap.Logger
}

func NewChatService(
	users repo.UserRepository,
	conversations repo.ConversationRepository,
	messages repo.MessageRepository,
	logger *zap.Logger,
) ChatService {
	return &chatService{
		users:         users,
		conversations: conversations,
		messages:      messages,
		logger:        logger,
	}
}

func (s *chatService) CreateConversation(ctx context.Context, senderID, receiverID string) (string, error) {
	if senderID == "" || receiverID == "" || senderID == receiverID {
		return "", ErrInvalidInput
	}
	return s.conversations.Create(ctx, senderID, receiverID)
}

// ListConversations returns the user's conversations, each joined with the
// peer's display attributes.
func (s *chatService) ListConversations(ctx context.Context, userID string) ([]model.ConversationSummary, error) {
	conversations, err := s.conversations.ListForMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		peerID := conversation.Peer(userID)
		peer, err := s.users.FindByID(ctx, peerID)
		if err != nil {
			if errors.Is(err, repo.ErrUserNotFound) {
				s.logger.Warn("conversation peer missing",
					zap.String("conversation_id", conversation.ID.Hex()),
					zap.String("peer_id", peerID),
				)
				continue
			}
			return nil, err
		}

		summaries = append(summaries, model.ConversationSummary{
			ConversationID: conversation.ID.Hex(),
			User:           peer.Summary(),
		})
	}
	return summaries, nil
}

// SaveMessage durably stores one message. When conversationID is "new" the
// conversation is created first. This path is deliberately independent of
// socket relay delivery; see the persist/relay decoupling note in DESIGN.md.
func (s *chatService) SaveMessage(ctx context.Context, conversationID, senderID, body, receiverID string) error {
	body = strings.TrimSpace(body)
	if senderID == "" || body == "" {
		return ErrInvalidInput
	}

	if conversationID == NewConversationID {
		if receiverID == "" {
			return ErrInvalidInput
		}
		created, err := s.conversations.Create(ctx, senderID, receiverID)
		if err != nil {
			return err
		}
		conversationID = created
	}

	objectID, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return fmt.Errorf("%w: bad conversation id", ErrInvalidInput)
	}

	_, err = s.messages.Insert(ctx, &model.Message{
		ConversationID: objectID,
		SenderID:       senderID,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	})
	return err
}

// ListMessages returns a conversation's history joined with sender display
// attributes. With conversationID "new" it resolves the conversation by the
// member pair and returns an empty history when none exists yet.
func (s *chatService) ListMessages(ctx context.Context, conversationID, senderID, receiverID string) ([]model.MessageView, error) {
	if conversationID == NewConversationID {
		conversation, err := s.conversations.FindByMembers(ctx, senderID, receiverID)
		if err != nil {
			if errors.Is(err, repo.ErrConversationNotFound) {
				return []model.MessageView{}, nil
			}
			return nil, err
		}
		conversationID = conversation.ID.Hex()
	}

	messages, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	// senders repeat heavily inside one conversation
	senders := make(map[string]model.UserSummary)

	views := make([]model.MessageView, 0, len(messages))
	for _, message := range messages {
		summary, ok := senders[message.SenderID]
		if !ok {
			sender, err := s.users.FindByID(ctx, message.SenderID)
			if err != nil {
				if errors.Is(err, repo.ErrUserNotFound) {
					s.logger.Warn("message sender missing",
						zap.String("message_id", message.ID.Hex()),
						zap.String("sender_id", message.SenderID),
					)
					continue
				}
				return nil, err
			}
			summary = sender.Summary()
			senders[message.SenderID] = summary
		}

		views = append(views, model.MessageView{
			User:    summary,
			Message: message.Body,
		})
	}
	return views, nil
}

func (s *chatService) ListUsers(ctx context.Context, excludeID string) ([]model.UserSummary, error) {
	users, err := s.users.ListOthers(ctx, excludeID)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.Summary())
	}
	return summaries, nil
}
