package hub

import (
	"context"

	"github.com/jayprakash-mahato/dchat/internal/event"
	"github.com/jayprakash-mahato/dchat/internal/model"

	"go.uber.org/zap"
)

// UserFinder is the slice of the persistence layer the relay needs: it
// looks up the sender's display attributes for the outbound payload.
// Satisfied by repo.UserRepository.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Relay takes a send-message request, resolves the receiver's live
// connections and pushes a message-delivered frame to each of them plus
// the originating connection. Delivery is fire and forget: there is no
// acknowledgement, no retry and no queue. Durable storage of the message
// happens on a separate request path and is not the relay's job.
type Relay struct {
	registry *Registry
	users    UserFinder
	logger   *zap.Logger
}

func NewRelay(registry *Registry, users UserFinder, logger *zap.Logger) *Relay {
	return &Relay{
		registry: registry,
		users:    users,
		logger:   logger,
	}
}

// Relay handles one send-message request from origin.
//
// The sender lookup is the only call here that may block; it runs without
// any registry lock held, so a slow lookup never stalls connect or
// disconnect traffic. When the sender id does not resolve, the relay is
// logged and dropped: zero pushes, registry untouched.
//
// The echo to origin means a client never renders its own message
// optimistically; it updates from the delivery frame exactly once, the
// same way the receiving side does.
func (r *Relay) Relay(ctx context.Context, origin *Client, req event.SendMessage) {
	receivers := r.registry.Resolve(req.ReceiverID)

	sender, err := r.users.FindByID(ctx, req.SenderID)
	if err != nil {
		r.logger.Warn("relay dropped: sender not found",
			zap.String("sender_id", req.SenderID),
			zap.String("receiver_id", req.ReceiverID),
			zap.Error(err),
		)
		return
	}

	payload := event.MessageDelivered{
		SenderID:       req.SenderID,
		ReceiverID:     req.ReceiverID,
		ConversationID: req.ConversationID,
		Message:        req.Message,
		Sender: event.Sender{
			ID:       sender.ID.Hex(),
			FullName: sender.FullName,
			Email:    sender.Email,
		},
	}

	ev, err := event.New(event.EventMessageDelivered, payload)
	if err != nil {
		r.logger.Error("failed to encode delivery frame", zap.Error(err))
		return
	}

	origin.Send(ev)
	for _, c := range receivers {
		if c == origin {
			continue
		}
		c.Send(ev)
	}

	r.logger.Debug("message relayed",
		zap.String("sender_id", req.SenderID),
		zap.String("receiver_id", req.ReceiverID),
		zap.Int("receiver_connections", len(receivers)),
	)
}
