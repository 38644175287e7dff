package event

import "encoding/json"

const (
	// client -> server
	EventAnnounce    = "announce"
	EventSendMessage = "send-message"

	// server -> client
	EventPresenceUpdate   = "presence-update"
	EventMessageDelivered = "message-delivered"
)

// Event is the wire envelope for every frame exchanged over a socket.
// Payload stays raw until the event type is known.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Announce binds a connection to a logical user identity.
type Announce struct {
	UserID string `json:"userId"`
}

// PresenceEntry is one live user in a presence-update frame.
type PresenceEntry struct {
	UserID string `json:"userId"`
}

// PresenceUpdate carries the full current presence set. Clients use it
// for display only; no delivery logic depends on its content.
type PresenceUpdate struct {
	Users []PresenceEntry `json:"users"`
}

// SendMessage is the inbound relay request.
type SendMessage struct {
	SenderID       string `json:"senderId"`
	ReceiverID     string `json:"receiverId"`
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
}

// Sender carries the display attributes attached to a delivered message.
type Sender struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// MessageDelivered is the outbound delivery frame pushed to resolved
// recipients, the originating connection included.
type MessageDelivered struct {
	SenderID       string `json:"senderId"`
	ReceiverID     string `json:"receiverId"`
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
	Sender         Sender `json:"user"`
}

// New wraps a typed payload into an envelope.
func New(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, Payload: raw}, nil
}
