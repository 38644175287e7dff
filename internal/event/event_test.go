package event

import (
	"encoding/json"
	"testing"
)

func TestNewWrapsPayload(t *testing.T) {
	ev, err := New(EventMessageDelivered, MessageDelivered{
		SenderID:       "alice",
		ReceiverID:     "bob",
		ConversationID: "conv-1",
		Message:        "hello",
		Sender:         Sender{ID: "alice", FullName: "Alice Doe", Email: "alice@example.com"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ev.Type != EventMessageDelivered {
		t.Fatalf("unexpected type: %q", ev.Type)
	}

	var payload MessageDelivered
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if payload.Message != "hello" || payload.Sender.FullName != "Alice Doe" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestEnvelopeDecodesInboundFrame(t *testing.T) {
	frame := []byte(`{"event":"send-message","payload":{"senderId":"alice","receiverId":"bob","message":"hi","conversationId":"new"}}`)

	var ev Event
	if err := json.Unmarshal(frame, &ev); err != nil {
		t.Fatalf("Unmarshal envelope: %v", err)
	}
	if ev.Type != EventSendMessage {
		t.Fatalf("unexpected type: %q", ev.Type)
	}

	var req SendMessage
	if err := json.Unmarshal(ev.Payload, &req); err != nil {
		t.Fatalf("Unmarshal payload: %v", err)
	}
	if req.SenderID != "alice" || req.ConversationID != "new" {
		t.Fatalf("unexpected request: %+v", req)
	}
}
