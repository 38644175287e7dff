package db

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestObjectIDAddsCondition(t *testing.T) {
	id := primitive.NewObjectID()

	f := NewFilter().ObjectID("conversation_id", id.Hex())
	if err := f.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}

	filter := f.Build()
	got, ok := filter["conversation_id"]
	if !ok {
		t.Fatalf("condition missing from filter: %v", filter)
	}
	if got != id {
		t.Fatalf("unexpected condition value: %v", got)
	}
}

func TestObjectIDRejectsInvalidHex(t *testing.T) {
	f := NewFilter().ObjectID("conversation_id", "not-a-hex-id")
	if f.Err() == nil {
		t.Fatal("expected an error for an invalid id")
	}
	if len(f.Build()) != 0 {
		t.Fatalf("invalid id must not add a condition: %v", f.Build())
	}
}

func TestObjectIDKeepsFirstError(t *testing.T) {
	f := NewFilter().
		ObjectID("_id", "bad").
		ObjectID("conversation_id", "also-bad")

	err := f.Err()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), `"bad"`) {
		t.Fatalf("expected first error to win, got %v", err)
	}
}

func TestFilterConditionsCompose(t *testing.T) {
	filter := NewFilter().
		Eq("email", "alice@example.com").
		Ne("_id", "x").
		Build()

	if len(filter) != 2 {
		t.Fatalf("unexpected filter: %v", filter)
	}
}
