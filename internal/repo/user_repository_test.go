package repo

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

// An exclude id that cannot be a real ObjectID must fail instead of
// degrading into an unfiltered listing that includes the caller.
func TestListOthersInvalidIDFails(t *testing.T) {
	repo := NewUserRepository(nil, zap.NewNop())

	users, err := repo.ListOthers(context.Background(), "not-a-hex-id")
	if err == nil {
		t.Fatal("expected an error for an invalid user id")
	}
	if users != nil {
		t.Fatalf("expected no users, got %d", len(users))
	}
}
