package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jayprakash-mahato/dchat/internal/db"
	"github.com/jayprakash-mahato/dchat/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user already exists")
)

const (
	defaultWriteTimeout = 5 * time.Second
	defaultReadTimeout  = 10 * time.Second
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (string, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListOthers(ctx context.Context, excludeID string) ([]model.User, error)
}

type userRepository struct {
	mongoRepo *db.Repository[model.User]
	logger    *zap.Logger
}

func NewUserRepository(repo *db.Repository[model.User], logger *zap.Logger) UserRepository {
	return &userRepository{
		mongoRepo: repo,
		logger:    logger,
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (string, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	exists, err := r.mongoRepo.Exists(ctx, db.NewFilter().Eq("email", user.Email).Build())
	if err != nil {
		return "", fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return "", ErrDuplicateEmail
	}

	result, err := r.mongoRepo.Create(ctx, *user)
	if err != nil {
		r.logger.Error("failed to insert user", zap.String("email", user.Email), zap.Error(err))
		return "", fmt.Errorf("insert user: %w", err)
	}

	return insertedHex(result), nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindOne(ctx, db.NewFilter().Eq("email", email).Build())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

func (r *userRepository) ListOthers(ctx context.Context, excludeID string) ([]model.User, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(excludeID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", excludeID, err)
	}

	users, err := r.mongoRepo.FindAll(ctx, db.NewFilter().Ne("_id", objectID).Build())
	if err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ensureTimeout applies a default deadline when the caller supplied none.
func ensureTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hadDeadline := ctx.Deadline(); hadDeadline {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func insertedHex(result *mongo.InsertOneResult) string {
	if result == nil || result.InsertedID == nil {
		return ""
	}
	if oid, ok := result.InsertedID.(interface{ Hex() string }); ok {
		return oid.Hex()
	}
	if str, ok := result.InsertedID.(string); ok {
		return str
	}
	return ""
}
