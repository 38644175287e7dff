package configuration

import (
	"context"
	"fmt"
	"time"

	"github.com/jayprakash-mahato/dchat/internal/db"
	"github.com/jayprakash-mahato/dchat/internal/handler"
	"github.com/jayprakash-mahato/dchat/internal/hub"
	"github.com/jayprakash-mahato/dchat/internal/model"
	"github.com/jayprakash-mahato/dchat/internal/repo"
	"github.com/jayprakash-mahato/dchat/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Container struct {
	AuthHandler    handler.AuthHandler
	ChatHandler    handler.ChatHandler
	MonitorHandler handler.MonitorHandler
	AuthService    service.AuthService
	Hub            *hub.Hub
	Config         Config
	Logger         *zap.Logger

	// private - for cleanup
	mongoDB *mongo.Database
}

func BuildContainer(configPath string) (*Container, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	con, err := db.OpenConnection(config.ChatDatabase.Uri, config.ChatDatabase.Database)
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	userStore := db.NewRepository[model.User](con, config.ChatDatabase.UsersCollection)
	conversationStore := db.NewRepository[model.Conversation](con, config.ChatDatabase.ConversationsCollection)
	messageStore := db.NewRepository[model.Message](con, config.ChatDatabase.MessagesCollection)

	userRepo := repo.NewUserRepository(userStore, logger)
	conversationRepo := repo.NewConversationRepository(conversationStore, logger)
	messageRepo := repo.NewMessageRepository(messageStore, logger)

	authService := service.NewAuthService(
		userRepo,
		config.Auth.JWTSecret,
		time.Duration(config.Auth.TokenTTLHours)*time.Hour,
		logger,
	)
	chatService := service.NewChatService(userRepo, conversationRepo, messageRepo, logger)

	socketHub := hub.NewHub(userRepo, config.Server.AllowedOrigins, logger)

	return &Container{
		AuthHandler:    handler.NewAuthHandler(authService),
		ChatHandler:    handler.NewChatHandler(chatService),
		MonitorHandler: handler.NewMonitorHandler(hub.NewMonitorService(socketHub)),
		AuthService:    authService,
		Hub:            socketHub,
		Config:         *config,
		Logger:         logger,
		mongoDB:        con,
	}, nil
}

// Close gracefully shuts down all connections.
func (c *Container) Close() error {
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	if c.mongoDB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.mongoDB.Client().Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to close MongoDB connection: %w", err)
		}
	}

	return nil
}
