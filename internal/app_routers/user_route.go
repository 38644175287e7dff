package approuters

import (
	"github.com/jayprakash-mahato/dchat/internal/configuration"
	"github.com/jayprakash-mahato/dchat/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRouters(router *gin.Engine, container *configuration.Container) {
	authRoute := router.Group("/api")
	{
		authRoute.POST("/register", container.AuthHandler.Register)
		authRoute.POST("/login", container.AuthHandler.Login)
	}
}

func ChatRouters(router *gin.Engine, container *configuration.Container) {
	chatRoute := router.Group("/api")
	chatRoute.Use(middleware.AuthRequired(container.AuthService))
	{
		chatRoute.GET("/users/:userId", container.ChatHandler.ListUsers)
		chatRoute.POST("/conversation", container.ChatHandler.CreateConversation)
		chatRoute.GET("/conversations/:userId", container.ChatHandler.ListConversations)
		chatRoute.POST("/message", container.ChatHandler.SaveMessage)
		chatRoute.GET("/message/:conversationId", container.ChatHandler.ListMessages)
	}
}
