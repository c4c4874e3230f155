package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/avolkov/slack-lite/internal/handlers"
	"github.com/avolkov/slack-lite/internal/middleware"
	"github.com/avolkov/slack-lite/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	authH *handlers.AuthHandler,
	channelH *handlers.ChannelHandler,
	messageH *handlers.MessageHandler,
	uploadH *handlers.UploadHandler,
	wsH *handlers.WebSocketHandler,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	uploadDir string,
) {
	r.Static("/uploads", uploadDir)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", authH.Logout)
	}

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/channels", channelH.ListChannels)
		api.POST("/channels", channelH.CreateChannel)
		api.DELETE("/channels/:id", channelH.DeleteChannel)
		api.GET("/channels/:id/messages", channelH.GetChannelMessages)
		api.PUT("/messages/:id", messageH.UpdateMessage)
		api.POST("/upload", uploadH.Upload)
	}

	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
