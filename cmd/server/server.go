package server

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/avolkov/slack-lite/internal/chat"
	"github.com/avolkov/slack-lite/internal/database"
	"github.com/avolkov/slack-lite/internal/handlers"
	"github.com/avolkov/slack-lite/internal/presence"
	"github.com/avolkov/slack-lite/internal/session"
	"github.com/avolkov/slack-lite/internal/storage"
	ws "github.com/avolkov/slack-lite/internal/websocket"
	"github.com/avolkov/slack-lite/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
	UploadDir  string
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		8*time.Hour,
	)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	uploader, err := storage.NewDiskUploader(uploadDir, baseURL)
	if err != nil {
		log.Fatalf("upload storage init failed: %v", err)
	}

	// Presence is rebuilt from zero on every start; only the registry and
	// the hub share it.
	registry := presence.NewRegistry()
	hub := ws.NewHub(registry)

	sessionMgr := session.NewManager(registry, hub)
	pipeline := chat.NewPipeline(dbConn, hub)

	eventRouter := handlers.NewEventRouter(sessionMgr, pipeline)
	hub.SetObserver(eventRouter)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	channelH := handlers.NewChannelHandler(dbConn, hub)
	messageH := handlers.NewMessageHandler(pipeline)
	uploadH := handlers.NewUploadHandler(uploader)
	wsH := handlers.NewWebSocketHandler(hub, eventRouter)

	router := gin.Default()
	APIEndpoints(router, authH, channelH, messageH, uploadH, wsH, jwtMgr, rdb, uploadDir)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
		UploadDir:  uploadDir,
	}
}

func (s *Server) Run() {
	go s.Hub.Run()
	defer s.Hub.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
