package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boardsync/docs"
	"boardsync/internal/config"
	"boardsync/internal/database"
	"boardsync/internal/handler"
	"boardsync/internal/middleware"
	"boardsync/internal/ordering"
	"boardsync/internal/realtime"
	"boardsync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Hub    *realtime.Hub

	log       *slog.Logger
	redis     *redis.Client
	stopRelay context.CancelFunc
	relayDone <-chan struct{}
}

// Init connects to the configured database and builds the server.
func Init(cfg *config.Config) (*Server, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	slog.Info("✅ Connected to database", "driver", cfg.DBDriver)

	return New(cfg, db, slog.Default())
}

// New wires repositories, the ordering engine, the realtime hub and the
// routes on top of an open database. When cfg.RedisURL is set, events are
// relayed through Redis so every instance's subscribers see them.
func New(cfg *config.Config, db *gorm.DB, log *slog.Logger) (*Server, error) {
	s := &Server{DB: db, Config: cfg, log: log}

	engine := ordering.NewEngine(db)

	hubOpts := []realtime.HubOption{realtime.WithLogger(log)}
	var relay *realtime.RedisRelay
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		s.redis = redis.NewClient(opts)
		relay = realtime.NewRedisRelay(s.redis, realtime.DefaultRelayChannel, log)
		hubOpts = append(hubOpts, realtime.WithPublisher(relay))
	}
	s.Hub = realtime.NewHub(engine, hubOpts...)

	if relay != nil {
		ctx, cancel := context.WithCancel(context.Background())
		done, err := relay.Subscribe(ctx, s.Hub.Deliver)
		if err != nil {
			cancel()
			s.redis.Close()
			return nil, err
		}
		s.stopRelay, s.relayDone = cancel, done
		log.Info("✅ Realtime relay subscribed", "channel", realtime.DefaultRelayChannel)
	}

	userRepo := repository.NewUserRepository(db)

	userHandler := handler.NewUserHandler(userRepo, engine, cfg.JWTSecret, cfg.JWTExpiry)
	boardHandler := handler.NewBoardHandler(engine, s.Hub, s.Hub)
	listHandler := handler.NewListHandler(engine, s.Hub)
	cardHandler := handler.NewCardHandler(engine, s.Hub)
	connectorHandler := handler.NewConnectorHandler(engine, s.Hub)
	wsHandler := handler.NewWSHandler(s.Hub, cfg.CORSAllowedOrigins)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Observe(log))

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.InstanceName(docs.SwaggerInfo.InstanceName())))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		authorized.GET("/ws", wsHandler.Serve)
		authorized.GET("/users/stats", userHandler.Stats)

		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards", boardHandler.GetAll)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)
		authorized.POST("/boards/:id/members", boardHandler.AddMember)
		authorized.DELETE("/boards/:id/members/:userId", boardHandler.RemoveMember)
		authorized.GET("/boards/:id/presence", boardHandler.Presence)

		// List routes
		authorized.POST("/lists/reorder", listHandler.Reorder)
		authorized.POST("/lists", listHandler.Create)
		authorized.PUT("/lists/:id", listHandler.Update)
		authorized.DELETE("/lists/:id", listHandler.Delete)

		// Card routes
		authorized.POST("/cards", cardHandler.Create)
		authorized.PUT("/cards/:id", cardHandler.Update)
		authorized.DELETE("/cards/:id", cardHandler.Delete)
		authorized.POST("/cards/:id/move", cardHandler.Move)
		authorized.POST("/cards/:id/assignees", cardHandler.AddAssignee)
		authorized.DELETE("/cards/:id/assignees/:userId", cardHandler.RemoveAssignee)
		authorized.POST("/cards/:id/comments", cardHandler.Comment)

		// Connector routes
		authorized.POST("/connectors", connectorHandler.Create)
		authorized.GET("/connectors/board/:boardId", connectorHandler.GetByBoard)
		authorized.PUT("/connectors/:id", connectorHandler.Update)
		authorized.DELETE("/connectors/:id", connectorHandler.Delete)
	}

	s.Engine = r
	return s, nil
}

// Handler is the router behind the CORS policy.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.Config.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(s.Engine)
}

func (s *Server) health(c *gin.Context) {
	sqlDB, err := s.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "connections": s.Hub.ConnectionCount()})
}

// Close disconnects websocket clients and stops the relay.
func (s *Server) Close() {
	s.Hub.Close()
	if s.stopRelay != nil {
		s.stopRelay()
		<-s.relayDone
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.log.Warn("failed to close redis client", "error", err)
		}
	}
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.log.Info("🚀 Server running", "port", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("❌ Failed to listen", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.log.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Close()
	if err := srv.Shutdown(ctx); err != nil {
		s.log.Error("❌ Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	s.log.Info("✅ Server exited properly")
}
