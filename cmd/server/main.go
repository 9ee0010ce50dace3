package main

import (
	"log/slog"
	"os"

	"boardsync/internal/config"
	"boardsync/internal/server"
)

// @title           Boardsync API
// @version         1.0
// @description     Collaborative boards with ordered lists and cards, kept in sync over websockets.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	s, err := server.Init(cfg)
	if err != nil {
		slog.Error("❌ Server initialization failed", "error", err)
		os.Exit(1)
	}

	s.Run()
}
