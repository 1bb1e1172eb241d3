package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"planpokergo/internal/config"
	"planpokergo/internal/http/http_server"
	"planpokergo/internal/services/game"
	"planpokergo/internal/store"
	"planpokergo/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. In-memory room store (rooms live for the process lifetime)
	rooms := store.New()

	// 4. WebSockets hub: per-room fan-out of view actions
	hub := ws.NewHub()

	// 5. Room engine; the hub delivers its change notifications
	gameService := game.NewGameService(rooms, hub)

	// 6. Initialize the WS server
	wsSrv := ws.NewWsServer(hub, cfg.AllowedOrigins)

	// 7. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, wsSrv, gameService, cfg.AllowedOrigins)
	go func() {
		<-ctx.Done()
		_ = httpServer.Dispose()
	}()
	if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
