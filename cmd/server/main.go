package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/campusware/peerlink/internal/config"
	"github.com/campusware/peerlink/internal/domain/engagement"
	"github.com/campusware/peerlink/internal/domain/relationship"
	"github.com/campusware/peerlink/internal/domain/request"
	"github.com/campusware/peerlink/internal/domain/ticket"
	"github.com/campusware/peerlink/internal/httpapi"
	"github.com/campusware/peerlink/internal/mcp"
	"github.com/campusware/peerlink/internal/ranker"
	"github.com/campusware/peerlink/internal/sqlite"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	requestRepo := sqlite.NewRequestRepository(db)
	relationshipRepo := sqlite.NewRelationshipRepository(db)
	ticketRepo := sqlite.NewTicketRepository(db)
	actorRepo := sqlite.NewActorRepository(db)

	relationshipSvc := relationship.NewService(relationshipRepo, logger)
	requestSvc := request.NewService(requestRepo, relationshipSvc, logger)
	ticketSvc := ticket.NewService(ticketRepo, logger)

	rankerClient := ranker.New(cfg.Ranker.BaseURL, nil)
	engagementSvc := engagement.NewService(rankerClient, requestSvc, relationshipSvc, logger)

	resolver := &apiTokenResolver{actors: actorRepo}
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Engagement: engagementSvc,
			Tickets:    ticketSvc,
		},
		Resolver:      resolver,
		AuthEnabled:   cfg.Auth.Enabled,
		DefaultActor:  cfg.Auth.DefaultActorID,
		TransportMode: cfg.Transport.Mode,
		Logger:        logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
		return
	}
	runHTTPMode(logger, cfg, mcpServer, engagementSvc, ticketSvc, resolver)
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	transport := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, transport); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, cfg config.Config, mcpServer *sdkmcp.Server, engagementSvc httpapi.EngagementService, ticketSvc httpapi.TicketService, resolver *apiTokenResolver) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	authMiddleware := httpapi.AuthMiddleware(resolver)
	if !cfg.Auth.Enabled {
		authMiddleware = httpapi.StaticActorMiddleware(cfg.Auth.DefaultActorID)
	}

	router := httpapi.NewRouter(engagementSvc, ticketSvc, authMiddleware)
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// apiTokenResolver maps raw bearer tokens to actor IDs via their SHA-256 hash.
type apiTokenResolver struct {
	actors *sqlite.ActorRepository
}

func (r *apiTokenResolver) ResolveActor(ctx context.Context, token string) (int64, error) {
	actorID, err := r.actors.ResolveToken(ctx, hashToken(token))
	if err != nil {
		return 0, fmt.Errorf("unauthorized: invalid token")
	}
	return actorID, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
