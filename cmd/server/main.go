package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/election/internal/adapters/broadcast"
	handler "github.com/vncsmyrnk/election/internal/adapters/handler/http"
	ws "github.com/vncsmyrnk/election/internal/adapters/handler/websocket"
	"github.com/vncsmyrnk/election/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/election/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "error", err)
		os.Exit(1)
	}

	sessionRepo := postgres.NewSessionRepository(db)
	candidateRepo := postgres.NewCandidateRepository(db)
	pollWorkerRepo := postgres.NewPollWorkerRepository(db)
	permitRepo := postgres.NewPermitRepository(db)
	resultRepo := postgres.NewResultRepository(db)

	registry := broadcast.NewRegistry(logger)

	authSvc := services.NewAuthorizationService(sessionRepo, candidateRepo, permitRepo, registry, logger)
	sessionSvc := services.NewSessionService(sessionRepo, resultRepo)
	candidateSvc := services.NewCandidateService(sessionRepo, candidateRepo)
	pollWorkerSvc := services.NewPollWorkerService(sessionRepo, pollWorkerRepo)
	summarySvc := services.NewSummaryService(sessionRepo, resultRepo)

	router := handler.NewHandler(
		handler.NewSessionHandler(sessionSvc, summarySvc),
		handler.NewCandidateHandler(candidateSvc),
		handler.NewPollWorkerHandler(pollWorkerSvc),
		handler.NewAuthorizationHandler(authSvc),
		ws.NewObserverHandler(authSvc, registry, logger),
	)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	server := &stdhttp.Server{Addr: addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}

func dbConnString() string {
	dbName := os.Getenv("POSTGRES_DB")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
