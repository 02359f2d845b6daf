package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/trainloop/fitcoach/internal/alert"
	"github.com/trainloop/fitcoach/internal/command"
	"github.com/trainloop/fitcoach/internal/config"
	"github.com/trainloop/fitcoach/internal/handler"
	assistantsvc "github.com/trainloop/fitcoach/internal/service/assistant"
	"github.com/trainloop/fitcoach/internal/service/coach"
	sessionsvc "github.com/trainloop/fitcoach/internal/service/session"
	"github.com/trainloop/fitcoach/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	kv, err := store.NewSQLite(cfg.Assistant.DBPath)
	if err != nil {
		log.Fatalf("failed to open settings store: %v", err)
	}
	defer kv.Close()

	sessions := sessionsvc.NewStore(
		sessionsvc.WithMaxSessions(cfg.Assistant.MaxSessions),
		sessionsvc.WithTTL(cfg.Assistant.SessionTTL),
	)
	sessions.StartSweeper(ctx, cfg.Assistant.SweepInterval)

	registry := command.NewRegistry(command.DefaultBindings())
	dispatcher := command.NewDispatcher()
	command.RegisterDefaultHandlers(dispatcher, alert.StaticAlerter{})

	canned := coach.NewCannedResponder(rand.NewSource(time.Now().UnixNano()))

	// Canned capabilities are the default; a configured chat model swaps
	// in the real responder.
	var responder coach.Responder = canned
	var llmResponder *coach.LLMResponder
	if cfg.Coach.Enabled() {
		chatModel, err := cfg.Coach.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize coach model: %v", err)
			log.Println("continuing with canned coaching replies")
		} else if llmResponder, err = coach.NewLLMResponder(ctx, chatModel, cfg.Coach.StreamResponse); err != nil {
			log.Printf("warning: failed to build coach chain: %v", err)
			log.Println("continuing with canned coaching replies")
		} else {
			responder = llmResponder
			log.Println("coach model initialized successfully")
		}
	} else {
		log.Println("coach model credentials not configured, using canned replies")
	}

	svc := assistantsvc.New(assistantsvc.Deps{
		Sessions:    sessions,
		Registry:    registry,
		Dispatcher:  dispatcher,
		Responder:   responder,
		Analyzer:    coach.CannedAnalyzer{},
		Planner:     coach.CannedPlanner{},
		Transcriber: &coach.CannedTranscriber{},
		KV:          kv,
	})

	if result := svc.Initialize(ctx); !result.Success {
		log.Fatalf("assistant initialization failed: %s", result.Error)
	}
	defer svc.Cleanup(context.Background())

	router := handler.NewRouter(svc, sessions, llmResponder, canned)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("fitcoach backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
