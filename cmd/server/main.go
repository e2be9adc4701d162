package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/studydesk/studydesk/internal/ai"
	"github.com/studydesk/studydesk/internal/chat"
	"github.com/studydesk/studydesk/internal/notes"
	"github.com/studydesk/studydesk/internal/platform/cache"
	"github.com/studydesk/studydesk/internal/platform/config"
	"github.com/studydesk/studydesk/internal/platform/database"
	"github.com/studydesk/studydesk/internal/server"
	"github.com/studydesk/studydesk/internal/study"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Optional PostgreSQL-backed history and analytics.
	var store chat.SessionStore
	var events chat.EventLogger = chat.NopEventLogger{}
	readiness := map[string]server.HealthChecker{}

	if cfg.Database.URL != "" {
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			slog.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}

		store, err = chat.NewPostgresStore(db.Pool)
		if err != nil {
			slog.Error("failed to create session store", "error", err)
			os.Exit(1)
		}
		events = chat.NewPostgresEventLogger(db.Pool)
		readiness["database"] = db
		slog.Info("session history backed by postgres")
	} else {
		store = chat.NewMemoryStore()
		slog.Info("session history held in memory")
	}

	// Optional Redis cache for assembled topic content.
	var libraryOpts []notes.Option
	if cfg.Cache.URL != "" {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			slog.Error("failed to connect to cache", "error", err)
			os.Exit(1)
		}
		defer c.Close()
		libraryOpts = append(libraryOpts, notes.WithCache(c))
		readiness["cache"] = c
	}

	library := notes.NewLibrary(cfg.Notes.Dir, libraryOpts...)

	// Env values seed the defaults; the YAML presets file has the last word.
	presets := study.DefaultPresets()
	presets.QuizQuestions = cfg.Study.QuizQuestions
	presets.FlashcardCount = cfg.Study.Flashcards
	presets.SummaryLength = study.SummaryLength(cfg.Study.SummaryLength)
	if err := presets.LoadFile(cfg.Study.PresetsPath); err != nil {
		slog.Error("failed to load study presets", "error", err)
		os.Exit(1)
	}

	var budget *ai.SessionBudget
	if cfg.AI.SessionTokenBudget > 0 {
		budget = ai.NewSessionBudget(int64(cfg.AI.SessionTokenBudget))
	}

	engine := chat.NewEngine(chat.EngineConfig{
		Router:      buildRouter(cfg),
		Store:       store,
		Events:      events,
		Notes:       library,
		Presets:     presets,
		Budget:      budget,
		Model:       cfg.AI.DefaultModel,
		MaxTokens:   cfg.AI.MaxTokens,
		Temperature: cfg.AI.Temperature,
	})

	srv := server.New(server.Config{
		Engine:      engine,
		Library:     library,
		Readiness:   readiness,
		CORSOrigins: splitOrigins(cfg.Server.CORSOrigins),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:        addr,
		Handler:     srv.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
		// No WriteTimeout: chat responses stream over long-lived
		// SSE and WebSocket connections.
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "notes_dir", cfg.Notes.Dir)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// buildRouter registers every configured AI provider in fallback order.
func buildRouter(cfg *config.Config) *ai.Router {
	router := ai.NewRouter()
	if cfg.AI.OpenAI.APIKey != "" {
		router.Register("openai", ai.NewOpenAIProvider(cfg.AI.OpenAI.APIKey))
		slog.Info("registered AI provider", "provider", "openai")
	}
	if cfg.AI.DeepSeek.APIKey != "" {
		router.Register("deepseek", ai.NewDeepSeekProvider(cfg.AI.DeepSeek.APIKey))
		slog.Info("registered AI provider", "provider", "deepseek")
	}
	if cfg.AI.Ollama.Enabled {
		router.Register("ollama", ai.NewOllamaProvider(cfg.AI.Ollama.URL))
		slog.Info("registered AI provider", "provider", "ollama", "url", cfg.AI.Ollama.URL)
	}
	return router
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
