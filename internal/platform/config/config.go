// Package config loads application configuration from environment variables.
// All variables use the STUDY_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	AI       AIConfig
	Notes    NotesConfig
	Study    StudyConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int
	Host        string
	CORSOrigins string
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL keeps
// conversation history in memory.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis connection settings. An empty URL disables the
// note-content cache.
type CacheConfig struct {
	URL string
}

// AIConfig holds configuration for all AI providers.
type AIConfig struct {
	OpenAI       OpenAIConfig
	DeepSeek     DeepSeekConfig
	Ollama       OllamaConfig
	DefaultModel string
	MaxTokens    int
	Temperature  float64

	// SessionTokenBudget caps total tokens per chat session; 0 is unlimited.
	SessionTokenBudget int
}

// OpenAIConfig holds OpenAI provider settings.
type OpenAIConfig struct {
	APIKey string
}

// DeepSeekConfig holds DeepSeek provider settings (OpenAI-compatible).
type DeepSeekConfig struct {
	APIKey string
}

// OllamaConfig holds self-hosted Ollama settings.
type OllamaConfig struct {
	Enabled bool
	URL     string
}

// NotesConfig holds the study-material library settings.
type NotesConfig struct {
	Dir string
}

// StudyConfig holds study tool defaults.
type StudyConfig struct {
	PresetsPath   string // optional YAML preset overrides
	QuizQuestions int
	Flashcards    int
	SummaryLength string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with STUDY_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        envInt("STUDY_SERVER_PORT", 8080),
			Host:        envStr("STUDY_SERVER_HOST", "0.0.0.0"),
			CORSOrigins: envStr("STUDY_CORS_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			URL:      envStr("STUDY_DATABASE_URL", ""),
			MaxConns: envInt("STUDY_DATABASE_MAX_CONNS", 25),
			MinConns: envInt("STUDY_DATABASE_MIN_CONNS", 5),
		},
		Cache: CacheConfig{
			URL: envStr("STUDY_CACHE_URL", ""),
		},
		AI: AIConfig{
			OpenAI: OpenAIConfig{
				APIKey: envStr("STUDY_AI_OPENAI_API_KEY", ""),
			},
			DeepSeek: DeepSeekConfig{
				APIKey: envStr("STUDY_AI_DEEPSEEK_API_KEY", ""),
			},
			Ollama: OllamaConfig{
				Enabled: envBool("STUDY_AI_OLLAMA_ENABLED", false),
				URL:     envStr("STUDY_AI_OLLAMA_URL", "http://localhost:11434"),
			},
			DefaultModel: envStr("STUDY_AI_DEFAULT_MODEL", ""),
			MaxTokens:    envInt("STUDY_AI_MAX_TOKENS", 2000),
			Temperature:  envFloat("STUDY_AI_TEMPERATURE", 1.0),

			SessionTokenBudget: envInt("STUDY_AI_SESSION_TOKEN_BUDGET", 0),
		},
		Notes: NotesConfig{
			Dir: envStr("STUDY_NOTES_DIR", "./data/notes"),
		},
		Study: StudyConfig{
			PresetsPath:   envStr("STUDY_PRESETS_PATH", ""),
			QuizQuestions: envInt("STUDY_DEFAULT_QUIZ_QUESTIONS", 5),
			Flashcards:    envInt("STUDY_DEFAULT_FLASHCARDS", 7),
			SummaryLength: envStr("STUDY_DEFAULT_SUMMARY_LENGTH", "brief"),
		},
		Log: LogConfig{
			Level:  envStr("STUDY_LOG_LEVEL", "info"),
			Format: envStr("STUDY_LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if !c.HasAIProvider() {
		return fmt.Errorf("at least one AI provider must be configured")
	}

	switch c.Study.SummaryLength {
	case "brief", "detailed", "comprehensive":
	default:
		return fmt.Errorf("STUDY_DEFAULT_SUMMARY_LENGTH must be brief, detailed or comprehensive, got %q", c.Study.SummaryLength)
	}

	if c.Study.QuizQuestions < 1 || c.Study.Flashcards < 1 {
		return fmt.Errorf("study defaults must be positive")
	}

	return nil
}

// HasAIProvider returns true if at least one AI provider is configured.
func (c *Config) HasAIProvider() bool {
	return c.AI.OpenAI.APIKey != "" ||
		c.AI.DeepSeek.APIKey != "" ||
		c.AI.Ollama.Enabled
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
