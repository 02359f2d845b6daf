package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every runtime setting for the service.
type Config struct {
	Server    ServerConfig
	Coach     CoachAIConfig
	Assistant AssistantConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	coachAI, err := loadCoachAIConfig()
	if err != nil {
		return nil, err
	}

	assistant, err := loadAssistantConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Coach: coachAI, Assistant: assistant}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// CoachAIConfig describes the optional chat-model backend for coaching
// replies. Without credentials the service runs on canned replies.
type CoachAIConfig struct {
	APIKey         string
	AccessKey      string
	SecretKey      string
	Model          string
	BaseURL        string
	Region         string
	Temperature    *float64
	MaxTokens      *int
	StreamResponse bool
}

// Enabled reports whether the required credentials are present.
func (c CoachAIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds a chat-model instance from the configuration.
func (c CoachAIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("coach model credentials missing: set ARK_API_KEY (or AK/SK pair) and COACH_MODEL")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadCoachAIConfig() (CoachAIConfig, error) {
	temperature, err := parseOptionalFloatEnv("COACH_TEMPERATURE")
	if err != nil {
		return CoachAIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("COACH_MAX_TOKENS")
	if err != nil {
		return CoachAIConfig{}, err
	}

	stream, err := parseBoolEnv("COACH_STREAM", true)
	if err != nil {
		return CoachAIConfig{}, err
	}

	return CoachAIConfig{
		APIKey:         strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:      strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:      strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:          strings.TrimSpace(os.Getenv("COACH_MODEL")),
		BaseURL:        getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:         getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		StreamResponse: stream,
	}, nil
}

// AssistantConfig bounds the session store and locates the settings
// database.
type AssistantConfig struct {
	MaxSessions   int
	SessionTTL    time.Duration
	SweepInterval time.Duration
	DBPath        string
}

func loadAssistantConfig() (AssistantConfig, error) {
	maxSessions := 256
	if override, err := parseOptionalIntEnv("ASSISTANT_MAX_SESSIONS"); err != nil {
		return AssistantConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return AssistantConfig{}, fmt.Errorf("ASSISTANT_MAX_SESSIONS must be positive, got %d", *override)
		}
		maxSessions = *override
	}

	ttlMinutes := 30
	if override, err := parseOptionalIntEnv("ASSISTANT_SESSION_TTL_MINUTES"); err != nil {
		return AssistantConfig{}, err
	} else if override != nil {
		ttlMinutes = *override
	}

	sweepSeconds := 60
	if override, err := parseOptionalIntEnv("ASSISTANT_SWEEP_SECONDS"); err != nil {
		return AssistantConfig{}, err
	} else if override != nil {
		sweepSeconds = *override
	}

	return AssistantConfig{
		MaxSessions:   maxSessions,
		SessionTTL:    time.Duration(ttlMinutes) * time.Minute,
		SweepInterval: time.Duration(sweepSeconds) * time.Second,
		DBPath:        getEnvOrDefault("ASSISTANT_DB_PATH", "data/assistant.db"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
