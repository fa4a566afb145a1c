package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Provider selects the chat completion backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderArk    Provider = "ark"
)

// ErrArkNotConfigured reports missing Ark credentials or model.
var ErrArkNotConfigured = errors.New("ark credentials or model not configured")

// Config aggregates the service configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Mentor  MentorConfig
	Persona PersonaConfig
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	mentor, err := loadMentorConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		Log:     loadLogConfig(),
		Mentor:  mentor,
		Persona: PersonaConfig{File: strings.TrimSpace(os.Getenv("PERSONA_FILE"))},
	}, nil
}

// ServerConfig describes the HTTP server.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// loadServerConfig parses the listen address and CORS allow list.
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	origins := splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as given.
		return ServerConfig{Addr: port, AllowedOrigins: origins}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigins: origins}, nil
}

// LogConfig holds the log level.
type LogConfig struct {
	Level string
}

func loadLogConfig() LogConfig {
	return LogConfig{Level: strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info"))}
}

// PersonaConfig points at an optional mentor persona YAML file.
type PersonaConfig struct {
	File string
}

// MentorConfig configures chat completion calls.
type MentorConfig struct {
	Provider      Provider
	APIKey        string
	BaseURL       string
	Model         string
	Temperature   float32
	CancelOnClose bool
	Ark           ArkConfig
}

// ArkConfig configures the Ark model.
type ArkConfig struct {
	APIKey    string
	AccessKey string
	SecretKey string
	Model     string
	BaseURL   string
	Region    string
	TopP      *float64
	MaxTokens *int
}

// Enabled reports whether the required keys are present.
func (c ArkConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds a chat model from the config. Temperature is passed per call.
func (c ArkConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("%w: set ARK_API_KEY and ARK_MODEL, or an AK/SK pair", ErrArkNotConfigured)
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:   c.BaseURL,
		Region:    c.Region,
		APIKey:    c.APIKey,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		Model:     c.Model,
		MaxTokens: maxTokens,
		TopP:      topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadMentorConfig() (MentorConfig, error) {
	provider := Provider(strings.ToLower(getEnvOrDefault("MENTOR_PROVIDER", string(ProviderGemini))))
	if provider != ProviderGemini && provider != ProviderArk {
		return MentorConfig{}, fmt.Errorf("invalid MENTOR_PROVIDER value %q", provider)
	}

	temperature := float32(0.7)
	if override, err := parseOptionalFloatEnv("MENTOR_TEMPERATURE"); err != nil {
		return MentorConfig{}, err
	} else if override != nil {
		if *override < 0 || *override > 2 {
			return MentorConfig{}, fmt.Errorf("invalid MENTOR_TEMPERATURE value %v: must be within [0, 2]", *override)
		}
		temperature = float32(*override)
	}

	cancelOnClose, err := parseBoolEnv("MENTOR_CANCEL_ON_CLOSE", false)
	if err != nil {
		return MentorConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return MentorConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return MentorConfig{}, err
	}

	// API_KEY matches the frontend deployment; GEMINI_API_KEY wins.
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("API_KEY"))
	}

	return MentorConfig{
		Provider:      provider,
		APIKey:        apiKey,
		BaseURL:       strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")),
		Model:         strings.TrimSpace(os.Getenv("MENTOR_MODEL")),
		Temperature:   temperature,
		CancelOnClose: cancelOnClose,
		Ark: ArkConfig{
			APIKey:    strings.TrimSpace(os.Getenv("ARK_API_KEY")),
			AccessKey: strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
			Model:     strings.TrimSpace(os.Getenv("ARK_MODEL")),
			BaseURL:   getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
			Region:    getEnvOrDefault("ARK_REGION", "cn-beijing"),
			TopP:      topP,
			MaxTokens: maxTokens,
		},
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
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
