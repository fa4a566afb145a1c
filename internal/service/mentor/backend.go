package mentor

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"

	"github.com/coordinator-insight/backend/internal/config"
)

// NewBackend selects the completion backend for the configured provider.
// Credentials are not validated here; a missing key fails the first call.
func NewBackend(cfg config.MentorConfig) (Backend, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		return NewGeminiBackend(cfg.APIKey, cfg.BaseURL), nil
	case config.ProviderArk:
		return NewArkBackend(func(ctx context.Context) (model.ChatModel, error) {
			chatModel, err := cfg.Ark.NewChatModel(ctx)
			if errors.Is(err, config.ErrArkNotConfigured) {
				return nil, fmt.Errorf("%w: %v", ErrMissingCredential, err)
			}
			return chatModel, err
		}), nil
	default:
		return nil, fmt.Errorf("unsupported mentor provider %q", cfg.Provider)
	}
}

// ModelFor returns the model identifier to request from the provider.
func ModelFor(cfg config.MentorConfig) string {
	if cfg.Provider == config.ProviderArk {
		return cfg.Ark.Model
	}
	if cfg.Model == "" {
		return DefaultGeminiModel
	}
	return cfg.Model
}
