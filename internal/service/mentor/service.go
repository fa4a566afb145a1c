package mentor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/coordinator-insight/backend/internal/model/chat"
	"github.com/coordinator-insight/backend/internal/model/persona"
)

// DefaultTemperature matches the sampling temperature the mentor was tuned with.
const DefaultTemperature float32 = 0.7

// Request is one completion call.
type Request struct {
	Model             string
	SystemInstruction string
	Temperature       float32
	History           []chat.Turn
	Message           string
}

// Backend performs a single completion call against a provider.
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, req Request) (string, error)

func (f BackendFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Options tune the completion payload.
type Options struct {
	Model string
	// Temperature is sent as is when set, including 0. Nil means DefaultTemperature.
	Temperature *float32
}

// Service turns a transcript plus a new user message into a mentor reply.
type Service struct {
	backend     Backend
	persona     persona.Persona
	system      string
	model       string
	temperature float32
	logger      *zap.Logger
}

// NewService creates a mentor service speaking as p through backend.
func NewService(backend Backend, p persona.Persona, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	temperature := DefaultTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	return &Service{
		backend:     backend,
		persona:     p,
		system:      BuildSystemPrompt(p),
		model:       opts.Model,
		temperature: temperature,
		logger:      logger.Named("mentor"),
	}
}

// Persona returns the persona the service speaks as.
func (s *Service) Persona() persona.Persona {
	return s.persona
}

// SystemInstruction returns the rendered persona prompt.
func (s *Service) SystemInstruction() string {
	return s.system
}

// Complete issues exactly one completion call. Failures are returned as *Error.
func (s *Service) Complete(ctx context.Context, history []chat.Turn, message string) (string, error) {
	req := Request{
		Model:             s.model,
		SystemInstruction: s.system,
		Temperature:       s.temperature,
		History:           history,
		Message:           message,
	}

	started := time.Now()
	reply, err := s.backend.Generate(ctx, req)
	if err != nil {
		mErr := classify(err)
		s.logger.Warn("completion failed",
			zap.String("kind", string(mErr.Kind)),
			zap.Int("history", len(history)),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return "", mErr
	}

	s.logger.Debug("completion succeeded",
		zap.Int("history", len(history)),
		zap.Int("length", len(reply)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return reply, nil
}
