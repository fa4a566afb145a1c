package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session closed")

	// ErrValidationRejected is wrapped by every silently ignorable submit rejection.
	ErrValidationRejected = errors.New("submission rejected")
	ErrEmptyDraft         = fmt.Errorf("%w: empty draft", ErrValidationRejected)
	ErrRequestPending     = fmt.Errorf("%w: request already pending", ErrValidationRejected)

	ErrRequestAbandoned = errors.New("request abandoned")
)

// Option configures a Service.
type Option func(*Service)

// WithCancelPolicy sets what happens to in-flight calls when a panel closes.
func WithCancelPolicy(policy CancelPolicy) Option {
	return func(s *Service) {
		s.policy = policy
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service keeps the live chat sessions in memory.
type Service struct {
	completer Completer
	welcome   string
	policy    CancelPolicy
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService creates a registry whose sessions open with the welcome message
// and send turns to completer.
func NewService(completer Completer, welcome string, opts ...Option) *Service {
	s := &Service{
		completer: completer,
		welcome:   welcome,
		policy:    KeepInFlight,
		logger:    zap.NewNop(),
		sessions:  make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("chat")
	return s
}

// CreateSession provisions a session seeded with the welcome message.
func (s *Service) CreateSession(_ context.Context) (*Session, error) {
	session := newSession(uuid.NewString(), s.welcome, s.completer, s.policy, s.logger)

	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()

	s.logger.Debug("session created", zap.String("session", session.ID()))
	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// CloseSession removes a session and abandons its in-flight call, if any.
func (s *Service) CloseSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	session.close()
	s.logger.Debug("session closed", zap.String("session", sessionID))
	return nil
}

// Count returns the number of live sessions.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
