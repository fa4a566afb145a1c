package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coordinator-insight/backend/internal/model/chat"
	"github.com/coordinator-insight/backend/internal/service/mentor"
)

const (
	// FallbackReply replaces an empty completion.
	FallbackReply = "I apologize, I couldn't generate a response at this moment."
	// ApologyReply is the single user-visible failure message.
	ApologyReply = "My connection to the clinical database is currently unstable. Please try again shortly!"
)

// Completer issues one completion call for a user turn.
type Completer interface {
	Complete(ctx context.Context, history []chat.Turn, message string) (string, error)
}

// CancelPolicy decides what happens to an in-flight call when the chat panel closes.
type CancelPolicy int

const (
	// KeepInFlight lets the call finish and applies its result.
	KeepInFlight CancelPolicy = iota
	// AbandonOnClose cancels the call and discards its result.
	AbandonOnClose
)

type flight struct {
	cancel    context.CancelFunc
	abandoned bool
}

// Session owns one transcript and its request status. At most one completion
// call is outstanding at a time.
type Session struct {
	id        string
	createdAt time.Time
	completer Completer
	policy    CancelPolicy
	logger    *zap.Logger

	mu          sync.Mutex
	messages    []chat.Message
	draft       string
	status      chat.Status
	panelOpen   bool
	lastFailure string
	version     uint64
	inflight    *flight
	closed      bool

	observers    map[int]func(chat.Snapshot)
	nextObserver int
}

func newSession(id, welcome string, completer Completer, policy CancelPolicy, logger *zap.Logger) *Session {
	now := time.Now().UTC()
	s := &Session{
		id:        id,
		createdAt: now,
		completer: completer,
		policy:    policy,
		logger:    logger.With(zap.String("session", id)),
		status:    chat.StatusIdle,
		messages:  make([]chat.Message, 0, 16),
		observers: make(map[int]func(chat.Snapshot)),
	}
	s.messages = append(s.messages, chat.Message{
		ID:        chat.WelcomeID,
		Role:      chat.RoleAssistant,
		Text:      welcome,
		Timestamp: now,
	})
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Snapshot returns a copy of the observable state.
func (s *Session) Snapshot() chat.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetDraft replaces the current draft input.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	if s.draft == text {
		s.mu.Unlock()
		return
	}
	s.draft = text
	s.commitLocked()
}

// Submit appends the trimmed draft as a user message and blocks for the single
// completion call. Empty drafts and submits while pending are rejected with an
// error wrapping ErrValidationRejected and leave the state untouched. A failed
// call is recovered locally: the apology is appended, the status becomes
// errored and Submit returns nil.
func (s *Session) Submit(ctx context.Context, draft string) error {
	text := strings.TrimSpace(draft)

	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrSessionClosed
	case text == "":
		s.mu.Unlock()
		return ErrEmptyDraft
	case s.status == chat.StatusPending:
		s.mu.Unlock()
		return ErrRequestPending
	}

	history := chat.TurnsFrom(s.messages)
	s.messages = append(s.messages, newMessage(chat.RoleUser, text))
	s.draft = ""
	s.status = chat.StatusPending

	callCtx, cancel := context.WithCancel(ctx)
	current := &flight{cancel: cancel}
	s.inflight = current
	s.commitLocked()

	started := time.Now()
	reply, err := s.completer.Complete(callCtx, history, text)
	cancel()

	s.mu.Lock()
	if current.abandoned {
		s.mu.Unlock()
		s.logger.Info("discarded abandoned completion", zap.Duration("elapsed", time.Since(started)))
		return ErrRequestAbandoned
	}
	s.inflight = nil

	if err != nil {
		kind := mentor.KindOf(err)
		s.messages = append(s.messages, newMessage(chat.RoleAssistant, ApologyReply))
		s.status = chat.StatusErrored
		s.lastFailure = string(kind)
		s.logger.Warn("mentor unreachable", zap.String("kind", string(kind)), zap.Error(err))
	} else {
		if strings.TrimSpace(reply) == "" {
			reply = FallbackReply
		}
		s.messages = append(s.messages, newMessage(chat.RoleAssistant, reply))
		s.status = chat.StatusIdle
		s.lastFailure = ""
	}
	s.commitLocked()
	return nil
}

// OpenPanel marks the chat panel visible.
func (s *Session) OpenPanel() {
	s.mu.Lock()
	if s.panelOpen {
		s.mu.Unlock()
		return
	}
	s.panelOpen = true
	s.commitLocked()
}

// ClosePanel hides the chat panel. Under AbandonOnClose an in-flight call is
// cancelled, its result will be discarded and the status returns to idle.
func (s *Session) ClosePanel() {
	s.mu.Lock()
	abandoned := s.policy == AbandonOnClose && s.abandonLocked()
	if !s.panelOpen && !abandoned {
		s.mu.Unlock()
		return
	}
	s.panelOpen = false
	if abandoned {
		s.logger.Info("abandoned in-flight completion on panel close")
	}
	s.commitLocked()
}

// Subscribe registers fn to receive a snapshot after every change. Snapshots
// from concurrent operations may arrive out of order; compare Version.
func (s *Session) Subscribe(fn func(chat.Snapshot)) func() {
	s.mu.Lock()
	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// close abandons any in-flight call and rejects further submits.
func (s *Session) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.panelOpen = false
	s.abandonLocked()
	s.commitLocked()
}

func (s *Session) abandonLocked() bool {
	if s.inflight == nil {
		return false
	}
	s.inflight.abandoned = true
	s.inflight.cancel()
	s.inflight = nil
	s.status = chat.StatusIdle
	return true
}

// commitLocked bumps the version, releases the lock and notifies observers.
func (s *Session) commitLocked() {
	s.version++
	snap := s.snapshotLocked()
	observers := make([]func(chat.Snapshot), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func (s *Session) snapshotLocked() chat.Snapshot {
	messages := make([]chat.Message, len(s.messages))
	copy(messages, s.messages)
	return chat.Snapshot{
		SessionID:   s.id,
		Messages:    messages,
		Draft:       s.draft,
		Status:      s.status,
		PanelOpen:   s.panelOpen,
		Closed:      s.closed,
		LastFailure: s.lastFailure,
		Version:     s.version,
		CreatedAt:   s.createdAt,
	}
}

func newMessage(role chat.Role, text string) chat.Message {
	return chat.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}
