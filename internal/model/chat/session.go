package chat

import "time"

// Status drives input affordances of a chat session.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusErrored Status = "errored"
)

// Snapshot is an immutable copy of a session's observable state. Closed is set
// only on the final snapshot of a deleted session.
type Snapshot struct {
	SessionID   string    `json:"sessionId"`
	Messages    []Message `json:"messages"`
	Draft       string    `json:"draft"`
	Status      Status    `json:"status"`
	PanelOpen   bool      `json:"panelOpen"`
	Closed      bool      `json:"closed,omitempty"`
	LastFailure string    `json:"lastFailure,omitempty"`
	Version     uint64    `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Last returns the newest transcript entry, if any.
func (s Snapshot) Last() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// CanSubmit reports whether the submit affordance should be enabled.
func (s Snapshot) CanSubmit() bool {
	return s.Status != StatusPending
}
