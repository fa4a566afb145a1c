package chat

import "time"

// Role identifies who authored a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// WelcomeID is the fixed identifier of the seeded welcome message.
const WelcomeID = "welcome"

// Message is one transcript entry. Entries are never mutated once appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Turn is a prior exchange as sent to the completion service.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NormalizeRole collapses any role to one of the two canonical labels.
func NormalizeRole(role Role) Role {
	if role == RoleAssistant {
		return RoleAssistant
	}
	return RoleUser
}

// TurnsFrom maps a transcript to the ordered role/content pairs sent as context.
func TurnsFrom(messages []Message) []Turn {
	if len(messages) == 0 {
		return nil
	}
	turns := make([]Turn, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, Turn{Role: NormalizeRole(msg.Role), Content: msg.Text})
	}
	return turns
}
