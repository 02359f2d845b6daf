package session

import "time"

// Kind distinguishes the two interaction types the assistant tracks.
type Kind string

const (
	KindVoice    Kind = "voice"
	KindCoaching Kind = "coaching"
)

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Entry is one transcript turn. Entries are appended in call order and
// never mutated afterwards.
type Entry struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session captures one transient voice or coaching interaction. A session
// present in the store is always active; ending it removes the record.
type Session struct {
	ID         string            `json:"id"`
	Kind       Kind              `json:"kind"`
	StartTime  time.Time         `json:"startTime"`
	Active     bool              `json:"active"`
	Transcript []Entry           `json:"transcript"`
	Context    map[string]string `json:"context,omitempty"`
}
