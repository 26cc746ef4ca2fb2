package chat

import "github.com/google/uuid"

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversational turn. The text is mutable only through
// Session.ReplaceText (user edits, typing-effect reveal, regeneration); id and
// role never change.
type Message struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// NewMessage creates a message with a fresh unique id.
func NewMessage(role Role, text string) Message {
	return Message{ID: uuid.NewString(), Role: role, Text: text}
}
