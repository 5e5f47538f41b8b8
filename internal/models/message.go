package models

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single chat turn
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// UserMessage is a convenience constructor for a user turn
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage is a convenience constructor for an assistant turn
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
