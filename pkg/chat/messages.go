package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is one entry in the conversation. Insertion order is display order.
type Message struct {
	ID         string      `json:"id"`
	Role       string      `json:"role"`
	Content    string      `json:"content"`
	Images     []string    `json:"images,omitempty"`
	MapPayload string      `json:"map_payload,omitempty"`
	Restaurant *Restaurant `json:"restaurant,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Restaurant is a structured summary attached to an assistant message and
// rendered as a card.
type Restaurant struct {
	Name        string  `json:"name"`
	Cuisine     string  `json:"cuisine"`
	Rating      float64 `json:"rating,omitempty"`
	Address     string  `json:"address,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// StreamingMessageID is the reserved id of the in-progress assistant message.
// At most one message carries it at any time; it is replaced in place while a
// turn streams and removed when the turn finalizes.
const StreamingMessageID = "assistant-streaming"

const (
	welcomeText = "Hi! I'm your Korean food assistant.\n\nUpload a food photo or ask a question and I'll find dishes and good restaurants for you."
	restartText = "New conversation started.\n\nWhat can I help you with?"
	apologyText = "Sorry, something went wrong while handling your message. Please try again in a moment."
)

func NewUserMessage(content string, images []string) Message {
	return Message{
		ID:        "user-" + uuid.NewString(),
		Role:      RoleUser,
		Content:   strings.TrimSpace(content),
		Images:    images,
		Timestamp: time.Now(),
	}
}

func NewAssistantMessage(content string) Message {
	return Message{
		ID:        "assistant-" + uuid.NewString(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewWelcomeMessage greets a fresh session.
func NewWelcomeMessage() Message {
	return NewAssistantMessage(welcomeText)
}

// NewRestartMessage greets a conversation after a clear action.
func NewRestartMessage() Message {
	return NewAssistantMessage(restartText)
}

func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

// IsStreaming reports whether this is the in-progress placeholder message.
func (m Message) IsStreaming() bool {
	return m.ID == StreamingMessageID
}

func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == ""
}
