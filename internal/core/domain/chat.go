package domain

import "time"

// Sender identifies the author of a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one entry of the assistant transcript.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatReply is the assistant answer to a single message.
type ChatReply struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}
