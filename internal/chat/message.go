// Package chat implements the chat session controller: the message log, the
// pending-request UI state and the send/settle flow against a backend.
package chat

import (
	"time"
)

// Author identifies who wrote a message.
type Author string

const (
	AuthorUser Author = "user"
	AuthorBot  Author = "bot"
)

// TimestampLayout renders times as "03:04 PM".
const TimestampLayout = "03:04 PM"

// Fixed bot texts.
const (
	ApplicationFailureText = "Sorry, I encountered an error. Please try again."
	TransportFailureText   = "Sorry, I could not connect to the server. Please make sure the backend is running."
	ClearedText            = "Chat cleared! How can I help you today?"
	ClearPrompt            = "Are you sure you want to clear the chat history?"
)

// Message is a rendered entry of the chat log. It is never modified after
// creation.
type Message struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	Timestamp string    `json:"timestamp"`
	SentAt    time.Time `json:"sent_at"`
}

// IsUser reports whether the message was written by the user.
func (m Message) IsUser() bool {
	return m.Author == AuthorUser
}

// SessionState is the UI state owned by the controller.
type SessionState struct {
	WelcomeVisible         bool `json:"welcome_visible"`
	TypingIndicatorVisible bool `json:"typing_indicator_visible"`
	MessageCount           int  `json:"message_count"`
}
