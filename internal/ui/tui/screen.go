package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/chat"
)

// screen is the mutable view state the controller drives. It is shared by
// pointer so every copy of Model sees the same session.
type screen struct {
	input          textinput.Model
	messages       []chat.Message
	welcomeVisible bool
	typingVisible  bool
	emphasized     bool

	// set when the log changed and the viewport needs new content
	dirty bool
	// set when the viewport should jump to the bottom on the next refresh
	follow bool
}

var _ chat.View = (*screen)(nil)

func newScreen(input textinput.Model) *screen {
	return &screen{
		input:          input,
		welcomeVisible: true,
	}
}

func (s *screen) AppendMessage(msg chat.Message) {
	s.messages = append(s.messages, msg)
	s.dirty = true
}

func (s *screen) ScrollToEnd() {
	s.follow = true
}

func (s *screen) SetTypingIndicator(visible bool) {
	s.typingVisible = visible
}

func (s *screen) SetWelcomeVisible(visible bool) {
	s.welcomeVisible = visible
	s.dirty = true
}

func (s *screen) InputValue() string {
	return s.input.Value()
}

func (s *screen) SetInputValue(value string) {
	s.input.SetValue(value)
}

func (s *screen) ResetLog() {
	s.messages = nil
	s.typingVisible = false
	s.dirty = true
}

func (s *screen) SetSendEmphasis(emphasized bool) {
	s.emphasized = emphasized
}

// lastBotReply returns the text of the most recent bot message.
func (s *screen) lastBotReply() (string, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if !s.messages[i].IsUser() {
			return s.messages[i].Text, true
		}
	}
	return "", false
}
