// Package console hosts a chat session on a line-oriented terminal: one line
// of input per message, replies printed as they settle.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/chat"
)

type styles struct {
	user       lipgloss.Style
	bot        lipgloss.Style
	timestamp  lipgloss.Style
	typing     lipgloss.Style
	title      lipgloss.Style
	suggestion lipgloss.Style
	divider    lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		user:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		bot:        r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		timestamp:  r.NewStyle().Faint(true),
		typing:     r.NewStyle().Italic(true).Faint(true),
		title:      r.NewStyle().Bold(true),
		suggestion: r.NewStyle().Foreground(lipgloss.Color("214")),
		divider:    r.NewStyle().Faint(true),
	}
}

// View renders the session as appended lines. It implements chat.View.
type View struct {
	out         io.Writer
	styles      styles
	suggestions []string

	input          string
	welcomeVisible bool
	typingVisible  bool
	emphasized     bool
}

var _ chat.View = (*View)(nil)

// NewView creates a view writing to out. suggestions are listed in the
// welcome panel.
func NewView(out io.Writer, suggestions []string) *View {
	return &View{
		out:            out,
		styles:         newStyles(out),
		suggestions:    suggestions,
		welcomeVisible: true,
	}
}

// PrintWelcome writes the welcome panel with the numbered suggestions.
func (v *View) PrintWelcome() {
	fmt.Fprintln(v.out, v.styles.title.Render("Welcome to the AI Healthcare Assistant!"))
	fmt.Fprintln(v.out, "Ask a health question, or pick a suggestion:")
	for i, s := range v.suggestions {
		fmt.Fprintf(v.out, "  %s %s\n", v.styles.suggestion.Render(fmt.Sprintf("/%d", i+1)), s)
	}
	fmt.Fprintln(v.out, "Commands: /clear to clear the chat, /quit to exit")
	fmt.Fprintln(v.out)
}

// AppendMessage prints msg as "[time] Author: text".
func (v *View) AppendMessage(msg chat.Message) {
	author := v.styles.bot.Render("Bot")
	if msg.IsUser() {
		author = v.styles.user.Render("You")
	}
	fmt.Fprintf(v.out, "%s %s: %s\n", v.styles.timestamp.Render("["+msg.Timestamp+"]"), author, msg.Text)
}

// ScrollToEnd is a no-op; output is always at its end.
func (v *View) ScrollToEnd() {}

func (v *View) SetTypingIndicator(visible bool) {
	v.typingVisible = visible
	if visible {
		fmt.Fprintln(v.out, v.styles.typing.Render("Bot is typing..."))
	}
}

func (v *View) SetWelcomeVisible(visible bool) {
	if visible && !v.welcomeVisible {
		v.PrintWelcome()
	}
	v.welcomeVisible = visible
}

func (v *View) InputValue() string {
	return v.input
}

func (v *View) SetInputValue(value string) {
	v.input = value
}

// ResetLog prints a divider; earlier lines cannot be taken back.
func (v *View) ResetLog() {
	v.typingVisible = false
	fmt.Fprintln(v.out, v.styles.divider.Render("────────────"))
}

func (v *View) SetSendEmphasis(emphasized bool) {
	v.emphasized = emphasized
}

// WelcomeVisible reports whether the welcome panel is shown.
func (v *View) WelcomeVisible() bool {
	return v.welcomeVisible
}

// TypingVisible reports whether the typing indicator is shown.
func (v *View) TypingVisible() bool {
	return v.typingVisible
}
