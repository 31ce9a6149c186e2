// Package tui hosts a chat session in a full-screen terminal UI.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/chat"
)

// Key bindings.
const (
	keySend      = "enter"
	keySuggest   = "tab"
	keyUp        = "up"
	keyDown      = "down"
	keyClear     = "ctrl+l"
	keyCopy      = "ctrl+y"
	keyQuit      = "ctrl+c"
	keyQuitAlt   = "esc"
	inputHeight  = 3
	headerHeight = 1
	footerHeight = 2
)

const helpText = "enter send • tab suggestion • ctrl+l clear • ctrl+y copy reply • esc quit"

// settledMsg carries a finished backend exchange back to the update loop.
type settledMsg struct {
	req chat.Request
	res chat.Result
}

// Options configures a Model.
type Options struct {
	Suggestions []string
	// GlamourStyle is the glamour style for bot replies, "dark" by default.
	GlamourStyle string
	Logger       zerolog.Logger
	// Copy writes to the system clipboard; clipboard.WriteAll by default.
	Copy func(string) error
	// ControllerOptions are passed to the chat controller.
	ControllerOptions []chat.Option
}

// Model is the bubbletea model of a chat session.
type Model struct {
	ctx        context.Context
	screen     *screen
	controller *chat.Controller

	spinner  spinner.Model
	viewport viewport.Model
	markdown *glamour.TermRenderer

	suggestions  []string
	selected     int
	glamourStyle string
	copy         func(string) error
	status       string

	confirm   *huh.Form
	confirmed *bool

	width   int
	height  int
	ready   bool
	ticking bool
	logger  zerolog.Logger
}

// New creates the model. ctx bounds the backend exchanges.
func New(ctx context.Context, backend chat.Backend, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your health question..."
	ti.Prompt = "› "
	ti.CharLimit = 2000
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)

	if opts.GlamourStyle == "" {
		opts.GlamourStyle = "dark"
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	s := newScreen(ti)
	chatOpts := append([]chat.Option{chat.WithLogger(opts.Logger)}, opts.ControllerOptions...)

	return Model{
		ctx:          ctx,
		screen:       s,
		controller:   chat.NewController(s, backend, chatOpts...),
		spinner:      sp,
		viewport:     viewport.New(80, 20),
		suggestions:  opts.Suggestions,
		glamourStyle: opts.GlamourStyle,
		copy:         opts.Copy,
		confirmed:    new(bool),
		logger:       opts.Logger.With().Str("component", "tui").Logger(),
	}
}

// Controller returns the session controller.
func (m Model) Controller() *chat.Controller {
	return m.controller
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// replies keep settling while the confirmation overlay is open
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		return m, nil

	case settledMsg:
		m.controller.Settle(msg.req, msg.res)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		// the spinner sleeps while nothing is pending; startExchange wakes it
		if !m.screen.typingVisible {
			m.ticking = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}

	var cmd tea.Cmd
	m.screen.input, cmd = m.screen.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyQuitAlt:
		return m, tea.Quit

	case keySend:
		req, ok := m.controller.OnKeyPress(chat.KeyEnter)
		m.refresh()
		if !ok {
			return m, nil
		}
		m.status = ""
		return m, m.startExchange(req)

	case keySuggest:
		if !m.screen.welcomeVisible || len(m.suggestions) == 0 {
			return m, nil
		}
		req, ok := m.controller.SendSuggestion(m.suggestions[m.selected])
		m.refresh()
		if !ok {
			return m, nil
		}
		return m, m.startExchange(req)

	case keyUp, keyDown:
		if m.screen.welcomeVisible && len(m.suggestions) > 0 {
			if msg.String() == keyUp {
				m.selected = (m.selected + len(m.suggestions) - 1) % len(m.suggestions)
			} else {
				m.selected = (m.selected + 1) % len(m.suggestions)
			}
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case keyClear:
		return m.openConfirm()

	case keyCopy:
		reply, ok := m.screen.lastBotReply()
		if !ok {
			m.status = "Nothing to copy yet."
			return m, nil
		}
		if err := m.copy(reply); err != nil {
			m.logger.Warn().Err(err).Msg("copy to clipboard failed")
			m.status = "Could not copy to clipboard."
			return m, nil
		}
		m.status = "Copied last reply to clipboard."
		return m, nil
	}

	var cmd tea.Cmd
	before := m.screen.input.Value()
	m.screen.input, cmd = m.screen.input.Update(msg)
	if after := m.screen.input.Value(); after != before {
		m.controller.OnInputChanged(len(after))
	}
	return m, cmd
}

// startExchange runs req and restarts the spinner if it is idle.
func (m *Model) startExchange(req chat.Request) tea.Cmd {
	cmd := m.exchange(req)
	if m.ticking {
		return cmd
	}
	m.ticking = true
	return tea.Batch(cmd, m.spinner.Tick)
}

// exchange runs the backend round trip off the update loop.
func (m Model) exchange(req chat.Request) tea.Cmd {
	ctx := m.ctx
	controller := m.controller
	return func() tea.Msg {
		return settledMsg{req: req, res: controller.Exchange(ctx, req)}
	}
}

func (m Model) openConfirm() (tea.Model, tea.Cmd) {
	*m.confirmed = false
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(chat.ClearPrompt).
				Affirmative("Yes").
				Negative("No").
				Value(m.confirmed),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(false)
	m.screen.input.Blur()
	return m, m.confirm.Init()
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case keyQuit:
			return m, tea.Quit
		case keyQuitAlt:
			return m.finishConfirm(false), nil
		}
	}

	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		return m.finishConfirm(*m.confirmed), cmd
	case huh.StateAborted:
		return m.finishConfirm(false), cmd
	}
	return m, cmd
}

// finishConfirm closes the confirmation overlay and applies the answer.
func (m Model) finishConfirm(answer bool) Model {
	m.confirm = nil
	m.screen.input.Focus()
	if _, err := m.controller.ClearWith(m.ctx, chat.Answered(answer)); err != nil {
		m.logger.Warn().Err(err).Msg("clear failed")
	}
	m.refresh()
	return m
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.screen.input.Width = max(width-12, 10)
	m.viewport.Width = width
	m.viewport.Height = max(height-inputHeight-headerHeight-footerHeight-1, 3)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.glamourStyle),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		m.logger.Warn().Err(err).Msg("markdown renderer unavailable")
	}
	m.markdown = renderer
	m.ready = true
	m.screen.dirty = true
	m.screen.follow = true
	m.refresh()
}

// refresh rebuilds the viewport content when the session changed.
func (m *Model) refresh() {
	if !m.screen.dirty && !m.screen.follow {
		return
	}
	m.viewport.SetContent(m.renderLog())
	if m.screen.follow {
		m.viewport.GotoBottom()
	}
	m.screen.dirty = false
	m.screen.follow = false
}

func (m Model) renderLog() string {
	var b strings.Builder
	if m.screen.welcomeVisible {
		b.WriteString(m.renderWelcome())
		b.WriteString("\n")
	}
	for _, msg := range m.screen.messages {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderWelcome() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Welcome to the AI Healthcare Assistant!"))
	b.WriteString("\nAsk me about symptoms, prevention or general health advice.\n")
	if len(m.suggestions) > 0 {
		b.WriteString("\nTry one of these (↑/↓ to select, tab to send):\n")
		for i, s := range m.suggestions {
			style := suggestionStyle
			if i == m.selected {
				style = selectedSuggestionStyle
			}
			b.WriteString(style.Render(s))
			b.WriteString("\n")
		}
	}
	return welcomeStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m Model) renderMessage(msg chat.Message) string {
	label := botLabelStyle.Render("Bot")
	if msg.IsUser() {
		label = userLabelStyle.Render("You")
	}
	header := fmt.Sprintf("%s %s", label, timestampStyle.Render(msg.Timestamp))

	if msg.IsUser() || m.markdown == nil {
		return header + "\n" + userTextStyle.Render(msg.Text) + "\n"
	}
	body, err := m.markdown.Render(msg.Text)
	if err != nil {
		m.logger.Debug().Err(err).Msg("render markdown")
		body = userTextStyle.Render(msg.Text) + "\n"
	}
	return header + "\n" + strings.TrimLeft(body, "\n")
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.confirm != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			modalStyle.Render(m.confirm.View()))
	}

	header := titleStyle.Render("AI Healthcare Assistant")

	typing := ""
	if m.screen.typingVisible {
		typing = m.spinner.View() + typingStyle.Render(" Bot is typing...")
	}

	box := inputStyle
	send := sendStyle
	if m.screen.emphasized {
		box = activeInputStyle
		send = activeSendStyle
	}
	input := lipgloss.JoinHorizontal(lipgloss.Center,
		box.Render(m.screen.input.View()),
		" ",
		send.Render("Send"),
	)

	footer := helpStyle.Render(helpText)
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		typing,
		input,
		footer,
	)
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, backend chat.Backend, opts Options) error {
	p := tea.NewProgram(New(ctx, backend, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
