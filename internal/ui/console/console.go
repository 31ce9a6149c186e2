package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/chat"
)

// Console commands.
const (
	CommandQuit  = "/quit"
	CommandClear = "/clear"
)

type settlement struct {
	req chat.Request
	res chat.Result
}

// Console runs a chat session over a line reader and writer.
type Console struct {
	in          io.Reader
	out         io.Writer
	view        *View
	controller  *chat.Controller
	suggestions []string
	logger      zerolog.Logger

	lines   chan string
	settled chan settlement
}

// Option configures a Console.
type Option func(*consoleOptions)

type consoleOptions struct {
	suggestions []string
	logger      zerolog.Logger
	chatOpts    []chat.Option
}

// WithSuggestions sets the suggestions offered in the welcome panel.
func WithSuggestions(suggestions []string) Option {
	return func(o *consoleOptions) {
		o.suggestions = suggestions
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *consoleOptions) {
		o.logger = logger
	}
}

// WithControllerOptions passes options through to the chat controller.
func WithControllerOptions(opts ...chat.Option) Option {
	return func(o *consoleOptions) {
		o.chatOpts = append(o.chatOpts, opts...)
	}
}

// New creates a console session reading from in and writing to out.
func New(backend chat.Backend, in io.Reader, out io.Writer, opts ...Option) *Console {
	o := consoleOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Console{
		in:          in,
		out:         out,
		view:        NewView(out, o.suggestions),
		suggestions: o.suggestions,
		logger:      o.logger.With().Str("component", "console").Logger(),
		lines:       make(chan string),
		settled:     make(chan settlement),
	}

	chatOpts := []chat.Option{
		chat.WithLogger(o.logger),
		chat.WithConfirmer(&lineConfirmer{out: out, lines: c.lines}),
	}
	c.controller = chat.NewController(c.view, backend, append(chatOpts, o.chatOpts...)...)
	return c
}

// Controller returns the session controller.
func (c *Console) Controller() *chat.Controller {
	return c.controller
}

// Run drives the session until /quit, end of input or ctx is done. At end of
// input it waits for outstanding replies before returning.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.readLines(ctx)

	c.view.PrintWelcome()
	c.prompt()

	lines := c.lines
	for {
		if lines == nil && c.controller.Pending() == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			if quit := c.handleLine(ctx, line); quit {
				fmt.Fprintln(c.out, "Bye!")
				return nil
			}
			c.prompt()
		case s := <-c.settled:
			c.controller.Settle(s.req, s.res)
			c.prompt()
		}
	}
}

func (c *Console) readLines(ctx context.Context) {
	defer close(c.lines)
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case c.lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		c.logger.Error().Err(err).Msg("read input")
	}
}

func (c *Console) handleLine(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	switch {
	case input == CommandQuit:
		return true
	case input == CommandClear:
		if _, err := c.controller.Clear(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("clear failed")
		}
		return false
	}

	if n, ok := c.suggestionIndex(input); ok {
		if !c.controller.State().WelcomeVisible {
			fmt.Fprintln(c.out, "Suggestions are only available before the first message.")
			return false
		}
		if req, sent := c.controller.SendSuggestion(c.suggestions[n]); sent {
			c.exchange(ctx, req)
		}
		return false
	}

	c.view.SetInputValue(line)
	c.controller.OnInputChanged(len(line))
	if req, sent := c.controller.OnKeyPress(chat.KeyEnter); sent {
		c.exchange(ctx, req)
	}
	return false
}

// suggestionIndex parses "/<n>" into a zero-based suggestion index.
func (c *Console) suggestionIndex(input string) (int, bool) {
	if !strings.HasPrefix(input, "/") {
		return 0, false
	}
	n, err := strconv.Atoi(input[1:])
	if err != nil || n < 1 || n > len(c.suggestions) {
		return 0, false
	}
	return n - 1, true
}

func (c *Console) exchange(ctx context.Context, req chat.Request) {
	go func() {
		res := c.controller.Exchange(ctx, req)
		select {
		case c.settled <- settlement{req: req, res: res}:
		case <-ctx.Done():
		}
	}()
}

func (c *Console) prompt() {
	fmt.Fprint(c.out, "> ")
}
