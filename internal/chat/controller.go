package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// KeyEnter is the key that submits the input.
const KeyEnter = "enter"

// Controller owns a chat session. All methods except Exchange must be called
// from the host's event loop.
//
// A send happens in three steps: SendMessage runs the synchronous part and
// returns the outstanding Request, the host runs Exchange off the loop, and
// the result is handed back to the loop through Settle.
type Controller struct {
	view    View
	backend Backend
	confirm Confirmer
	now     func() time.Time
	newID   func() string
	logger  zerolog.Logger

	state      SessionState
	pending    map[string]Request
	lastID     int
	emphasized bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfirmer sets the confirmer used by Clear.
func WithConfirmer(confirm Confirmer) Option {
	return func(c *Controller) {
		c.confirm = confirm
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithRequestIDs overrides the request id generator.
func WithRequestIDs(newID func() string) Option {
	return func(c *Controller) {
		c.newID = newID
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger.With().Str("component", "chat").Logger()
	}
}

// NewController creates a controller for a fresh session. The welcome panel
// starts visible.
func NewController(view View, backend Backend, opts ...Option) *Controller {
	c := &Controller{
		view:    view,
		backend: backend,
		now:     time.Now,
		newID:   uuid.NewString,
		logger:  log.With().Str("component", "chat").Logger(),
		state:   SessionState{WelcomeVisible: true},
		pending: map[string]Request{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the session UI state.
func (c *Controller) State() SessionState {
	return c.state
}

// Pending returns the number of outstanding requests.
func (c *Controller) Pending() int {
	return len(c.pending)
}

// SendMessage sends the current input. It returns false when the trimmed
// input is empty, in which case nothing changes and no request is issued.
func (c *Controller) SendMessage() (Request, bool) {
	text := strings.TrimSpace(c.view.InputValue())
	if text == "" {
		return Request{}, false
	}

	c.hideWelcome()
	c.appendMessage(text, AuthorUser)
	c.view.SetInputValue("")
	c.OnInputChanged(0)
	c.setTyping(true)

	req := Request{
		ID:       c.newID(),
		Text:     text,
		IssuedAt: c.now(),
	}
	c.pending[req.ID] = req

	c.logger.Debug().
		Str("request_id", req.ID).
		Int("length", len(text)).
		Int("pending", len(c.pending)).
		Msg("chat request issued")

	return req, true
}

// SendSuggestion puts text in the input and sends it.
func (c *Controller) SendSuggestion(text string) (Request, bool) {
	c.hideWelcome()
	c.view.SetInputValue(text)
	return c.SendMessage()
}

// OnKeyPress handles a key press in the input field. Only KeyEnter does
// anything.
func (c *Controller) OnKeyPress(key string) (Request, bool) {
	if key != KeyEnter {
		return Request{}, false
	}
	return c.SendMessage()
}

// OnInputChanged toggles the send control emphasis when the input length
// crosses zero.
func (c *Controller) OnInputChanged(length int) {
	emphasized := length > 0
	if emphasized == c.emphasized {
		return
	}
	c.emphasized = emphasized
	c.view.SetSendEmphasis(emphasized)
}

// Exchange performs the backend round trip for req. It does not touch the
// session and may run on any goroutine.
func (c *Controller) Exchange(ctx context.Context, req Request) Result {
	start := time.Now()
	res := c.backend.Send(ctx, req)
	c.logger.Debug().
		Str("request_id", req.ID).
		Str("outcome", res.Outcome.String()).
		Dur("latency", time.Since(start)).
		Msg("chat request settled")
	return res
}

// Settle applies the result of req to the session. Each request settles at
// most once; unknown or repeated requests are ignored.
func (c *Controller) Settle(req Request, res Result) {
	if _, ok := c.pending[req.ID]; !ok {
		c.logger.Warn().Str("request_id", req.ID).Msg("ignoring settlement for unknown request")
		return
	}
	delete(c.pending, req.ID)
	if len(c.pending) == 0 {
		c.setTyping(false)
	}

	switch res.Outcome {
	case OutcomeSuccess:
		c.appendMessage(res.Reply, AuthorBot)
	case OutcomeApplicationFailure:
		c.logger.Warn().Err(res.Err).Str("request_id", req.ID).Msg("chat backend reported failure")
		c.appendMessage(ApplicationFailureText, AuthorBot)
	default:
		c.logger.Error().Err(res.Err).Str("request_id", req.ID).Msg("could not reach chat backend")
		c.appendMessage(TransportFailureText, AuthorBot)
	}
}

// Clear asks the configured confirmer and, if confirmed, empties the log.
func (c *Controller) Clear(ctx context.Context) (bool, error) {
	return c.ClearWith(ctx, c.confirm)
}

// ClearWith is Clear with an explicit confirmer. A declined confirmation
// leaves the session untouched.
func (c *Controller) ClearWith(ctx context.Context, confirm Confirmer) (bool, error) {
	if confirm == nil {
		return false, errors.New("no confirmer configured")
	}
	ok, err := confirm.Confirm(ctx, ClearPrompt)
	if err != nil {
		return false, errors.Wrap(err, "confirm clear")
	}
	if !ok {
		return false, nil
	}

	c.view.ResetLog()
	c.state.MessageCount = 0
	c.state.TypingIndicatorVisible = false
	// requests issued before the clear still settle into the new log
	if len(c.pending) > 0 {
		c.setTyping(true)
	}
	c.appendMessage(ClearedText, AuthorBot)

	c.logger.Info().Int("pending", len(c.pending)).Msg("chat cleared")
	return true, nil
}

func (c *Controller) appendMessage(text string, author Author) Message {
	now := c.now()
	c.lastID++
	msg := Message{
		ID:        c.lastID,
		Text:      text,
		Author:    author,
		Timestamp: now.Format(TimestampLayout),
		SentAt:    now,
	}
	c.view.AppendMessage(msg)
	c.view.ScrollToEnd()
	c.state.MessageCount++
	return msg
}

func (c *Controller) hideWelcome() {
	if !c.state.WelcomeVisible {
		return
	}
	c.state.WelcomeVisible = false
	c.view.SetWelcomeVisible(false)
}

func (c *Controller) setTyping(visible bool) {
	if c.state.TypingIndicatorVisible == visible {
		return
	}
	c.state.TypingIndicatorVisible = visible
	c.view.SetTypingIndicator(visible)
}
