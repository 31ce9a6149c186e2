package console

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/chat"
)

type recordingBackend struct {
	mu    sync.Mutex
	texts []string
	reply func(text string) chat.Result
}

func (b *recordingBackend) Send(ctx context.Context, req chat.Request) chat.Result {
	b.mu.Lock()
	b.texts = append(b.texts, req.Text)
	b.mu.Unlock()
	if b.reply != nil {
		return b.reply(req.Text)
	}
	return chat.Success("reply to " + req.Text)
}

func (b *recordingBackend) Texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.texts...)
}

var fixedClock = chat.WithClock(func() time.Time {
	return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
})

func runConsole(t *testing.T, backend chat.Backend, input string, suggestions ...string) (*Console, string) {
	t.Helper()
	var out bytes.Buffer
	c := New(backend, strings.NewReader(input), &out,
		WithSuggestions(suggestions),
		WithControllerOptions(fixedClock),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Run(ctx))
	require.NoError(t, ctx.Err(), "console did not finish")
	return c, out.String()
}

func TestConsoleSendsAndWaitsForReply(t *testing.T) {
	backend := &recordingBackend{}
	c, out := runConsole(t, backend, "  What is flu?  \n\n")

	assert.Equal(t, []string{"What is flu?"}, backend.Texts())
	assert.Contains(t, out, "[09:30 AM] You: What is flu?")
	assert.Contains(t, out, "Bot is typing...")
	assert.Contains(t, out, "[09:30 AM] Bot: reply to What is flu?")

	state := c.Controller().State()
	assert.Equal(t, 2, state.MessageCount)
	assert.False(t, state.TypingIndicatorVisible)
	assert.False(t, state.WelcomeVisible)
	assert.False(t, c.view.TypingVisible())
	assert.False(t, c.view.WelcomeVisible())
}

func TestConsoleFailures(t *testing.T) {
	backend := &recordingBackend{reply: func(text string) chat.Result {
		if text == "app" {
			return chat.ApplicationFailure(errors.New("blocked"))
		}
		return chat.TransportFailure(errors.New("connection refused"))
	}}
	_, out := runConsole(t, backend, "app\nnet\n")

	assert.Contains(t, out, "Bot: "+chat.ApplicationFailureText)
	assert.Contains(t, out, "Bot: "+chat.TransportFailureText)
}

func TestConsoleSuggestion(t *testing.T) {
	backend := &recordingBackend{}
	_, out := runConsole(t, backend, "/2\n/1\n", "What is asthma?", "Symptoms of flu?")

	assert.Equal(t, []string{"Symptoms of flu?"}, backend.Texts())
	assert.Contains(t, out, "/1 What is asthma?")
	assert.Contains(t, out, "Suggestions are only available before the first message.")
}

func TestConsoleOutOfRangeSuggestionIsSentAsText(t *testing.T) {
	backend := &recordingBackend{}
	runConsole(t, backend, "/9\n", "What is asthma?")

	assert.Equal(t, []string{"/9"}, backend.Texts())
}

func TestConsoleClearConfirmed(t *testing.T) {
	c, out := runConsole(t, &recordingBackend{}, "/clear\nmaybe\ny\n")

	assert.Contains(t, out, chat.ClearPrompt)
	assert.Contains(t, out, "Bot: "+chat.ClearedText)
	assert.Equal(t, 1, c.Controller().State().MessageCount)
}

func TestConsoleClearDeclined(t *testing.T) {
	c, out := runConsole(t, &recordingBackend{}, "hello\n/clear\nn\n")

	assert.NotContains(t, out, chat.ClearedText)
	assert.Equal(t, 2, c.Controller().State().MessageCount)
}

func TestConsoleQuit(t *testing.T) {
	backend := &recordingBackend{}
	c, out := runConsole(t, backend, "/quit\nhello\n")

	assert.Empty(t, backend.Texts())
	assert.Contains(t, out, "Bye!")
	assert.True(t, c.view.WelcomeVisible())
	assert.False(t, c.view.TypingVisible())
}

func TestViewTracksIndicators(t *testing.T) {
	var out bytes.Buffer
	v := NewView(&out, []string{"What is asthma?"})
	assert.True(t, v.WelcomeVisible())
	assert.False(t, v.TypingVisible())

	v.SetTypingIndicator(true)
	assert.True(t, v.TypingVisible())
	assert.Contains(t, out.String(), "Bot is typing...")

	v.SetWelcomeVisible(false)
	assert.False(t, v.WelcomeVisible())

	out.Reset()
	v.SetWelcomeVisible(true)
	assert.True(t, v.WelcomeVisible())
	assert.Contains(t, out.String(), "/1 What is asthma?")

	v.ResetLog()
	assert.False(t, v.TypingVisible())
}

func TestLineReaderSplitsLongLines(t *testing.T) {
	lines := make(chan string, 1)
	lines <- "yes"
	close(lines)
	r := &lineReader{ctx: context.Background(), lines: lines}

	buf := make([]byte, 2)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ye", string(buf[:n]))

	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "s\n", string(buf[:n]))

	_, err = r.Read(buf)
	assert.Error(t, err)
}
