package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/protocol"
)

type fakeReplier struct {
	reply      string
	err        error
	messages   []string
	requestIDs []string
}

func (f *fakeReplier) Reply(ctx context.Context, requestID, message string) (string, error) {
	f.messages = append(f.messages, message)
	f.requestIDs = append(f.requestIDs, requestID)
	return f.reply, f.err
}

func (f *fakeReplier) Model() string { return "test-model" }
func (f *fakeReplier) Mode() string  { return "mock" }

func newTestHandler(replier Replier) *Handler {
	return NewHandler(replier, zerolog.Nop())
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h := newTestHandler(&fakeReplier{})

	req := httptest.NewRequest(http.MethodGet, protocol.PathHealth, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Health(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp protocol.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, protocol.HealthResponse{Status: "healthy", Model: "test-model", Mode: "mock"}, resp)
}

func TestChatSuccess(t *testing.T) {
	e := echo.New()
	replier := &fakeReplier{reply: "**Definition**\nA cold.\n"}
	h := newTestHandler(replier)

	req := httptest.NewRequest(http.MethodPost, protocol.PathChat, strings.NewReader(`{"message":"What is a cold?"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(protocol.HeaderRequestID, "req-7")
	rec := httptest.NewRecorder()
	require.NoError(t, h.Chat(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"response":"**Definition**\nA cold.\n"}`, rec.Body.String())
	assert.Equal(t, []string{"What is a cold?"}, replier.messages)
	assert.Equal(t, []string{"req-7"}, replier.requestIDs)
}

func TestChatReplyFailure(t *testing.T) {
	e := echo.New()
	h := newTestHandler(&fakeReplier{err: errors.New("message blocked by policy")})

	req := httptest.NewRequest(http.MethodPost, protocol.PathChat, strings.NewReader(`{"message":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Chat(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"message blocked by policy"}`, rec.Body.String())
}

func TestChatInvalidBody(t *testing.T) {
	e := echo.New()
	replier := &fakeReplier{}
	h := newTestHandler(replier)

	req := httptest.NewRequest(http.MethodPost, protocol.PathChat, strings.NewReader(`{"message":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Chat(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"invalid request body"}`, rec.Body.String())
	assert.Empty(t, replier.messages)
}

func TestGet(t *testing.T) {
	e := echo.New()
	replier := &fakeReplier{reply: "Drink water."}
	h := newTestHandler(replier)

	form := url.Values{protocol.FormFieldMessage: {"flu tips"}}
	req := httptest.NewRequest(http.MethodPost, protocol.PathGet, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Get(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Drink water.", rec.Body.String())
	assert.Equal(t, []string{"flu tips"}, replier.messages)
}

func TestGetFailure(t *testing.T) {
	e := echo.New()
	h := newTestHandler(&fakeReplier{err: errors.New("llm down")})

	form := url.Values{protocol.FormFieldMessage: {"flu tips"}}
	req := httptest.NewRequest(http.MethodPost, protocol.PathGet, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Get(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error: llm down", rec.Body.String())
}
