// Package backend provides the HTTP client the chat controller uses to reach
// the chat backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/chat"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/protocol"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 1 << 20

// Client is the chat backend client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new chat backend client. A zero timeout means requests
// are never cut short by the client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ensure Client implements chat.Backend.
var _ chat.Backend = (*Client)(nil)

// Send posts req to the backend and folds the outcome into a chat.Result.
func (c *Client) Send(ctx context.Context, req chat.Request) chat.Result {
	resp, err := c.PostChat(ctx, req.ID, req.Text)
	if err != nil {
		return chat.TransportFailure(err)
	}
	if !resp.Success {
		reason := resp.Error
		if reason == "" {
			reason = "backend reported failure"
		}
		return chat.ApplicationFailure(errors.New(reason))
	}
	return chat.Success(resp.Response)
}

// PostChat sends POST /chat. Any error returned is a transport-level failure:
// network errors, non-2xx statuses, undecodable bodies and bodies without
// "success", or without "response" when success is true.
func (c *Client) PostChat(ctx context.Context, requestID, message string) (*protocol.ChatResponse, error) {
	reqBody, err := json.Marshal(protocol.ChatRequest{Message: message})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+protocol.PathChat, bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		httpReq.Header.Set(protocol.HeaderRequestID, requestID)
	}

	var body chatResponseBody
	if err := c.do(httpReq, &body); err != nil {
		return nil, err
	}
	if body.Success == nil {
		return nil, errors.New("malformed chat response: missing success")
	}
	if *body.Success && body.Response == nil {
		return nil, errors.New("malformed chat response: missing response")
	}

	result := &protocol.ChatResponse{Success: *body.Success, Error: body.Error}
	if body.Response != nil {
		result.Response = *body.Response
	}
	return result, nil
}

// chatResponseBody is protocol.ChatResponse with required fields as pointers,
// so a JSON null or a missing field can be told apart from a zero value.
type chatResponseBody struct {
	Success  *bool   `json:"success"`
	Response *string `json:"response"`
	Error    string  `json:"error"`
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (*protocol.HealthResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+protocol.PathHealth, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	var result protocol.HealthResponse
	if err := c.do(httpReq, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(httpReq *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("chat backend error [%d]: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrap(err, "failed to unmarshal response")
	}
	return nil
}
