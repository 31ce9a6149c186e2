// Package protocol defines the HTTP message protocol between chat clients and
// the chat backend.
package protocol

// Routes served by the chat backend.
const (
	PathChat   = "/chat"
	PathGet    = "/get"
	PathHealth = "/health"
)

// HeaderRequestID carries the client-generated request id.
const HeaderRequestID = "X-Request-ID"

// FormFieldMessage is the form field read by the plain-text route.
const FormFieldMessage = "msg"

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message" form:"message"`
}

// ChatResponse is the body returned by POST /chat. Response is only set when
// Success is true.
type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model,omitempty"`
	Mode   string `json:"mode,omitempty"`
}
