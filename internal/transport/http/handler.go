package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/protocol"
)

// Replier produces the reply to a chat message.
type Replier interface {
	Reply(ctx context.Context, requestID, message string) (string, error)
	Model() string
	Mode() string
}

// Handler handles chat HTTP requests.
type Handler struct {
	replier Replier
	logger  zerolog.Logger
}

// NewHandler creates a new handler.
func NewHandler(replier Replier, logger zerolog.Logger) *Handler {
	return &Handler{
		replier: replier,
		logger:  logger,
	}
}

// RegisterRoutes registers the chat routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET(protocol.PathHealth, h.Health)
	e.POST(protocol.PathChat, h.Chat)
	e.POST(protocol.PathGet, h.Get)
}

// Health returns health status.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, protocol.HealthResponse{
		Status: "healthy",
		Model:  h.replier.Model(),
		Mode:   h.replier.Mode(),
	})
}

// Chat answers a JSON chat request. Reply failures are reported in the body
// with status 200.
// POST /chat
func (h *Handler) Chat(c echo.Context) error {
	var req protocol.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, protocol.ChatResponse{
			Success: false,
			Error:   "invalid request body",
		})
	}

	reply, err := h.replier.Reply(c.Request().Context(), requestID(c), req.Message)
	if err != nil {
		h.logger.Warn().Err(err).Str("request_id", requestID(c)).Msg("chat reply failed")
		return c.JSON(http.StatusOK, protocol.ChatResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, protocol.ChatResponse{
		Success:  true,
		Response: reply,
	})
}

// Get answers a form-encoded message with a plain-text reply.
// POST /get
func (h *Handler) Get(c echo.Context) error {
	reply, err := h.replier.Reply(c.Request().Context(), requestID(c), c.FormValue(protocol.FormFieldMessage))
	if err != nil {
		h.logger.Warn().Err(err).Str("request_id", requestID(c)).Msg("get reply failed")
		return c.String(http.StatusInternalServerError, "Error: "+err.Error())
	}
	return c.String(http.StatusOK, reply)
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(protocol.HeaderRequestID)
}
