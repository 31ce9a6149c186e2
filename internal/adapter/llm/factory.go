package llm

import (
	"github.com/rs/zerolog"

	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/config"
)

// NewLLMClient creates an LLM client for the configured mode: a MockClient in
// mock mode, a real Client otherwise.
func NewLLMClient(cfg config.ServerConfig, logger zerolog.Logger) LLMClient {
	if cfg.LLMMode == config.LLMModeMock {
		logger.Warn().Msg("llm mode is mock, replies are canned")
		return NewMockClient(cfg.Model)
	}

	logger.Info().Str("base_url", cfg.LLMBaseURL).Str("model", cfg.Model).Msg("using live llm")
	return NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)
}
