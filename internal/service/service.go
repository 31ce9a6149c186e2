// Package service generates chat replies: it checks the message policy, asks
// the LLM and shapes the answer into the reply sections.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/adapter/llm"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/config"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/policy"
)

var (
	// ErrEmptyMessage is returned for blank messages.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrMessageBlocked is returned when the policy blocks a message.
	ErrMessageBlocked = errors.New("message blocked by policy")
	// ErrEmptyReply is returned when the model answers with no text.
	ErrEmptyReply = errors.New("model returned an empty reply")
	// ErrModelUnavailable is returned by CheckModel when the LLM does not
	// list the configured model.
	ErrModelUnavailable = errors.New("model not available")
)

// DefaultSystemPrompt instructs the model to answer in the reply sections.
const DefaultSystemPrompt = `You are a medical information assistant for question-answering tasks about health.
Answer the user's question concisely and use only the sections that apply, each introduced by its bold title on its own line:
**Definition**
**Symptoms**
**Prevention**
**Medical Suggestions**
If you don't know the answer, say that you don't know. Do not give a diagnosis; recommend consulting a healthcare professional for personal medical advice.`

// Service generates replies to chat messages.
type Service struct {
	llmClient    llm.LLMClient
	policyEngine *policy.Engine
	config       config.ServerConfig
	logger       zerolog.Logger
}

// New creates a reply service.
func New(llmClient llm.LLMClient, policyEngine *policy.Engine, cfg config.ServerConfig, logger zerolog.Logger) *Service {
	return &Service{
		llmClient:    llmClient,
		policyEngine: policyEngine,
		config:       cfg,
		logger:       logger.With().Str("component", "service").Logger(),
	}
}

// Model returns the configured model name.
func (s *Service) Model() string {
	return s.config.Model
}

// Mode returns the configured LLM mode.
func (s *Service) Mode() string {
	return s.config.LLMMode
}

// Reply answers message. requestID is only used for logging; an empty one is
// replaced by a fresh id.
func (s *Service) Reply(ctx context.Context, requestID, message string) (string, error) {
	if requestID == "" {
		requestID = "chat_" + uuid.New().String()[:8]
	}
	logger := s.logger.With().Str("request_id", requestID).Logger()

	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	decision, err := s.policyEngine.Evaluate(ctx, policy.Input{
		Message:   message,
		MaxLength: s.config.MaxMessageLength,
	})
	if err != nil {
		return "", errors.Wrap(err, "evaluate message policy")
	}
	if !decision.Allowed() {
		logger.Info().Strs("reasons", decision.Reasons).Msg("message blocked")
		return "", errors.Wrap(ErrMessageBlocked, strings.Join(decision.Reasons, "; "))
	}

	req := &llm.ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: s.systemPrompt()},
			{Role: llm.RoleUser, Content: message},
		},
		Temperature: &s.config.Temperature,
		MaxTokens:   &s.config.MaxTokens,
	}

	startTime := time.Now()
	resp, err := s.llmClient.CreateChatCompletion(ctx, req)
	latency := time.Since(startTime)
	if err != nil {
		logger.Error().Err(err).Dur("latency", latency).Msg("llm call failed")
		return "", errors.Wrap(err, "generate reply")
	}

	event := logger.Info().Str("model", resp.Model).Dur("latency", latency)
	if resp.Usage != nil {
		event = event.
			Int("prompt_tokens", resp.Usage.PromptTokens).
			Int("completion_tokens", resp.Usage.CompletionTokens).
			Int("total_tokens", resp.Usage.TotalTokens)
	}
	event.Msg("llm call done")

	content, err := resp.Content()
	if err != nil {
		return "", errors.Wrap(err, "generate reply")
	}

	if formatted := FormatSections(content, DetectSections(message)); formatted != "" {
		return formatted, nil
	}
	if content = strings.TrimSpace(content); content == "" {
		return "", ErrEmptyReply
	}
	return content, nil
}

// CheckModel asks the LLM for its models and reports ErrModelUnavailable when
// the configured one is not among them.
func (s *Service) CheckModel(ctx context.Context) error {
	models, err := s.llmClient.ListModels(ctx)
	if err != nil {
		return errors.Wrap(err, "list models")
	}
	ids := make([]string, 0, len(models))
	for _, m := range models {
		if m.ID == s.config.Model {
			s.logger.Debug().Str("model", m.ID).Msg("model available")
			return nil
		}
		ids = append(ids, m.ID)
	}
	return errors.Wrapf(ErrModelUnavailable, "%q not in [%s]", s.config.Model, strings.Join(ids, ", "))
}

func (s *Service) systemPrompt() string {
	if s.config.SystemPrompt != "" {
		return s.config.SystemPrompt
	}
	return DefaultSystemPrompt
}
