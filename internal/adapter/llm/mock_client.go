package llm

import (
	"context"
	"fmt"
	"time"
)

// MockClient is an offline LLMClient. It answers in the sectioned format the
// system prompt asks for so the rest of the pipeline behaves as with a real
// model.
type MockClient struct {
	model string
}

// NewMockClient creates a new mock LLM client.
func NewMockClient(model string) *MockClient {
	return &MockClient{model: model}
}

// Ensure MockClient implements LLMClient interface.
var _ LLMClient = (*MockClient)(nil)

// CreateChatCompletion returns a mock response.
func (m *MockClient) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content := m.generateMockResponse(req)
	model := req.Model
	if model == "" {
		model = m.model
	}

	return &ChatCompletionResponse{
		ID:      fmt.Sprintf("mock-chatcmpl-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []Choice{
			{
				Index: 0,
				Message: &ChatMessage{
					Role:    RoleAssistant,
					Content: content,
				},
				FinishReason: "stop",
			},
		},
		Usage: &Usage{
			PromptTokens:     m.estimateTokens(req),
			CompletionTokens: len(content) / 4,
			TotalTokens:      m.estimateTokens(req) + len(content)/4,
		},
		SystemFingerprint: "mock-fp",
	}, nil
}

// ListModels returns the configured model.
func (m *MockClient) ListModels(ctx context.Context) ([]Model, error) {
	return []Model{
		{
			ID:      m.model,
			Object:  "model",
			Created: time.Now().Unix(),
			OwnedBy: "mock",
		},
	}, nil
}

func (m *MockClient) generateMockResponse(req *ChatCompletionRequest) string {
	var lastUserMessage string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == RoleUser {
			lastUserMessage = req.Messages[i].Content
			break
		}
	}

	if lastUserMessage == "" {
		return "[MOCK] This is a mock response from the LLM client."
	}

	topic := truncate(lastUserMessage, 100)
	return fmt.Sprintf("**Definition**\n[MOCK] An overview of %q.\n"+
		"**Symptoms**\n[MOCK] Common signs related to %q.\n"+
		"**Prevention**\n[MOCK] General prevention advice.\n"+
		"**Medical Suggestions**\n[MOCK] Consult a healthcare professional.", topic, topic)
}

// estimateTokens provides a rough token count estimate.
func (m *MockClient) estimateTokens(req *ChatCompletionRequest) int {
	total := 0
	for _, msg := range req.Messages {
		total += len(msg.Content) / 4
	}
	return total
}

// truncate keeps the first maxLen runes of s.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
