package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/adapter/llm"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/config"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/policy"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/service"
)

type stubLLM struct {
	llm.LLMClient
	models []llm.Model
	err    error
}

func (s stubLLM) ListModels(ctx context.Context) ([]llm.Model, error) {
	return s.models, s.err
}

func newService(t *testing.T, client llm.LLMClient) *service.Service {
	t.Helper()
	cfg := config.Default().Server
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)
	return service.New(client, engine, cfg, zerolog.Nop())
}

func TestVerifyModel(t *testing.T) {
	model := config.Default().Server.Model

	tests := []struct {
		name    string
		client  llm.LLMClient
		want    bool
		wantLog string
	}{
		{
			name:    "mock client lists the model",
			client:  llm.NewMockClient(model),
			want:    true,
			wantLog: "model check passed",
		},
		{
			name:    "model missing",
			client:  stubLLM{models: []llm.Model{{ID: "other-model"}}},
			want:    false,
			wantLog: "model not available",
		},
		{
			name:    "list fails",
			client:  stubLLM{err: errors.New("unauthorized")},
			want:    false,
			wantLog: "unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			ok := verifyModel(context.Background(), newService(t, tt.client), time.Second, logger)
			assert.Equal(t, tt.want, ok)
			assert.Contains(t, buf.String(), tt.wantLog)
		})
	}
}
