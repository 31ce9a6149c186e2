package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.Client.BackendURL)
	assert.Equal(t, time.Duration(0), cfg.Client.RequestTimeout)
	assert.Equal(t, ModeAuto, cfg.Client.Mode)
	assert.Equal(t, DefaultSuggestions, cfg.Client.Suggestions)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Server.Model)
	assert.Equal(t, 0.4, cfg.Server.Temperature)
	assert.Equal(t, 500, cfg.Server.MaxTokens)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
client:
  backend_url: http://chat.internal:8080
  request_timeout: 30s
  mode: plain
  suggestions:
    - "What is asthma?"
server:
  port: 6000
  llm_mode: mock
log:
  level: debug
`), 0o600))

	t.Setenv("CHAT_PORT", "7000")
	t.Setenv("CHAT_SUGGESTIONS", "One|Two")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://chat.internal:8080", cfg.Client.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.Client.RequestTimeout)
	assert.Equal(t, ModePlain, cfg.Client.Mode)
	assert.Equal(t, []string{"One", "Two"}, cfg.Client.Suggestions)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, LLMModeMock, cfg.Server.LLMMode)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched keys keep their defaults
	assert.Equal(t, 500, cfg.Server.MaxTokens)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client: [unterminated"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestClientValidate(t *testing.T) {
	valid := Default().Client
	require.NoError(t, valid.Validate())

	badURL := valid
	badURL.BackendURL = "localhost"
	assert.Error(t, badURL.Validate())

	badMode := valid
	badMode.Mode = "gui"
	assert.Error(t, badMode.Validate())

	badTimeout := valid
	badTimeout.RequestTimeout = -time.Second
	assert.Error(t, badTimeout.Validate())
}

func TestServerValidate(t *testing.T) {
	live := Default().Server
	assert.Error(t, live.Validate(), "live mode requires an api key")

	live.LLMAPIKey = "secret"
	assert.NoError(t, live.Validate())

	mock := Default().Server
	mock.LLMMode = LLMModeMock
	assert.NoError(t, mock.Validate())

	badPort := mock
	badPort.Port = 0
	assert.Error(t, badPort.Validate())

	badMode := mock
	badMode.LLMMode = "offline"
	assert.Error(t, badMode.Validate())

	badLength := mock
	badLength.MaxMessageLength = 0
	assert.Error(t, badLength.Validate())
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load("../../configs/config.example.yaml")
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Client, cfg.Client)
	assert.Equal(t, def.Server.Model, cfg.Server.Model)
	assert.Equal(t, def.Server.LLMTimeout, cfg.Server.LLMTimeout)
	require.NoError(t, cfg.Client.Validate())
}
