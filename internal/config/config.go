// Package config provides configuration for the chat client and the chat
// backend.
package config

import (
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// UI modes of the chat client.
const (
	ModeAuto  = "auto"
	ModeTUI   = "tui"
	ModePlain = "plain"
)

// LLM modes of the chat backend.
const (
	LLMModeLive = "live"
	LLMModeMock = "mock"
)

// Config holds the chat configuration.
type Config struct {
	Client ClientConfig `yaml:"client"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// ClientConfig configures the chat client.
type ClientConfig struct {
	// Base URL of the chat backend, without the /chat route
	BackendURL string `yaml:"backend_url" env:"CHAT_BACKEND_URL"`

	// Zero disables the client-side timeout
	RequestTimeout time.Duration `yaml:"request_timeout" env:"CHAT_REQUEST_TIMEOUT"`

	Mode        string   `yaml:"mode" env:"CHAT_UI_MODE"`
	Suggestions []string `yaml:"suggestions" env:"CHAT_SUGGESTIONS" envSeparator:"|"`
}

// ServerConfig configures the chat backend.
type ServerConfig struct {
	Host string `yaml:"host" env:"CHAT_HOST"`
	Port int    `yaml:"port" env:"CHAT_PORT"`

	// LLM settings (OpenAI-compatible endpoint)
	LLMMode     string        `yaml:"llm_mode" env:"CHAT_LLM_MODE"`
	LLMBaseURL  string        `yaml:"llm_base_url" env:"CHAT_LLM_URL"`
	LLMAPIKey   string        `yaml:"llm_api_key" env:"GROQ_API_KEY"`
	Model       string        `yaml:"model" env:"CHAT_LLM_MODEL"`
	Temperature float64       `yaml:"temperature" env:"CHAT_LLM_TEMPERATURE"`
	MaxTokens   int           `yaml:"max_tokens" env:"CHAT_LLM_MAX_TOKENS"`
	LLMTimeout  time.Duration `yaml:"llm_timeout" env:"CHAT_LLM_TIMEOUT"`

	SystemPrompt string `yaml:"system_prompt" env:"CHAT_SYSTEM_PROMPT"`

	// Message policy
	PolicyFile       string `yaml:"policy_file" env:"CHAT_POLICY_FILE"`
	MaxMessageLength int    `yaml:"max_message_length" env:"CHAT_MAX_MESSAGE_LENGTH"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"CHAT_SHUTDOWN_TIMEOUT"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
	// File receives the logs; empty means stderr
	File string `yaml:"file" env:"CHAT_LOG_FILE"`
}

// DefaultSuggestions are the prompt shortcuts shown on the welcome panel.
var DefaultSuggestions = []string{
	"What are the symptoms of diabetes?",
	"How can I prevent heart disease?",
	"What is hypertension?",
	"What can you do?",
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Client: ClientConfig{
			BackendURL:  "http://localhost:5000",
			Mode:        ModeAuto,
			Suggestions: append([]string(nil), DefaultSuggestions...),
		},
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             5000,
			LLMMode:          LLMModeLive,
			LLMBaseURL:       "https://api.groq.com/openai",
			Model:            "llama-3.3-70b-versatile",
			Temperature:      0.4,
			MaxTokens:        500,
			LLMTimeout:       60 * time.Second,
			MaxMessageLength: 2000,
			ShutdownTimeout:  10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path
// and the environment, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config file %s", path)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}

	return cfg, nil
}

// Validate checks the client settings.
func (c ClientConfig) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Errorf("invalid backend url %q", c.BackendURL)
	}
	if c.RequestTimeout < 0 {
		return errors.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	switch c.Mode {
	case ModeAuto, ModeTUI, ModePlain:
	default:
		return errors.Errorf("unknown ui mode %q (want %s, %s or %s)", c.Mode, ModeAuto, ModeTUI, ModePlain)
	}
	return nil
}

// Validate checks the server settings.
func (c ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	switch c.LLMMode {
	case LLMModeMock:
	case LLMModeLive:
		if c.LLMAPIKey == "" {
			return errors.New("GROQ_API_KEY is required in live mode")
		}
		if _, err := url.Parse(c.LLMBaseURL); err != nil || c.LLMBaseURL == "" {
			return errors.Errorf("invalid llm base url %q", c.LLMBaseURL)
		}
	default:
		return errors.Errorf("unknown llm mode %q (want %s or %s)", c.LLMMode, LLMModeLive, LLMModeMock)
	}
	if c.MaxTokens <= 0 {
		return errors.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.MaxMessageLength <= 0 {
		return errors.Errorf("max message length must be positive, got %d", c.MaxMessageLength)
	}
	return nil
}
