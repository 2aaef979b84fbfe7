package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	GitHubAPIURL string
	GitHubToken  string

	Provider       string
	GeminiAPIKey   string
	GeminiEndpoint string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	LogLevel string
}

// APIKey returns the credential for the selected provider. The openai
// provider falls back to the Gemini key, which is what --api-key sets.
func (c *Config) APIKey() string {
	if c.Provider == ProviderOpenAI && c.LLMAPIKey != "" {
		return c.LLMAPIKey
	}
	return c.GeminiAPIKey
}

// keys maps viper keys to environment variables. Flags with the same name as
// the key take precedence over the environment.
var keys = map[string]string{
	"github-api-url":  "GITHUB_API_URL",
	"github-token":    "GITHUB_TOKEN",
	"provider":        "LLM_PROVIDER",
	"api-key":         "GEMINI_API_KEY",
	"gemini-endpoint": "GEMINI_ENDPOINT",
	"llm-base-url":    "LLM_BASE_URL",
	"llm-api-key":     "LLM_API_KEY",
	"model":           "LLM_MODEL",
	"log-level":       "LOG_LEVEL",
}

// Load reads .env (if present), the environment, and any of flags that were
// registered under a known key.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, env := range keys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
		if flags == nil {
			continue
		}
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding --%s: %w", key, err)
			}
		}
	}

	v.SetDefault("github-api-url", "https://api.github.com")
	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("llm-base-url", "https://api.openai.com/v1")
	v.SetDefault("model", "gpt-4o-mini")
	v.SetDefault("log-level", "warn")

	cfg := &Config{
		GitHubAPIURL:   strings.TrimSuffix(v.GetString("github-api-url"), "/"),
		GitHubToken:    v.GetString("github-token"),
		Provider:       strings.ToLower(v.GetString("provider")),
		GeminiAPIKey:   v.GetString("api-key"),
		GeminiEndpoint: v.GetString("gemini-endpoint"),
		LLMBaseURL:     v.GetString("llm-base-url"),
		LLMAPIKey:      v.GetString("llm-api-key"),
		LLMModel:       v.GetString("model"),
		LogLevel:       v.GetString("log-level"),
	}

	switch cfg.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("unknown provider %q (want %s or %s)", cfg.Provider, ProviderGemini, ProviderOpenAI)
	}

	return cfg, nil
}
