package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/kord-legal/kord/pkg/domain/interfaces"
	"github.com/kord-legal/kord/pkg/service/llm"
)

// LLM holds upstream chat-completion API configuration. The API key may be
// absent; the relay routes then answer 401.
type LLM struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Flags returns CLI flags for LLM configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-api-key",
			Usage:       "API key for the upstream chat-completion API",
			Category:    "LLM",
			Sources:     cli.EnvVars("KORD_LLM_API_KEY"),
			Destination: &l.APIKey,
		},
		&cli.StringFlag{
			Name:        "llm-base-url",
			Usage:       "Base URL of the upstream chat-completion API",
			Category:    "LLM",
			Value:       llm.DefaultBaseURL,
			Sources:     cli.EnvVars("KORD_LLM_BASE_URL"),
			Destination: &l.BaseURL,
		},
		&cli.StringFlag{
			Name:        "llm-model",
			Usage:       "Model name requested from the upstream API",
			Category:    "LLM",
			Value:       llm.DefaultModel,
			Sources:     cli.EnvVars("KORD_LLM_MODEL"),
			Destination: &l.Model,
		},
	}
}

// Configure creates the relay client
func (l *LLM) Configure() interfaces.LLMRelay {
	return llm.New(l.APIKey, l.BaseURL, l.Model)
}

// LogValue returns structured log value. The API key is not logged.
func (l LLM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("hasAPIKey", l.APIKey != ""),
		slog.String("baseURL", l.BaseURL),
		slog.String("model", l.Model),
	)
}
