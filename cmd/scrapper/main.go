package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/asisr38/scrapper/internal/agent"
	"github.com/asisr38/scrapper/internal/config"
	"github.com/asisr38/scrapper/internal/gemini"
	"github.com/asisr38/scrapper/internal/logger"
	"github.com/asisr38/scrapper/internal/metrics"
	"github.com/asisr38/scrapper/internal/openai"
	"github.com/asisr38/scrapper/internal/ratelimit"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "scrapper",
	Short:         "FAO gender content scraper, classifier and statistics service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()
		metrics.Register()

		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// remote builds the remote classifier adapter for the configured provider.
// With no provider the adapter is disabled and always reports unavailable.
// The returned close func releases the provider client.
func remote(ctx context.Context) (*agent.Adapter, *ratelimit.Budget, func(), error) {
	budget := ratelimit.NewBudget(map[string]int{
		config.ProviderGemini: cfg.MaxRemoteRequests,
		config.ProviderOpenAI: cfg.MaxRemoteRequests,
	}, cfg.MaxRemoteRequests)
	opts := agent.Options{Timeout: cfg.RemoteTimeout, MaxChars: cfg.RemoteMaxChars, Budget: budget}

	switch cfg.RemoteProvider {
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("gemini client: %w", err)
		}
		return agent.New(client, opts), budget, client.Close, nil
	case config.ProviderOpenAI:
		client := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, &http.Client{Timeout: cfg.RemoteTimeout})
		return agent.New(client, opts), budget, func() {}, nil
	default:
		return agent.New(nil, opts), budget, func() {}, nil
	}
}
