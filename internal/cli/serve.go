package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yildizm/LifeStrat/internal/ai"
	"github.com/yildizm/LifeStrat/internal/ai/providers/gemini"
	"github.com/yildizm/LifeStrat/internal/ai/providers/ollama"
	"github.com/yildizm/LifeStrat/internal/config"
	"github.com/yildizm/LifeStrat/internal/server"
	"github.com/yildizm/LifeStrat/internal/strategist"
)

var (
	serveHost string
	servePort int
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis service",
		Long: `Run the HTTP analysis service used by the wizard.

POST /analyze computes the numerology and nine star ki profiles and asks the
configured language model for the strategy report. GET /health reports
liveness. When the model cannot be reached the service still answers, with
the error in the analysis text.

Examples:
  GEMINI_API_KEY=... lifestrat serve
  lifestrat serve --port 8080
  LIFESTRAT_AI_PROVIDER=ollama lifestrat serve`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveHost, "host", "", "listen host (default: server.host)")
	cmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default: server.port)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	ctx := cmd.Context()

	serverCfg := cfg.Server
	if serveHost != "" {
		serverCfg.Host = serveHost
	}
	if servePort > 0 {
		serverCfg.Port = servePort
	}

	provider := createAIProvider(cfg.AI)
	if provider != nil {
		defer func() { _ = provider.Close() }()
	}

	analyzer := strategist.New(provider,
		strategist.WithLogger(logger),
		strategist.WithLimits(cfg.AI.MaxTokens, cfg.AI.Temperature))

	srv := server.New(serverCfg, analyzer, logger)
	logger.Info("analysis service starting", zap.String("addr", serverCfg.ListenAddr()))
	return srv.Run(ctx)
}

// newRegistry returns a registry with every built-in provider
func newRegistry() (*ai.Registry, error) {
	registry := ai.NewRegistry()
	if err := gemini.Register(registry); err != nil {
		return nil, err
	}
	if err := ollama.Register(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// createAIProvider builds the configured provider. A provider that cannot be
// created is logged and nil is returned; the service then answers with the
// error in the analysis text.
func createAIProvider(aiCfg config.AIConfig) ai.Provider {
	registry, err := newRegistry()
	if err != nil {
		logger.Error("provider registration failed", zap.Error(err))
		return nil
	}

	provider, err := registry.Create(ai.FromConfig(aiCfg))
	if err != nil {
		logger.Warn("AI provider unavailable", zap.String("provider", aiCfg.Provider), zap.Error(err))
		return nil
	}

	logger.Info("AI provider ready", zap.String("provider", provider.Name()))
	return provider
}
