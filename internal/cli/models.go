package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/LifeStrat/internal/ai"
	"github.com/yildizm/LifeStrat/internal/emoji"
)

var modelsTimeout time.Duration

func newModelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the models available to the configured AI provider",
		Long: `Check that the configured AI provider is reachable and list the models
it offers. The configured model is marked.

Examples:
  GEMINI_API_KEY=... lifestrat models
  LIFESTRAT_AI_PROVIDER=ollama lifestrat models`,
		Args: cobra.NoArgs,
		RunE: runModels,
	}

	cmd.Flags().DurationVar(&modelsTimeout, "timeout", 30*time.Second, "request timeout")

	return cmd
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	out := cmd.OutOrStdout()

	registry, err := newRegistry()
	if err != nil {
		return err
	}
	provider, err := registry.Create(ai.FromConfig(cfg.AI))
	if err != nil {
		if ai.IsConfigurationError(err) && cfg.AI.Provider == "gemini" {
			fmt.Fprintln(out, emoji.Label("info", "Set GEMINI_API_KEY or ai.api_key to use Gemini"))
		}
		return fmt.Errorf("failed to create %s provider: %w", cfg.AI.Provider, err)
	}
	defer func() { _ = provider.Close() }()

	ctx, cancel := withTimeout(cmd.Context(), modelsTimeout)
	defer cancel()

	fmt.Fprintf(out, "%s Checking %s models...\n\n", emoji.GetEmoji("brain"), provider.Name())

	lister, ok := provider.(ai.ModelLister)
	if !ok {
		return fmt.Errorf("provider %s cannot list models", provider.Name())
	}
	names, err := lister.ListModelNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	configured := false
	for _, name := range names {
		marker := "  "
		if name == cfg.AI.Model {
			marker = emoji.GetEmoji("target")
			configured = true
		}
		fmt.Fprintf(out, "%s %s\n", marker, name)
	}
	fmt.Fprintf(out, "\n%d model(s) available\n", len(names))

	if !configured {
		fmt.Fprintf(out, "%s configured model %q is not in the list\n", emoji.GetEmoji("warning"), cfg.AI.Model)
		return nil
	}
	if err := provider.HealthCheck(ctx); err != nil {
		return fmt.Errorf("configured model %s is not usable: %w", cfg.AI.Model, err)
	}
	fmt.Fprintf(out, "%s configured model %s is ready\n", emoji.GetEmoji("success"), cfg.AI.Model)
	return nil
}
