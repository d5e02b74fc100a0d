package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yildizm/LifeStrat/internal/ui"
	"github.com/yildizm/LifeStrat/internal/wizard"
)

// runWizard starts the interactive wizard against the configured service
func runWizard(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	c, err := newServiceClient(cfg.Service)
	if err != nil {
		return err
	}

	theme, ok := ui.ThemeByName(cfg.UI.Theme)
	if !ok {
		logger.Warn("unknown theme, using default", zap.String("theme", cfg.UI.Theme))
	}
	color := !noColor && !ui.IsColorDisabled() && cfg.Output.ColorMode != "never"

	session := wizard.NewSession(wizard.NewSteps(), c, wizard.WithSessionLogger(logger))
	model := ui.New(cmd.Context(), session, cfg.UI, ui.Options{
		Styles: ui.NewStyles(theme, color),
		Logger: logger,
		Emoji:  !noEmoji,
	})

	logger.Info("wizard started", zap.String("service", c.BaseURL()))
	if err := ui.Run(cmd.Context(), model); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}
