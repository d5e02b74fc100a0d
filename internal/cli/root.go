package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/yildizm/LifeStrat/internal/config"
	"github.com/yildizm/LifeStrat/internal/emoji"
	"github.com/yildizm/LifeStrat/internal/formatter"
	"github.com/yildizm/LifeStrat/internal/logging"
	"github.com/yildizm/LifeStrat/internal/telemetry"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalConfig      *config.Config
	logger            = zap.NewNop()
	telemetryShutdown telemetry.Shutdown
)

const telemetryFlushTimeout = 5 * time.Second

func init() {
	cobra.OnFinalize(flushTelemetry)
}

// NewRootCommand creates the root command. Without a subcommand it runs the
// interactive wizard.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lifestrat",
		Short: "Life strategy analysis from numerology and nine star ki",
		Long: `LifeStrat asks for a name and a birth date, sends them to the analysis
service and shows the strategy report it returns.

Run without a subcommand to start the interactive wizard. Use "serve" to run
the analysis service itself.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: runWizard,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, markdown, pretty, html, json)")

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newModelsCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// setup loads the configuration and builds the logger for every command
func setup(cmd *cobra.Command, args []string) error {
	// Auto-disable emojis on Windows if not explicitly set
	if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
		noEmoji = true
	}
	emoji.SetEmojiDisabled(noEmoji)

	// config subcommands report load errors themselves
	if isConfigCommand(cmd) {
		return nil
	}

	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	globalConfig = cfg

	l, err := logging.New(cfg.Logging, logging.Options{
		Verbose:     verbose,
		Interactive: cmd.Root() == cmd,
	})
	if err != nil {
		return err
	}
	logger = l

	shutdown, err := telemetry.Setup(cmd.Context(), cfg.Telemetry, logger)
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	telemetryShutdown = shutdown
	return nil
}

// flushTelemetry exports pending spans once the command has finished,
// including when it failed
func flushTelemetry() {
	if telemetryShutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
	defer cancel()
	if err := telemetryShutdown(ctx); err != nil {
		logger.Warn("telemetry shutdown failed", zap.Error(err))
	}
	telemetryShutdown = nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "LifeStrat %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers

func isVerbose() bool {
	return verbose
}

// GetGlobalConfig returns the loaded configuration, or the defaults before
// any command has run
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// getOutputFormat prefers the --output flag over output.default_format
func getOutputFormat() string {
	if outputFmt != "" {
		return outputFmt
	}
	return GetGlobalConfig().Output.DefaultFormat
}

// useColor resolves --no-color, NO_COLOR and output.color_mode for w
func useColor(w io.Writer) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch GetGlobalConfig().Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatterOptions builds renderer options for output written to w
func formatterOptions(w io.Writer) formatter.Options {
	out := GetGlobalConfig().Output
	return formatter.Options{
		Color:       useColor(w),
		Emoji:       !noEmoji,
		Width:       out.Width,
		HideProfile: !out.ShowProfile,
	}
}
