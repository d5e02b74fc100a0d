package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yildizm/LifeStrat/internal/config"
	"github.com/yildizm/LifeStrat/internal/emoji"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage LifeStrat configuration",
		Long: `Manage LifeStrat configuration files and settings.

The config command provides subcommands for initializing, viewing,
validating, and locating configuration files.`,
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default values",
		Example: `  # Create config in current directory
  lifestrat config init

  # Create user config
  lifestrat config init --output ~/.config/lifestrat/config.yaml

  # Overwrite existing config
  lifestrat config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = ".lifestrat.yaml"
			}

			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			if err := config.Save(config.DefaultConfig(), outputPath); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), emoji.Label("success", "Configuration file created at: "+outputPath))
			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path for config file (default: .lifestrat.yaml)")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the effective configuration after merging defaults, the config
file and environment variable overrides.`,
		Example: `  lifestrat config show
  lifestrat config show --format json
  lifestrat config show --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			// never echo the key
			if cfg.AI.APIKey != "" {
				cfg.AI.APIKey = "********"
			}

			var data []byte
			switch format {
			case "json":
				data, err = json.MarshalIndent(cfg, "", "  ")
				data = append(data, '\n')
			case "yaml":
				data, err = yaml.Marshal(cfg)
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to marshal config to %s: %w", format, err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")

	return showCmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Load the configuration from all sources and check it for syntax and
semantic errors: YAML syntax, URLs, ports, enum values and ranges.`,
		Example: `  lifestrat config validate
  lifestrat config validate --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				fmt.Fprintln(out, emoji.Label("error", "Configuration validation failed:"))
				fmt.Fprintf(out, "   %v\n", err)
				return err
			}

			fmt.Fprintln(out, emoji.Label("success", "Configuration is valid"))
			fmt.Fprintln(out, emoji.Label("info", "Configuration summary:"))
			fmt.Fprintf(out, "   Version: %s\n", cfg.Version)
			fmt.Fprintf(out, "   Service URL: %s\n", cfg.Service.URL)
			fmt.Fprintf(out, "   Listen Address: %s\n", cfg.Server.ListenAddr())
			fmt.Fprintf(out, "   AI Provider: %s (%s)\n", cfg.AI.Provider, cfg.AI.Model)
			fmt.Fprintf(out, "   Output Format: %s\n", cfg.Output.DefaultFormat)
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long:  "Display the paths LifeStrat searches for configuration files, in priority order.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration file search paths (in priority order):")
			fmt.Fprintln(out)

			for i, path := range config.GetConfigPaths() {
				status := emoji.Label("error", "(not found)")
				if fileExists(path) {
					status = emoji.Label("success", "(exists)")
				}
				fmt.Fprintf(out, "  %d. %s %s\n", i+1, path, status)
			}
			fmt.Fprintln(out)

			if current, found := config.FindConfigFile(); found {
				fmt.Fprintln(out, emoji.Label("target", "Current config file: "+current))
			} else {
				fmt.Fprintln(out, "No config file found, using defaults")
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Environment variables with the LIFESTRAT_ prefix override file settings;")
			fmt.Fprintln(out, "GEMINI_API_KEY, GEMINI_MODEL and PORT are honored too.")
		},
	}
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
