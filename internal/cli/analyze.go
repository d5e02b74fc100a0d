package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yildizm/LifeStrat/internal/client"
	"github.com/yildizm/LifeStrat/internal/config"
	"github.com/yildizm/LifeStrat/internal/formatter"
	"github.com/yildizm/LifeStrat/internal/wizard"
)

var (
	analyzeName       string
	analyzeBirthDate  string
	analyzeServiceURL string
	analyzeTimeout    time.Duration
	analyzeOutputFile string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Request a strategy report without the wizard",
		Long: `Send a name and a birth date to the analysis service and print the
report in the selected output format.

Examples:
  lifestrat analyze --name 田中 --birth-date 1990-01-01
  lifestrat analyze --name 田中 --birth-date 1990-01-01 -o markdown --output-file report.md
  lifestrat analyze --name 田中 --birth-date 1990-01-01 -o json --url http://localhost:5000`,
		Args: cobra.NoArgs,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeName, "name", "n", "", "name of the person")
	cmd.Flags().StringVarP(&analyzeBirthDate, "birth-date", "b", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&analyzeServiceURL, "url", "", "analysis service URL (default: service.url)")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "request timeout (default: service.timeout)")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	c, err := newServiceClient(cfg.Service)
	if err != nil {
		return err
	}

	f, err := formatter.New(getOutputFormat(), formatterOptions(outputWriter(cmd)))
	if err != nil {
		return err
	}

	session := wizard.NewSession(wizard.NewSteps(), c, wizard.WithSessionLogger(logger))
	report, err := session.Submit(cmd.Context(), analyzeName, analyzeBirthDate)
	if err != nil {
		if wizard.IsValidationError(err) {
			return err
		}
		return fmt.Errorf("analysis failed: %s", client.UserMessage(err))
	}

	output, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	return handleOutputDestination(cmd, output, analyzeOutputFile)
}

// newServiceClient builds the analysis service client, applying the
// --url and --timeout overrides
func newServiceClient(svc config.ServiceConfig) (*client.Client, error) {
	url := svc.URL
	if analyzeServiceURL != "" {
		url = analyzeServiceURL
	}
	timeout := svc.Timeout
	if analyzeTimeout > 0 {
		timeout = analyzeTimeout
	}

	c, err := client.New(url, client.WithTimeout(timeout), client.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create service client: %w", err)
	}
	logger.Debug("service client ready", zap.String("url", c.BaseURL()), zap.Duration("timeout", timeout))
	return c, nil
}

// outputWriter is where report output goes when no file is given
func outputWriter(cmd *cobra.Command) io.Writer {
	if analyzeOutputFile != "" {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

// handleOutputDestination writes output to file or stdout
func handleOutputDestination(cmd *cobra.Command, output []byte, path string) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(output)
		return err
	}

	if err := writeOutputBytesToFile(output, path); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	if isVerbose() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Output saved to: %s\n", path)
	}
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logger.Warn("failed to close output file", zap.Error(closeErr))
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return file.Sync()
}

// withTimeout bounds ctx by d when d is positive
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
