package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/LifeStrat/internal/api"
	"github.com/yildizm/LifeStrat/internal/formatter"
	"github.com/yildizm/LifeStrat/internal/wizard"
)

var (
	renderName  string
	renderWatch bool
)

func newRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render saved analysis text",
		Long: `Render analysis text, as returned by the service, in the selected output
format. The text is read from the file, or from stdin when no file is given.
The profile section is left out because plain text carries no profile.

With --watch the file is rendered again every time it changes. Press Ctrl+C
to stop watching.

Examples:
  lifestrat render analysis.txt
  lifestrat render -o html analysis.txt > report.html
  cat analysis.txt | lifestrat render -o markdown
  lifestrat render --watch draft.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRender,
	}

	cmd.Flags().StringVarP(&renderName, "name", "n", "", "name shown in the report header")
	cmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "re-render when the file changes")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	opts := formatterOptions(cmd.OutOrStdout())
	opts.HideProfile = true
	f, err := formatter.New(getOutputFormat(), opts)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if renderWatch {
			return fmt.Errorf("--watch needs a file argument")
		}
		text, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		return writeRendered(cmd.OutOrStdout(), f, string(text))
	}

	filename := args[0]
	if err := renderFile(cmd.OutOrStdout(), f, filename); err != nil {
		return err
	}
	if !renderWatch {
		return nil
	}
	return watchAndRender(cmd, f, filename)
}

func renderFile(w io.Writer, f formatter.Formatter, filename string) error {
	text, err := readAnalysisFile(filename)
	if err != nil {
		return err
	}
	return writeRendered(w, f, text)
}

func readAnalysisFile(filename string) (string, error) {
	// #nosec G304 - path is chosen by the user on the command line
	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return string(data), nil
}

// writeRendered formats text as a report without profile data
func writeRendered(w io.Writer, f formatter.Formatter, text string) error {
	report := wizard.NewReport(&api.AnalyzeResponse{
		Name:     renderName,
		Analysis: text,
	}, time.Now())

	out, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		_, err = io.WriteString(w, "\n")
	}
	return err
}
