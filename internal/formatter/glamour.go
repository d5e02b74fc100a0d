package formatter

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/yildizm/LifeStrat/internal/wizard"
)

// glamourFormatter renders the Markdown report for the terminal
type glamourFormatter struct {
	markdown Formatter
	color    bool
	width    int
}

// NewGlamour creates a formatter that pipes the Markdown output through glamour
func NewGlamour(o Options) Formatter {
	return &glamourFormatter{
		markdown: NewMarkdown(o),
		color:    o.Color,
		width:    o.width(),
	}
}

func (f *glamourFormatter) Format(report *wizard.Report) ([]byte, error) {
	md, err := f.markdown.Format(report)
	if err != nil {
		return nil, err
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(f.width)}
	if f.color {
		opts = append(opts, glamour.WithStandardStyle("dark"))
	} else {
		opts = append(opts, glamour.WithStylePath("notty"))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(string(md))
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return []byte(out), nil
}
