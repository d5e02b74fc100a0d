package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yildizm/LifeStrat/internal/wizard"
)

// Output format names accepted by New
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatPretty   = "pretty"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// ErrNilReport is returned when there is nothing to render
var ErrNilReport = errors.New("no report to render")

// Formatter renders a report for output
type Formatter interface {
	Format(report *wizard.Report) ([]byte, error)
}

// Options controls the terminal-facing renderers
type Options struct {
	Color       bool
	Emoji       bool
	Width       int
	HideProfile bool

	// Styles overrides the fragment styles of the text renderer
	Styles *Styles
}

// DefaultOptions returns colored, emoji output at 80 columns
func DefaultOptions() Options {
	return Options{Color: true, Emoji: true, Width: 80}
}

func (o Options) width() int {
	if o.Width <= 0 {
		return 80
	}
	return o.Width
}

// Formats lists the names New accepts
func Formats() []string {
	return []string{FormatText, FormatMarkdown, FormatPretty, FormatHTML, FormatJSON}
}

// New creates the formatter registered under name
func New(name string, opts Options) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatText, "":
		return NewTerminal(opts), nil
	case FormatMarkdown, "md":
		return NewMarkdown(opts), nil
	case FormatPretty:
		return NewGlamour(opts), nil
	case FormatHTML:
		return NewHTML(opts), nil
	case FormatJSON:
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (must be one of: %s)", name, strings.Join(Formats(), ", "))
	}
}
