package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/LifeStrat/internal/markup"
	"github.com/yildizm/LifeStrat/internal/wizard"
)

// Styles are the lipgloss styles used to draw a fragment
type Styles struct {
	Headings [3]lipgloss.Style
	Text     lipgloss.Style
	Emphasis lipgloss.Style
	Bullet   lipgloss.Style
	Rule     lipgloss.Style
}

// DefaultStyles returns the colored fragment styles
func DefaultStyles() Styles {
	return Styles{
		Headings: [3]lipgloss.Style{
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		},
		Text:     lipgloss.NewStyle(),
		Emphasis: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		Bullet:   lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		Rule:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// PlainStyles returns styles that add no escape sequences
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Headings: [3]lipgloss.Style{plain, plain, plain},
		Text:     plain,
		Emphasis: plain,
		Bullet:   plain,
		Rule:     plain,
	}
}

// terminalFormatter formats a report as text for terminal display using go-termfmt
type terminalFormatter struct {
	opts        *termfmt.TerminalOptions
	styles      Styles
	width       int
	hideProfile bool
}

// NewTerminal creates a terminal formatter
func NewTerminal(o Options) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = o.Color
	opts.Emoji = o.Emoji

	styles := DefaultStyles()
	switch {
	case o.Styles != nil:
		styles = *o.Styles
	case !o.Color:
		styles = PlainStyles()
	}
	return &terminalFormatter{opts: opts, styles: styles, width: o.width(), hideProfile: o.HideProfile}
}

func (f *terminalFormatter) Format(report *wizard.Report) ([]byte, error) {
	if report == nil {
		return nil, ErrNilReport
	}

	var b strings.Builder
	f.writeHeader(&b, report)
	if !f.hideProfile {
		f.writeProfile(&b, report)
	}
	f.writeAnalysis(&b, report.Fragment)

	return []byte(b.String()), nil
}

// writeHeader draws the report title in a box
func (f *terminalFormatter) writeHeader(b *strings.Builder, report *wizard.Report) {
	header := "Strategy Report"
	if report.Name != "" {
		header += ": " + report.Name
	}
	width := lipgloss.Width(header)

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

// writeProfile writes the computed profile as a tree
func (f *terminalFormatter) writeProfile(b *strings.Builder, report *wizard.Report) {
	b.WriteString(termfmt.GetEmoji("statistics", f.opts) + " Profile\n")
	b.WriteString(termfmt.TreeViewWithOptions(profileTree(report), f.opts) + "\n\n")
}

func profileTree(report *wizard.Report) []termfmt.TreeItem {
	n, k := report.Numerology, report.Kigaku
	return []termfmt.TreeItem{
		{Label: "Birth Date", Value: report.BirthDate},
		{Label: "Numerology", Children: []termfmt.TreeItem{
			{Label: "Life Path", Value: fmt.Sprintf("%d", n.LifePath)},
			{Label: "Destiny", Value: fmt.Sprintf("%d", n.Destiny)},
			{Label: "Soul", Value: fmt.Sprintf("%d", n.Soul)},
			{Label: "Personal Year", Value: fmt.Sprintf("%d", n.PersonalYear), Last: true},
		}},
		{Label: "Kigaku", Last: true, Children: []termfmt.TreeItem{
			{Label: "本命星", Value: k.HonmeiName},
			{Label: "現在の座相", Value: k.PositionName, Last: true},
		}},
	}
}

func (f *terminalFormatter) writeAnalysis(b *strings.Builder, frag markup.Fragment) {
	b.WriteString(termfmt.GetEmoji("brain", f.opts) + " Analysis\n\n")
	if frag.Empty() {
		b.WriteString("(empty analysis)\n")
		return
	}
	b.WriteString(RenderFragment(frag, f.styles, f.width))
	b.WriteString("\n")
}

// RenderFragment draws a fragment with styles. Rules span width columns.
func RenderFragment(frag markup.Fragment, styles Styles, width int) string {
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for i, n := range frag {
		switch n.Kind {
		case markup.KindHeading, markup.KindList, markup.KindRule:
			if i > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteString("\n")
			}
			b.WriteString(renderBlock(n, styles, width))
			b.WriteString("\n")
		default:
			b.WriteString(renderInline(n, styles))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderBlock(n markup.Node, styles Styles, width int) string {
	switch n.Kind {
	case markup.KindHeading:
		level := n.Level
		if level < 1 || level > 3 {
			level = 1
		}
		style := styles.Headings[level-1]
		var heading strings.Builder
		for _, child := range n.Children {
			if child.Kind == markup.KindEmphasis {
				heading.WriteString(styles.Emphasis.Inherit(style).Render(child.Text()))
				continue
			}
			heading.WriteString(style.Render(child.Text()))
		}
		return heading.String()
	case markup.KindRule:
		return styles.Rule.Render(strings.Repeat("─", width))
	}

	lines := make([]string, 0, len(n.Children))
	for _, item := range n.Children {
		var line strings.Builder
		line.WriteString(styles.Bullet.Render("  • "))
		for _, child := range item.Children {
			line.WriteString(renderInline(child, styles))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func renderInline(n markup.Node, styles Styles) string {
	switch n.Kind {
	case markup.KindText:
		return styles.Text.Render(n.Literal)
	case markup.KindEmphasis:
		return styles.Emphasis.Render(n.Text())
	case markup.KindBreak:
		return "\n"
	default:
		return n.Text()
	}
}
