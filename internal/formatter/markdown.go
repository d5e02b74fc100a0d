package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/LifeStrat/internal/markup"
	"github.com/yildizm/LifeStrat/internal/wizard"
)

// markdownFormatter formats a report as Markdown
type markdownFormatter struct {
	hideProfile bool
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown(o Options) Formatter {
	return &markdownFormatter{hideProfile: o.HideProfile}
}

func (f *markdownFormatter) Format(report *wizard.Report) ([]byte, error) {
	if report == nil {
		return nil, ErrNilReport
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Strategy Report: %s\n\n", report.Name)
	if !report.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n\n", report.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	if !f.hideProfile {
		f.writeProfileTable(&b, report)
	}

	b.WriteString("## Analysis\n\n")
	b.WriteString(FragmentMarkdown(report.Fragment, 2))
	b.WriteString("\n")

	return []byte(b.String()), nil
}

// writeProfileTable writes the profile as a two-column table
func (f *markdownFormatter) writeProfileTable(b *strings.Builder, report *wizard.Report) {
	n, k := report.Numerology, report.Kigaku

	b.WriteString("## Profile\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(b, "| Birth Date | %s |\n", report.BirthDate)
	fmt.Fprintf(b, "| Life Path | %d |\n", n.LifePath)
	fmt.Fprintf(b, "| Destiny | %d |\n", n.Destiny)
	fmt.Fprintf(b, "| Soul | %d |\n", n.Soul)
	fmt.Fprintf(b, "| Personal Year | %d |\n", n.PersonalYear)
	fmt.Fprintf(b, "| 本命星 | %s |\n", k.HonmeiName)
	fmt.Fprintf(b, "| 現在の座相 | %s |\n\n", k.PositionName)
}

// FragmentMarkdown writes a fragment back to Markdown. Heading levels are
// shifted down by shift so the fragment nests under an existing heading.
func FragmentMarkdown(frag markup.Fragment, shift int) string {
	if frag.Empty() {
		return ""
	}

	var b strings.Builder
	for i, n := range frag {
		if i > 0 && (n.IsBlock() || n.Kind == markup.KindRule) {
			blankLine(&b)
		}

		switch n.Kind {
		case markup.KindHeading:
			level := min(n.Level+shift, 6)
			b.WriteString(strings.Repeat("#", level) + " " + inlineMarkdown(n.Children) + "\n\n")
		case markup.KindList:
			for _, item := range n.Children {
				b.WriteString("- " + inlineMarkdown(item.Children) + "\n")
			}
			b.WriteString("\n")
		case markup.KindRule:
			b.WriteString("---\n\n")
		default:
			b.WriteString(inlineMarkdown([]markup.Node{n}))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func blankLine(b *strings.Builder) {
	s := b.String()
	switch {
	case strings.HasSuffix(s, "\n\n"):
	case strings.HasSuffix(s, "\n"):
		b.WriteString("\n")
	default:
		b.WriteString("\n\n")
	}
}

func inlineMarkdown(nodes []markup.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case markup.KindEmphasis:
			b.WriteString("**" + n.Text() + "**")
		case markup.KindBreak:
			// two trailing spaces keep the break inside a paragraph
			b.WriteString("  \n")
		default:
			b.WriteString(n.Text())
		}
	}
	return b.String()
}
