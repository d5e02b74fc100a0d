package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProgressTickMsg reveals the next loading segment of one submission
type ProgressTickMsg struct {
	Generation uint64
}

// Progress is the loading indicator. It reveals one segment per interval and
// is not tied to request completion.
type Progress struct {
	Segments []string
	Interval time.Duration

	generation uint64
	revealed   int
	running    bool

	bar     progress.Model
	spinner spinner.Model

	doneStyle    lipgloss.Style
	pendingStyle lipgloss.Style
}

// NewProgress creates a progress indicator over segments
func NewProgress(segments []string, interval time.Duration, color bool) *Progress {
	barOpts := []progress.Option{progress.WithWidth(40), progress.WithoutPercentage()}
	if color {
		barOpts = append(barOpts, progress.WithDefaultGradient())
	} else {
		barOpts = append(barOpts, progress.WithFillCharacters('#', '.'), progress.WithSolidFill(""))
	}

	p := &Progress{
		Segments:     segments,
		Interval:     interval,
		bar:          progress.New(barOpts...),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		doneStyle:    lipgloss.NewStyle(),
		pendingStyle: lipgloss.NewStyle().Faint(true),
	}
	if color {
		p.doneStyle = p.doneStyle.Foreground(lipgloss.Color("#10B981"))
		p.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
	}
	return p
}

// Start resets the indicator for a new submission and arms the first tick
func (p *Progress) Start(generation uint64) tea.Cmd {
	p.generation = generation
	p.revealed = 0
	p.running = true
	return tea.Batch(p.tick(), p.spinner.Tick)
}

// Stop halts the indicator; pending ticks are dropped when they arrive
func (p *Progress) Stop() {
	p.running = false
}

// Revealed is the number of segments shown so far
func (p *Progress) Revealed() int {
	return p.revealed
}

// Running reports whether ticks are still being handled
func (p *Progress) Running() bool {
	return p.running
}

func (p *Progress) tick() tea.Cmd {
	if len(p.Segments) == 0 || p.Interval <= 0 {
		return nil
	}
	generation := p.generation
	return tea.Tick(p.Interval, func(time.Time) tea.Msg {
		return ProgressTickMsg{Generation: generation}
	})
}

// Update handles progress and spinner ticks. A tick from another submission
// is ignored, and no tick is re-armed once every segment is revealed.
func (p *Progress) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ProgressTickMsg:
		if !p.running || msg.Generation != p.generation {
			return nil
		}
		if p.revealed < len(p.Segments) {
			p.revealed++
		}
		if p.revealed >= len(p.Segments) {
			return nil
		}
		return p.tick()

	case spinner.TickMsg:
		if !p.running {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd
	}
	return nil
}

// Percent is the revealed share of segments
func (p *Progress) Percent() float64 {
	if len(p.Segments) == 0 {
		return 0
	}
	return float64(p.revealed) / float64(len(p.Segments))
}

// View renders the spinner, the segment checklist and the bar
func (p *Progress) View(label string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", p.spinner.View(), label)

	for i, segment := range p.Segments {
		if i < p.revealed {
			b.WriteString(p.doneStyle.Render("✓ "+segment) + "\n")
		} else {
			b.WriteString(p.pendingStyle.Render("· "+segment) + "\n")
		}
	}

	b.WriteString("\n" + p.bar.ViewAs(p.Percent()))
	return b.String()
}
