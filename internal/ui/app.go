// Package ui is the interactive wizard: a welcome form, a loading step and
// a scrollable result step, switched by a wizard.Steps controller.
package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/yildizm/LifeStrat/internal/api"
	"github.com/yildizm/LifeStrat/internal/client"
	"github.com/yildizm/LifeStrat/internal/config"
	"github.com/yildizm/LifeStrat/internal/emoji"
	"github.com/yildizm/LifeStrat/internal/formatter"
	"github.com/yildizm/LifeStrat/internal/ui/components"
	"github.com/yildizm/LifeStrat/internal/wizard"
)

const (
	fieldName = iota
	fieldBirthDate
)

// Options configures the wizard model
type Options struct {
	Styles *Styles
	Logger *zap.Logger
	Emoji  bool
}

// Model is the bubbletea model of the wizard
type Model struct {
	ctx     context.Context
	session *wizard.Session
	steps   *wizard.Steps
	styles  *Styles
	logger  *zap.Logger
	emoji   bool

	inputs [2]textinput.Model
	focus  int

	progress *components.Progress
	viewer   *components.Viewer

	errMsg   string
	width    int
	height   int
	quitting bool
}

// New creates the wizard model. The scroll hook of the session's steps is
// bound to the result pane.
func New(ctx context.Context, session *wizard.Session, cfg config.UIConfig, opts Options) *Model {
	if opts.Styles == nil {
		opts.Styles = NewStyles(DefaultTheme, true)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	name := textinput.New()
	name.Placeholder = "山田 太郎"
	name.CharLimit = 64
	name.Width = 32
	name.Prompt = ""
	name.Focus()

	birth := textinput.New()
	birth.Placeholder = api.DateLayout
	birth.CharLimit = len(api.DateLayout)
	birth.Width = 32
	birth.Prompt = ""

	m := &Model{
		ctx:      ctx,
		session:  session,
		steps:    session.Steps(),
		styles:   opts.Styles,
		logger:   opts.Logger,
		emoji:    opts.Emoji,
		inputs:   [2]textinput.Model{name, birth},
		progress: components.NewProgress(cfg.ProgressSegments, cfg.ProgressInterval, opts.Styles.Color),
		viewer:   components.NewViewer(80, 20),
	}

	m.steps.OnScroll(m.viewer.GotoTop)
	m.steps.OnChange(func(from, to wizard.State) {
		m.logger.Debug("step changed", zap.Stringer("from", from), zap.Stringer("to", to))
	})
	return m
}

// Init starts the cursor blink
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the active step
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewer.SetSize(max(20, msg.Width-4), msg.Height-7)
		if report := m.session.Report(); report != nil {
			m.viewer.SetContent(m.renderReport(report))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case outcomeMsg:
		return m.handleOutcome(msg.outcome)

	case components.ProgressTickMsg:
		return m, m.progress.Update(msg)
	}

	if m.steps.IsActive(wizard.StateLoading) {
		return m, m.progress.Update(msg)
	}
	if m.steps.IsActive(wizard.StateResult) {
		return m, m.viewer.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.steps.Active() {
	case wizard.StateWelcome:
		return m.handleWelcomeKey(msg)
	case wizard.StateResult:
		switch msg.String() {
		case "r", "enter":
			m.restart()
			return m, textinput.Blink
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.viewer.Update(msg)
	}
	// loading accepts no input
	return m, nil
}

func (m *Model) handleWelcomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % len(m.inputs))
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
	case "enter":
		if m.focus == fieldName {
			return m, m.setFocus(fieldBirthDate)
		}
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	for i := range m.inputs {
		if i == field {
			continue
		}
		m.inputs[i].Blur()
	}
	return m.inputs[field].Focus()
}

func (m *Model) submit() tea.Cmd {
	req, err := m.session.Begin(m.inputs[fieldName].Value(), m.inputs[fieldBirthDate].Value())
	if err != nil {
		var ve *wizard.ValidationError
		if errors.As(err, &ve) {
			m.errMsg = ve.Message
			if ve.Field == "name" {
				return m.setFocus(fieldName)
			}
			return m.setFocus(fieldBirthDate)
		}
		m.errMsg = err.Error()
		return nil
	}

	m.errMsg = ""
	return tea.Batch(
		m.progress.Start(m.session.Generation()),
		analyzeCommand(m.ctx, m.session, req),
	)
}

func (m *Model) handleOutcome(o wizard.Outcome) (tea.Model, tea.Cmd) {
	if o.Generation != m.session.Generation() {
		m.logger.Debug("stale outcome dropped", zap.Uint64("generation", o.Generation))
		return m, nil
	}

	m.progress.Stop()
	report, err := m.session.Settle(o)
	if err != nil {
		m.errMsg = client.UserMessage(err)
		return m, m.setFocus(fieldBirthDate)
	}

	m.viewer.SetContent(m.renderReport(report))
	return m, nil
}

func (m *Model) restart() {
	m.session.Restart()
	m.errMsg = ""
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.setFocus(fieldName)
}

func (m *Model) renderReport(report *wizard.Report) string {
	fs := m.styles.Fragment()
	f := formatter.NewTerminal(formatter.Options{
		Color:  m.styles.Color,
		Emoji:  m.emoji,
		Width:  max(20, m.width-8),
		Styles: &fs,
	})
	out, err := f.Format(report)
	if err != nil {
		return report.Fragment.PlainText()
	}
	return strings.TrimRight(string(out), "\n")
}

// View renders only the active step
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	views := []string{m.styles.Title.Render(emoji.Label("star", "LifeStrat")), ""}
	for _, st := range m.steps.Visible() {
		switch st {
		case wizard.StateWelcome:
			views = append(views, m.viewWelcome())
		case wizard.StateLoading:
			views = append(views, m.viewLoading())
		case wizard.StateResult:
			views = append(views, m.viewResult())
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

func (m *Model) viewWelcome() string {
	rows := []string{
		m.styles.Header.Render("あなたの人生戦略を分析します"),
		"",
		m.styles.Label.Render(emoji.Label("person", "お名前")),
		m.inputs[fieldName].View(),
		"",
		m.styles.Label.Render(emoji.Label("calendar", "生年月日 (YYYY-MM-DD)")),
		m.inputs[fieldBirthDate].View(),
	}

	if m.errMsg != "" {
		rows = append(rows, "", m.styles.Error.Render(emoji.Label("error", m.errMsg)))
	}

	rows = append(rows, "", m.styles.Muted.Render("tab: next field • enter: analyze • esc: quit"))
	return m.styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) viewLoading() string {
	return m.styles.Box.Render(m.progress.View(m.styles.Header.Render("分析中...")))
}

func (m *Model) viewResult() string {
	help := m.styles.Muted.Render("↑/↓: scroll • r: " + emoji.Label("restart", "new analysis") + " • q: quit")
	rows := []string{m.viewer.View(), help}
	if outline := m.outline(); outline != "" {
		rows = append([]string{m.styles.Label.Render(outline)}, rows...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// outline lists the report's section headings
func (m *Model) outline() string {
	report := m.session.Report()
	if report == nil {
		return ""
	}
	headings := report.Fragment.Headings()
	if len(headings) == 0 {
		return ""
	}
	return "目次: " + strings.Join(headings, " · ")
}

// Run starts the wizard on the alternate screen and blocks until it exits
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
