package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Viewer is a scrollable pane for the rendered report
type Viewer struct {
	viewport viewport.Model
	content  string
	footer   lipgloss.Style
}

// NewViewer creates a viewer of the given size
func NewViewer(width, height int) *Viewer {
	return &Viewer{
		viewport: viewport.New(width, height),
		footer:   lipgloss.NewStyle().Faint(true),
	}
}

// SetSize resizes the pane and keeps the content
func (v *Viewer) SetSize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = max(1, height)
	v.viewport.SetContent(v.content)
}

// SetContent replaces the content and scrolls to the top
func (v *Viewer) SetContent(content string) {
	v.content = content
	v.viewport.SetContent(content)
	v.viewport.GotoTop()
}

// Content returns the current content
func (v *Viewer) Content() string {
	return v.content
}

// GotoTop scrolls to the first line
func (v *Viewer) GotoTop() {
	v.viewport.GotoTop()
}

// AtTop reports whether the first line is visible
func (v *Viewer) AtTop() bool {
	return v.viewport.AtTop()
}

// Update forwards scrolling keys and mouse wheel events
func (v *Viewer) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

// View renders the pane with a scroll position footer
func (v *Viewer) View() string {
	footer := v.footer.Render(fmt.Sprintf("%3.f%%", v.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, v.viewport.View(), footer)
}
