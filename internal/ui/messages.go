package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/LifeStrat/internal/api"
	"github.com/yildizm/LifeStrat/internal/wizard"
)

// outcomeMsg carries a settled service call back to the event loop
type outcomeMsg struct {
	outcome wizard.Outcome
}

// analyzeCommand runs the service call off the event loop. Only the session
// call happens here; state changes wait for the outcome message.
func analyzeCommand(ctx context.Context, session *wizard.Session, req api.AnalyzeRequest) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{outcome: session.Run(ctx, req)}
	}
}
