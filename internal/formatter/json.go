package formatter

import (
	"encoding/json"

	"github.com/yildizm/LifeStrat/internal/wizard"
)

// jsonFormatter formats a report as indented JSON, fragment included
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *wizard.Report) ([]byte, error) {
	if report == nil {
		return nil, ErrNilReport
	}
	return json.MarshalIndent(report, "", "  ")
}
