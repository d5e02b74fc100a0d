// Package api holds the JSON contract between the wizard and the analysis
// service.
package api

import (
	"fmt"
	"time"
)

const (
	// PathAnalyze accepts an AnalyzeRequest and returns an AnalyzeResponse
	PathAnalyze = "/analyze"

	// PathHealth returns a HealthResponse
	PathHealth = "/health"

	// DateLayout is the only accepted birth date form
	DateLayout = "2006-01-02"

	// GenericErrorMessage is shown when a failed response carries no message
	GenericErrorMessage = "an error occurred"

	// StatusHealthy is the health endpoint's status value
	StatusHealthy = "healthy"
)

// AnalyzeRequest is the body of POST /analyze
type AnalyzeRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

// AnalyzeResponse is the success body of POST /analyze
type AnalyzeResponse struct {
	Name       string     `json:"name"`
	BirthDate  string     `json:"birth_date"`
	Analysis   string     `json:"analysis"`
	Numerology Numerology `json:"numerology"`
	Kigaku     Kigaku     `json:"kigaku"`
}

// Numerology carries the four core numbers
type Numerology struct {
	LifePath     int `json:"life_path"`
	Destiny      int `json:"destiny"`
	Soul         int `json:"soul"`
	PersonalYear int `json:"personal_year"`
}

// Kigaku carries the nine star ki profile
type Kigaku struct {
	HonmeiStar          int    `json:"honmei_star"`
	HonmeiName          string `json:"honmei_name"`
	CurrentPosition     int    `json:"current_position"`
	PositionName        string `json:"position_name"`
	PositionDescription string `json:"position_description"`
}

// ErrorResponse is the body of any non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// ParseBirthDate parses a YYYY-MM-DD date
func ParseBirthDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("birth date must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}
