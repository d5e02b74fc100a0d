package wizard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yildizm/LifeStrat/internal/api"
	"github.com/yildizm/LifeStrat/internal/client"
	"github.com/yildizm/LifeStrat/internal/markup"
)

// Analyzer performs the analysis service call
type Analyzer interface {
	Analyze(ctx context.Context, req api.AnalyzeRequest) (*api.AnalyzeResponse, error)
}

// OutcomeKind is how a submission settled
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeServiceError
	OutcomeTransportError
)

// String returns the outcome name
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeServiceError:
		return "service_error"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Outcome is the settled result of one service call
type Outcome struct {
	Kind       OutcomeKind
	Generation uint64
	Response   *api.AnalyzeResponse
	Err        error
	Elapsed    time.Duration
}

// Report is what the result step shows for one successful submission
type Report struct {
	Name       string          `json:"name"`
	BirthDate  string          `json:"birth_date"`
	Numerology api.Numerology  `json:"numerology"`
	Kigaku     api.Kigaku      `json:"kigaku"`
	Analysis   string          `json:"analysis"`
	Fragment   markup.Fragment `json:"fragment"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewReport formats the analysis text and attaches the profile fields
func NewReport(resp *api.AnalyzeResponse, createdAt time.Time) *Report {
	return &Report{
		Name:       resp.Name,
		BirthDate:  resp.BirthDate,
		Numerology: resp.Numerology,
		Kigaku:     resp.Kigaku,
		Analysis:   resp.Analysis,
		Fragment:   markup.Format(resp.Analysis),
		CreatedAt:  createdAt,
	}
}

// Session drives one wizard: validation, the service call and the single
// state transition when the call settles.
//
// Session does not guard against a second Begin while a call is pending;
// the UI only accepts input on the welcome step.
type Session struct {
	steps    *Steps
	analyzer Analyzer
	logger   *zap.Logger
	now      func() time.Time

	mu         sync.Mutex
	generation uint64
	report     *Report
	lastErr    error
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithSessionLogger sets the logger
func WithSessionLogger(l *zap.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession creates a session bound to steps and analyzer
func NewSession(steps *Steps, analyzer Analyzer, opts ...SessionOption) *Session {
	s := &Session{
		steps:    steps,
		analyzer: analyzer,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Steps returns the controller the session transitions
func (s *Session) Steps() *Steps {
	return s.steps
}

// Begin validates the inputs and, when they are usable, activates the
// loading step and returns the request to send
func (s *Session) Begin(name, birthDate string) (api.AnalyzeRequest, error) {
	name = strings.TrimSpace(name)
	birthDate = strings.TrimSpace(birthDate)

	if err := validate(name, birthDate); err != nil {
		s.logger.Debug("submission rejected", zap.String("field", err.Field))
		return api.AnalyzeRequest{}, err
	}

	s.mu.Lock()
	s.generation++
	s.lastErr = nil
	s.mu.Unlock()

	s.steps.Activate(StateLoading)
	return api.AnalyzeRequest{Name: name, BirthDate: birthDate}, nil
}

func validate(name, birthDate string) *ValidationError {
	switch {
	case name == "" && birthDate == "":
		return NewValidationError("name", "name and birth date are required")
	case name == "":
		return NewValidationError("name", "name is required")
	case birthDate == "":
		return NewValidationError("birth_date", "birth date is required")
	}
	if _, err := api.ParseBirthDate(birthDate); err != nil {
		return NewValidationError("birth_date", "birth date must be YYYY-MM-DD")
	}
	return nil
}

// Generation identifies the most recent Begin. Outcomes and progress ticks
// from older submissions carry an older value.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Run performs the service call. It touches no wizard state and is safe to
// run off the UI loop.
func (s *Session) Run(ctx context.Context, req api.AnalyzeRequest) Outcome {
	start := s.now()
	generation := s.Generation()

	resp, err := s.analyzer.Analyze(ctx, req)
	outcome := Outcome{
		Generation: generation,
		Response:   resp,
		Err:        err,
		Elapsed:    s.now().Sub(start),
	}

	switch {
	case err == nil && resp == nil:
		outcome.Kind = OutcomeTransportError
		outcome.Err = client.NewTransportError(client.ErrTypeDecode, "empty response", nil)
	case err == nil:
		outcome.Kind = OutcomeSuccess
	case client.IsServiceError(err):
		outcome.Kind = OutcomeServiceError
	default:
		outcome.Kind = OutcomeTransportError
	}

	s.logger.Info("submission settled",
		zap.Uint64("generation", generation),
		zap.Stringer("outcome", outcome.Kind),
		zap.Duration("elapsed", outcome.Elapsed))

	return outcome
}

// Settle applies the one state transition for a settled call: success
// formats the report and shows the result step, any error returns to the
// welcome step and is handed back for display.
func (s *Session) Settle(o Outcome) (*Report, error) {
	if o.Kind != OutcomeSuccess {
		err := o.Err
		if err == nil {
			err = errors.New(api.GenericErrorMessage)
		}

		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()

		s.steps.Activate(StateWelcome)
		return nil, err
	}

	report := NewReport(o.Response, s.now())

	s.mu.Lock()
	s.report = report
	s.lastErr = nil
	s.mu.Unlock()

	s.steps.Activate(StateResult)
	return report, nil
}

// Submit runs Begin, Run and Settle in sequence
func (s *Session) Submit(ctx context.Context, name, birthDate string) (*Report, error) {
	req, err := s.Begin(name, birthDate)
	if err != nil {
		return nil, err
	}
	return s.Settle(s.Run(ctx, req))
}

// Restart returns to the welcome step for a new submission
func (s *Session) Restart() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()

	s.steps.Activate(StateWelcome)
}

// Report returns the latest successful report, or nil
func (s *Session) Report() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// LastError returns the error of the latest failed submission, cleared by
// the next Begin or Restart
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
