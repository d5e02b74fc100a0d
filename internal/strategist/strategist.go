// Package strategist produces analysis reports: it computes the numerology
// and nine star ki profiles and asks a language model for the strategy text.
package strategist

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/yildizm/LifeStrat/internal/ai"
	"github.com/yildizm/LifeStrat/internal/api"
	"github.com/yildizm/LifeStrat/internal/kigaku"
	"github.com/yildizm/LifeStrat/internal/numerology"
)

const tracerName = "github.com/yildizm/LifeStrat/internal/strategist"

// Strategist answers analyze requests. It is safe for concurrent use when
// its provider is.
type Strategist struct {
	provider    ai.Provider
	logger      *zap.Logger
	tracer      trace.Tracer
	now         func() time.Time
	maxTokens   int
	temperature float64
}

// Option configures a Strategist
type Option func(*Strategist)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Strategist) { s.logger = l }
}

// WithClock replaces time.Now; the current year drives the personal year
// and the current palace
func WithClock(now func() time.Time) Option {
	return func(s *Strategist) { s.now = now }
}

// WithLimits sets the completion limits, zero keeps the provider default
func WithLimits(maxTokens int, temperature float64) Option {
	return func(s *Strategist) {
		s.maxTokens = maxTokens
		s.temperature = temperature
	}
}

// New creates a strategist backed by provider
func New(provider ai.Provider, opts ...Option) *Strategist {
	s := &Strategist{
		provider: provider,
		logger:   zap.NewNop(),
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the backing provider
func (s *Strategist) Provider() ai.Provider {
	return s.provider
}

// Analyze validates req, computes both profiles and requests the strategy
// text. A provider failure does not fail the request: the analysis text
// carries the error instead so the profile still reaches the user.
func (s *Strategist) Analyze(ctx context.Context, req api.AnalyzeRequest) (*api.AnalyzeResponse, error) {
	if req.Name == "" || req.BirthDate == "" {
		return nil, &InputError{Message: "name and birth_date are required"}
	}

	date, err := api.ParseBirthDate(req.BirthDate)
	if err != nil {
		return nil, &InputError{Message: "invalid date format", Cause: err}
	}

	year, month, day := date.Date()
	currentYear := s.now().Year()

	resp := &api.AnalyzeResponse{
		Name:       req.Name,
		BirthDate:  req.BirthDate,
		Numerology: api.Numerology(numerology.Calculate(year, int(month), day, req.Name, currentYear)),
		Kigaku:     api.Kigaku(kigaku.Calculate(year, int(month), day, currentYear)),
	}

	analysis, err := s.complete(ctx, resp)
	if err != nil {
		s.logger.Warn("strategy generation failed", zap.Error(err))
		analysis = api.GenericErrorMessage + ": " + err.Error()
	}
	resp.Analysis = analysis

	return resp, nil
}

func (s *Strategist) complete(ctx context.Context, resp *api.AnalyzeResponse) (string, error) {
	if s.provider == nil {
		return "", errors.New("no AI provider configured")
	}

	ctx, span := s.tracer.Start(ctx, "strategist.complete",
		trace.WithAttributes(attribute.String("ai.provider", s.provider.Name())))
	defer span.End()

	prompt := NewReportPattern(resp.Name, resp.BirthDate, resp.Numerology, resp.Kigaku).Build()

	start := s.now()
	out, err := s.provider.Complete(ctx, &ai.CompletionRequest{
		Prompt:       prompt.String(),
		SystemPrompt: prompt.SystemPrompt,
		MaxTokens:    s.maxTokens,
		Temperature:  s.temperature,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", err
	}

	fields := []zap.Field{
		zap.String("provider", s.provider.Name()),
		zap.String("model", out.Model),
		zap.Duration("elapsed", s.now().Sub(start)),
	}
	if out.Usage != nil {
		span.SetAttributes(attribute.Int("ai.tokens.total", out.Usage.TotalTokens))
		fields = append(fields, zap.Int("tokens", out.Usage.TotalTokens))
	}
	s.logger.Info("strategy generated", fields...)

	return Unfence(out.Content), nil
}

// Unfence strips a single surrounding ``` code fence that some models wrap
// markdown answers in, and trims the text
func Unfence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}

	body := strings.TrimSuffix(text, "```")
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return text
	}
	return strings.TrimSpace(body[nl+1:])
}
