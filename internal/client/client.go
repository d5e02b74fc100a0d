// Package client talks to the analysis service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/yildizm/LifeStrat/internal/api"
)

const (
	tracerName      = "github.com/yildizm/LifeStrat/internal/client"
	maxErrorBodyLen = 1 << 20
)

// Client calls POST /analyze and GET /health on one analysis service
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
	tracer  trace.Tracer
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the whole-request timeout; zero disables it
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the service at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid service url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid service url: %s", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		logger:  zap.NewNop(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Analyze submits a name and birth date and returns the decoded report
func (c *Client) Analyze(ctx context.Context, req api.AnalyzeRequest) (*api.AnalyzeResponse, error) {
	ctx, span := c.tracer.Start(ctx, "client.Analyze")
	defer span.End()

	start := time.Now()
	endpoint := c.baseURL.JoinPath(api.PathAnalyze)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, c.fail(span, NewTransportError(ErrTypeNetwork, "failed to encode request", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, c.fail(span, NewTransportError(ErrTypeNetwork, "failed to create request", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	c.logger.Debug("submitting analysis", zap.String("url", endpoint.String()))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, c.fail(span, classifyTransport(err))
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(span, readServiceError(resp))
	}

	var result api.AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, c.fail(span, NewTransportError(ErrTypeDecode, "failed to decode response", err))
	}

	c.logger.Info("analysis received",
		zap.Int("status", resp.StatusCode),
		zap.Int("analysis_bytes", len(result.Analysis)),
		zap.Duration("elapsed", time.Since(start)))

	return &result, nil
}

// Health checks that the service is up
func (c *Client) Health(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "client.Health")
	defer span.End()

	endpoint := c.baseURL.JoinPath(api.PathHealth)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return c.fail(span, NewTransportError(ErrTypeNetwork, "failed to create health check request", err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(span, classifyTransport(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.fail(span, readServiceError(resp))
	}

	var health api.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return c.fail(span, NewTransportError(ErrTypeDecode, "failed to decode health response", err))
	}
	if health.Status != api.StatusHealthy {
		return c.fail(span, NewServiceError(resp.StatusCode, fmt.Sprintf("service reports status %q", health.Status)))
	}
	return nil
}

// BaseURL returns the service URL the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) fail(span trace.Span, err *ServiceError) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(err.Type))
	c.logger.Warn("analysis service call failed",
		zap.String("type", string(err.Type)),
		zap.Int("status", err.StatusCode),
		zap.Error(err))
	return err
}

// readServiceError builds the error for a non-2xx response. The server's
// "error" field is used verbatim; anything else falls back to a generic
// message.
func readServiceError(resp *http.Response) *ServiceError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))

	var errorResp api.ErrorResponse
	if json.Unmarshal(body, &errorResp) == nil && errorResp.Error != "" {
		return NewServiceError(resp.StatusCode, errorResp.Error)
	}
	return NewServiceError(resp.StatusCode, api.GenericErrorMessage)
}

func classifyTransport(err error) *ServiceError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTransportError(ErrTypeTimeout, "analysis service timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTransportError(ErrTypeTimeout, "analysis service timed out", err)
	}
	return NewTransportError(ErrTypeNetwork, "analysis service unreachable", err)
}
