package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/LifeStrat/internal/api"
	"github.com/yildizm/LifeStrat/internal/client"
	"github.com/yildizm/LifeStrat/internal/markup"
)

// analyzerFunc adapts a function to Analyzer
type analyzerFunc func(ctx context.Context, req api.AnalyzeRequest) (*api.AnalyzeResponse, error)

func (f analyzerFunc) Analyze(ctx context.Context, req api.AnalyzeRequest) (*api.AnalyzeResponse, error) {
	return f(ctx, req)
}

func TestBegin_Validation(t *testing.T) {
	tests := []struct {
		name      string
		person    string
		birthDate string
		field     string
	}{
		{"both missing", "", "", "name"},
		{"name missing", "  ", "1990-01-01", "name"},
		{"date missing", "田中", "", "birth_date"},
		{"date malformed", "田中", "1990/01/01", "birth_date"},
		{"date impossible", "田中", "1990-02-30", "birth_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			session := NewSession(NewSteps(), analyzerFunc(func(context.Context, api.AnalyzeRequest) (*api.AnalyzeResponse, error) {
				called = true
				return nil, nil
			}))

			_, err := session.Submit(context.Background(), tt.person, tt.birthDate)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.True(t, IsValidationError(err))

			assert.False(t, called, "no request may be sent")
			assert.Equal(t, StateWelcome, session.Steps().Active())
		})
	}
}

func TestBegin_TrimsAndActivatesLoading(t *testing.T) {
	session := NewSession(NewSteps(), nil)

	req, err := session.Begin("  田中 ", " 1990-01-01 ")
	require.NoError(t, err)

	assert.Equal(t, api.AnalyzeRequest{Name: "田中", BirthDate: "1990-01-01"}, req)
	assert.Equal(t, StateLoading, session.Steps().Active())
	assert.Equal(t, uint64(1), session.Generation())
}

func TestRun_ClassifiesOutcomes(t *testing.T) {
	tests := []struct {
		name string
		resp *api.AnalyzeResponse
		err  error
		want OutcomeKind
	}{
		{"success", &api.AnalyzeResponse{Analysis: "x"}, nil, OutcomeSuccess},
		{"service error", nil, client.NewServiceError(500, "boom"), OutcomeServiceError},
		{"transport error", nil, client.NewTransportError(client.ErrTypeNetwork, "down", errors.New("refused")), OutcomeTransportError},
		{"foreign error", nil, errors.New("other"), OutcomeTransportError},
		{"nil response", nil, nil, OutcomeTransportError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession(NewSteps(), analyzerFunc(func(context.Context, api.AnalyzeRequest) (*api.AnalyzeResponse, error) {
				return tt.resp, tt.err
			}))

			outcome := session.Run(context.Background(), api.AnalyzeRequest{})
			assert.Equal(t, tt.want, outcome.Kind)
			if tt.want != OutcomeSuccess {
				assert.Error(t, outcome.Err)
			}
		})
	}
}

func TestRun_DoesNotChangeState(t *testing.T) {
	session := NewSession(NewSteps(), analyzerFunc(func(context.Context, api.AnalyzeRequest) (*api.AnalyzeResponse, error) {
		return &api.AnalyzeResponse{}, nil
	}))

	_, err := session.Begin("a", "2000-01-01")
	require.NoError(t, err)
	session.Run(context.Background(), api.AnalyzeRequest{})

	assert.Equal(t, StateLoading, session.Steps().Active())
}

func TestSettle_ErrorReturnsToWelcome(t *testing.T) {
	session := NewSession(NewSteps(), nil)
	_, err := session.Begin("a", "2000-01-01")
	require.NoError(t, err)

	serviceErr := client.NewServiceError(http.StatusBadRequest, "invalid date format")
	report, err := session.Settle(Outcome{Kind: OutcomeServiceError, Err: serviceErr})

	assert.Nil(t, report)
	assert.Same(t, serviceErr, err)
	assert.Equal(t, StateWelcome, session.Steps().Active())
	assert.Equal(t, serviceErr, session.LastError())

	session.Restart()
	assert.NoError(t, session.LastError())
}

func TestSettle_ErrorWithoutCauseUsesGenericMessage(t *testing.T) {
	session := NewSession(NewSteps(), nil)

	_, err := session.Settle(Outcome{Kind: OutcomeTransportError})
	assert.EqualError(t, err, api.GenericErrorMessage)
}

func TestSettle_SuccessKeepsLatestReport(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	session := NewSession(NewSteps(), nil, WithClock(func() time.Time { return fixed }))

	first, err := session.Settle(Outcome{Kind: OutcomeSuccess, Response: &api.AnalyzeResponse{Name: "first"}})
	require.NoError(t, err)
	second, err := session.Settle(Outcome{Kind: OutcomeSuccess, Response: &api.AnalyzeResponse{Name: "second"}})
	require.NoError(t, err)

	assert.Equal(t, "first", first.Name)
	assert.Same(t, second, session.Report())
	assert.Equal(t, fixed, second.CreatedAt)
	assert.True(t, second.Fragment.Empty())
}

func TestRestart(t *testing.T) {
	session := NewSession(NewSteps(), nil)
	session.Steps().Activate(StateResult)

	session.Restart()
	assert.Equal(t, StateWelcome, session.Steps().Active())
}

func TestSubmit_EndToEnd(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)

		var req api.AnalyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "田中", req.Name)
		assert.Equal(t, "1990-01-01", req.BirthDate)

		_ = json.NewEncoder(w).Encode(api.AnalyzeResponse{
			Name:       req.Name,
			BirthDate:  req.BirthDate,
			Analysis:   "【総合運】\n- 良好\n---",
			Numerology: api.Numerology{LifePath: 3, Destiny: 7, Soul: 0, PersonalYear: 3},
			Kigaku:     api.Kigaku{HonmeiName: "二黒土星", PositionName: "離宮（南）"},
		})
	}))
	defer server.Close()

	c, err := client.New(server.URL)
	require.NoError(t, err)

	steps := NewSteps()
	var transitions []State
	steps.OnChange(func(_, to State) { transitions = append(transitions, to) })

	session := NewSession(steps, c)
	report, err := session.Submit(context.Background(), "田中", "1990-01-01")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
	assert.Equal(t, []State{StateLoading, StateResult}, transitions)
	assert.Equal(t, StateResult, steps.Active())

	require.Len(t, report.Fragment, 3)
	assert.Equal(t, markup.KindHeading, report.Fragment[0].Kind)
	assert.Equal(t, 1, report.Fragment[0].Level)
	assert.Equal(t, "総合運", report.Fragment[0].Text())

	assert.Equal(t, markup.KindList, report.Fragment[1].Kind)
	require.Len(t, report.Fragment[1].Children, 1)
	assert.Equal(t, "良好", report.Fragment[1].Children[0].Text())

	assert.Equal(t, markup.KindRule, report.Fragment[2].Kind)

	assert.Equal(t, "二黒土星", report.Kigaku.HonmeiName)
	assert.Equal(t, 3, report.Numerology.LifePath)
}

func TestSubmit_ServiceFailureEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model unavailable"}`))
	}))
	defer server.Close()

	c, err := client.New(server.URL)
	require.NoError(t, err)

	steps := NewSteps()
	var transitions []State
	steps.OnChange(func(_, to State) { transitions = append(transitions, to) })

	session := NewSession(steps, c)
	_, err = session.Submit(context.Background(), "田中", "1990-01-01")
	require.Error(t, err)

	assert.Equal(t, "model unavailable", client.UserMessage(err))
	assert.Equal(t, []State{StateLoading, StateWelcome}, transitions)
	assert.Nil(t, session.Report())
}
