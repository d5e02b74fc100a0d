package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/LifeStrat/internal/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(server.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("localhost")
	assert.Error(t, err)

	_, err = New("://bad")
	assert.Error(t, err)
}

func TestAnalyze_Success(t *testing.T) {
	var got api.AnalyzeRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, api.PathAnalyze, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.AnalyzeResponse{
			Name:       got.Name,
			BirthDate:  got.BirthDate,
			Analysis:   "【総合運】\n- 良好\n---",
			Numerology: api.Numerology{LifePath: 3},
			Kigaku:     api.Kigaku{HonmeiName: "二黒土星", PositionName: "離宮（南）"},
		})
	})

	resp, err := c.Analyze(context.Background(), api.AnalyzeRequest{Name: "田中", BirthDate: "1990-01-01"})
	require.NoError(t, err)

	assert.Equal(t, api.AnalyzeRequest{Name: "田中", BirthDate: "1990-01-01"}, got)
	assert.Equal(t, "【総合運】\n- 良好\n---", resp.Analysis)
	assert.Equal(t, 3, resp.Numerology.LifePath)
	assert.Equal(t, "二黒土星", resp.Kigaku.HonmeiName)
}

func TestAnalyze_MissingAnalysisDecodesEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"numerology":{},"kigaku":{}}`))
	})

	resp, err := c.Analyze(context.Background(), api.AnalyzeRequest{Name: "a", BirthDate: "2000-01-01"})
	require.NoError(t, err)
	assert.Empty(t, resp.Analysis)
}

func TestAnalyze_ServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "server message used verbatim",
			status:  http.StatusBadRequest,
			body:    `{"error":"invalid date format: 1990-13-01"}`,
			message: "invalid date format: 1990-13-01",
		},
		{
			name:    "missing error field falls back",
			status:  http.StatusInternalServerError,
			body:    `{"detail":"boom"}`,
			message: api.GenericErrorMessage,
		},
		{
			name:    "non json body falls back",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			message: api.GenericErrorMessage,
		},
		{
			name:    "empty error field falls back",
			status:  http.StatusInternalServerError,
			body:    `{"error":""}`,
			message: api.GenericErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Analyze(context.Background(), api.AnalyzeRequest{Name: "a", BirthDate: "2000-01-01"})
			require.Error(t, err)

			assert.True(t, IsServiceError(err))
			assert.False(t, IsTransportError(err))
			assert.Equal(t, tt.message, UserMessage(err))

			var se *ServiceError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
		})
	}
}

func TestAnalyze_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := New(url)
	require.NoError(t, err)

	_, err = c.Analyze(context.Background(), api.AnalyzeRequest{Name: "a", BirthDate: "2000-01-01"})
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.False(t, IsServiceError(err))
	assert.ErrorIs(t, err, &ServiceError{Type: ErrTypeNetwork})
}

func TestAnalyze_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := c.Analyze(context.Background(), api.AnalyzeRequest{Name: "a", BirthDate: "2000-01-01"})
	require.Error(t, err)
	assert.ErrorIs(t, err, &ServiceError{Type: ErrTypeTimeout})
	assert.True(t, IsTransportError(err))
}

func TestAnalyze_DecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"analysis":`))
	})

	_, err := c.Analyze(context.Background(), api.AnalyzeRequest{Name: "a", BirthDate: "2000-01-01"})
	require.Error(t, err)
	assert.ErrorIs(t, err, &ServiceError{Type: ErrTypeDecode})
	assert.True(t, IsTransportError(err))
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.PathHealth, r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})
	assert.NoError(t, c.Health(context.Background()))

	unhealthy := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"degraded"}`))
	})
	assert.True(t, IsServiceError(unhealthy.Health(context.Background())))
}

func TestUserMessage_PlainError(t *testing.T) {
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}
