package httpapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/rookmere/bird-trend-etl/internal/adapter/httpapi"
	"github.com/rookmere/bird-trend-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockAnalyzer struct {
	analysis *domain.Analysis
	err      error
	gotQuery domain.RegionQuery
	gotStart int
	gotEnd   int
}

func (m *mockAnalyzer) Analyze(_ context.Context, q domain.RegionQuery, startYear, endYear int) (*domain.Analysis, error) {
	m.gotQuery = q
	m.gotStart = startYear
	m.gotEnd = endYear
	if m.err != nil {
		return nil, m.err
	}
	return m.analysis, nil
}

func newTestServer(a *mockAnalyzer, readyErr error) *httpapi.Server {
	return httpapi.NewServer(":0", a, &mockReadiness{err: readyErr}, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockAnalyzer{}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(&mockAnalyzer{}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&mockAnalyzer{}, fmt.Errorf("no analysis yet"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no analysis yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockAnalyzer{}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestTrendsEndpoint(t *testing.T) {
	analyzer := &mockAnalyzer{analysis: &domain.Analysis{
		Region:      "US-NY-109",
		StartYear:   2005,
		EndYear:     2006,
		RecordCount: 2,
		Aggregates: []domain.SeasonYearAggregate{
			{Year: 2005, Spring: 1, Winter: 7, All: 8},
		},
		Trends: domain.BuildTrendSeries([]domain.SeasonYearAggregate{
			{Year: 2005, Spring: 1, Winter: 7, All: 8},
		}),
		GeneratedAt: time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC),
	}}
	srv := newTestServer(analyzer, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/trends?region=US-NY-109&start=2005&end=2006", nil)

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.RegionQuery{Region: "US-NY-109", AllYears: true}, analyzer.gotQuery)
	assert.Equal(t, 2005, analyzer.gotStart)
	assert.Equal(t, 2006, analyzer.gotEnd)

	var got domain.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "US-NY-109", got.Region)
	require.Len(t, got.Trends, 5)
	assert.Equal(t, domain.SeasonSpring, got.Trends[0].Season)
}

func TestTrendsEndpoint_MissingParams(t *testing.T) {
	srv := newTestServer(&mockAnalyzer{}, nil)

	for _, target := range []string{
		"/api/v1/trends",
		"/api/v1/trends?region=US-NY-109",
		"/api/v1/trends?region=US-NY-109&start=2005",
		"/api/v1/trends?region=US-NY-109&start=then&end=now",
	} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s", target)
	}
}

func TestTrendsEndpoint_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid argument", fmt.Errorf("year: %w", domain.ErrInvalidArgument), http.StatusBadRequest},
		{"fetch failure", fmt.Errorf("site: %w", domain.ErrFetch), http.StatusBadGateway},
		{"parse failure", fmt.Errorf("layout: %w", domain.ErrParse), http.StatusBadGateway},
		{"count failure", fmt.Errorf("row: %w", domain.ErrInvalidCount), http.StatusBadGateway},
		{"unknown failure", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&mockAnalyzer{err: tt.err}, nil)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/trends?region=US-NY-109&start=2005&end=2006", nil)

			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
