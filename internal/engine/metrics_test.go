package engine

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

func TestMetricsHandlerServesObservedRuns(t *testing.T) {
	m := NewMetrics()
	m.ObserveRun(&models.ScheduleResult{
		Strategy:           "greedy",
		Fitness:            95,
		UnassignedSessions: 2,
		Elapsed:            120 * time.Millisecond,
	})

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `schedule_runs_total{outcome="partial",strategy="greedy"} 1`)
	assert.Contains(t, string(body), "schedule_unassigned_sessions_total 2")
}

func TestMetricsNilIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRun(&models.ScheduleResult{Strategy: "greedy"})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
