package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest("GET", "/api/v1/levels", 200, 20*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/v1/levels", 200, 40*time.Millisecond)
	m.ObserveDBQuery("levels_list", 10*time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordGMDConversion("ok")
	m.RecordGMDConversion("not_found")
	m.RecordSongResolution("cdn", true)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.RequestsTotal)
	assert.InDelta(t, 30.0, snap.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(1), snap.DBQueryCount)
	assert.InDelta(t, 0.5, snap.CacheHitRatio, 0.0001)
	assert.Equal(t, uint64(1), snap.GMDExports)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `gmd_conversions_total{outcome="ok"} 1`))
	assert.True(t, strings.Contains(body, `song_resolutions_total{outcome="ok",source="cdn"} 1`))
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveDBQuery("x", time.Second)
	m.RecordGMDConversion("ok")
	m.RecordSongResolution("library", false)
	assert.Zero(t, m.Snapshot().RequestsTotal)
}
