package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "GET /api/me", "200", 10*time.Millisecond)
	m.ObserveRequest("GET", "GET /api/me", "200", 20*time.Millisecond)
	m.ObserveRequest("GET", "GET /api/me", "401", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "GET /api/me", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "GET /api/me", "401")))
}

func TestRecorders(t *testing.T) {
	m := New()
	m.RecordCreated("deck")
	m.RecordAuth("login", true)
	m.RecordAuth("join", false)
	m.RecordAuth("join", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntitiesCreated.WithLabelValues("deck")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("login", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("join", "failure")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordCreated("card")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `flashcard_tracker_entities_created_total{entity="card"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.RecordCreated("user")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.EntitiesCreated.WithLabelValues("user")))
}
