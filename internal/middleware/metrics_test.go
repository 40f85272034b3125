package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeRequestRecorder struct {
	statuses  []int
	latencies []time.Duration
}

func (f *fakeRequestRecorder) RecordHTTPStatus(statusCode int) {
	f.statuses = append(f.statuses, statusCode)
}

func (f *fakeRequestRecorder) RecordRequestLatency(duration time.Duration) {
	f.latencies = append(f.latencies, duration)
}

func TestMetricsMiddleware_RecordsStatusAndLatency(t *testing.T) {
	rec := &fakeRequestRecorder{}
	mw := NewMetricsMiddleware(rec)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/dossier/unknown", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(rec.statuses) != 1 || rec.statuses[0] != http.StatusNotFound {
		t.Errorf("statuses = %v, want [404]", rec.statuses)
	}
	if len(rec.latencies) != 1 {
		t.Errorf("latencies recorded = %d, want 1", len(rec.latencies))
	}
}

func TestMetricsMiddleware_NilRecorderPassesThrough(t *testing.T) {
	mw := NewMetricsMiddleware(nil)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
}
