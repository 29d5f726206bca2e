package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveUpstream(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveUpstream("codestral", 120*time.Millisecond, nil)
	m.ObserveUpstream("codestral", time.Second, errors.New("boom"))
	m.ObserveUpstream("codestral", time.Second, errors.New("boom"))

	if got := testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("codestral", "success")); got != 1 {
		t.Errorf("success count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("codestral", "error")); got != 2 {
		t.Errorf("error count = %v, want 2", got)
	}
}

func TestObserveRetry(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveRetry("azure_chat_completion", 1, 2*time.Second)
	m.ObserveRetry("azure_chat_completion", 2, 4*time.Second)

	if got := testutil.ToFloat64(m.Retries.WithLabelValues("azure_chat_completion")); got != 2 {
		t.Errorf("retries = %v, want 2", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.RecordHTTPRequest("POST", "/api/generate", 500, 30*time.Millisecond)

	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/api/generate", "500")); got != 1 {
		t.Errorf("http requests = %v, want 1", got)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveUpstream("x", time.Second, nil)
	m.ObserveRetry("x", 1, time.Second)
	m.RecordHTTPRequest("GET", "/", 200, time.Second)
}
