package monitoring

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureEvent(t *testing.T, ev APIEvent) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	LogAPIEvent(ev)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestLogAPIEvent_Levels(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{201, "INFO"},
		{202, "INFO"},
		{400, "INFO"},
		{500, "ERROR"},
		{0, "WARN"},
	}
	for _, tt := range tests {
		line := captureEvent(t, APIEvent{Route: "/api/order", Status: tt.status, Message: "m"})
		assert.Equal(t, tt.want, line["level"], "status %d", tt.status)
	}
}

func TestLogAPIEvent_Fields(t *testing.T) {
	line := captureEvent(t, APIEvent{
		Route:   "/api/subscribe",
		Status:  500,
		Message: "Unable to save signup",
		Details: "connection refused",
		Meta:    map[string]any{"email": "a@example.com"},
	})
	assert.Equal(t, "/api/subscribe", line["route"])
	assert.Equal(t, float64(500), line["status"])
	assert.Equal(t, "Unable to save signup", line["msg"])
	assert.Equal(t, "connection refused", line["details"])
	assert.Equal(t, map[string]any{"email": "a@example.com"}, line["meta"])
	assert.Contains(t, line, "time")

	line = captureEvent(t, APIEvent{Route: "/api/order", Status: 201, Message: "Order saved"})
	assert.NotContains(t, line, "details")
	assert.NotContains(t, line, "meta")
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.OrdersAccepted.WithLabelValues(ModeCommitted).Inc()
	m.OrdersAccepted.WithLabelValues(ModeDryRun).Inc()
	m.OrdersAccepted.WithLabelValues(ModeDryRun).Inc()
	m.OrdersRejected.WithLabelValues("empty_cart").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OrdersAccepted.WithLabelValues(ModeDryRun)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersRejected.WithLabelValues("empty_cart")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `rivaleats_orders_accepted_total{mode="dry_run"} 2`)
}
