package metric

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestObserveCommand(t *testing.T) {
	r := NewRegistry()
	r.ObserveCommand("SET", OutcomeOK, 3*time.Millisecond, 31, 5)
	r.ObserveCommand("SET", OutcomeOK, 2*time.Millisecond, 31, 5)
	r.ObserveCommand("GET", OutcomeServerErr, 1*time.Millisecond, 22, 40)

	families, err := r.Gather().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	byName := map[string]bool{}
	for _, f := range families {
		byName[f.GetName()] = true
	}
	for _, want := range []string{
		"rediswire_commands_total",
		"rediswire_command_duration_seconds",
		"rediswire_bytes_written_total",
		"rediswire_bytes_read_total",
	} {
		if !byName[want] {
			t.Errorf("metric family %s missing", want)
		}
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.ConnectsTotal.WithLabelValues("ok").Inc()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "rediswire_connects_total") {
		t.Errorf("exposition missing connects counter")
	}
}

// Separate registries must not collide, since bench runs create their own.
func TestNewRegistry_Isolated(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	a.BytesRead.Add(10)

	families, err := b.Gather().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() == "rediswire_bytes_read_total" {
			if f.GetMetric()[0].GetCounter().GetValue() != 0 {
				t.Error("registries share state")
			}
		}
	}
}
