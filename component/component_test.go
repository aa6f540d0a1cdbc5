package component

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	log      *[]string
}

func (m *mockComponent) Name() string { return m.name }

func (m *mockComponent) Start(context.Context) error {
	*m.log = append(*m.log, "start:"+m.name)
	return m.startErr
}

func (m *mockComponent) Stop(context.Context) error {
	*m.log = append(*m.log, "stop:"+m.name)
	return m.stopErr
}

func (m *mockComponent) Health(context.Context) Health {
	return Health{Name: m.name, Status: StatusHealthy}
}

func TestRegistryOrder(t *testing.T) {
	var calls []string
	r := NewRegistry(nil)
	for _, n := range []string{"storage", "database", "telemetry"} {
		if err := r.Register(&mockComponent{name: n, log: &calls}); err != nil {
			t.Fatal(err)
		}
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := "start:storage,start:database,start:telemetry,stop:telemetry,stop:database,stop:storage"
	if got := strings.Join(calls, ","); got != want {
		t.Errorf("calls = %s, want %s", got, want)
	}
}

func TestRegistryDuplicate(t *testing.T) {
	var calls []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "storage", log: &calls})
	if err := r.Register(&mockComponent{name: "storage", log: &calls}); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestRegistryStartFailureStopsStarted(t *testing.T) {
	var calls []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "storage", log: &calls})
	_ = r.Register(&mockComponent{name: "database", startErr: errors.New("locked"), log: &calls})
	_ = r.Register(&mockComponent{name: "telemetry", log: &calls})

	err := r.StartAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to start database") {
		t.Fatalf("err = %v", err)
	}
	want := "start:storage,start:database,stop:storage"
	if got := strings.Join(calls, ","); got != want {
		t.Errorf("calls = %s, want %s", got, want)
	}

	calls = nil
	if err := r.StopAll(context.Background()); err != nil || len(calls) != 0 {
		t.Errorf("second stop should be a no-op: %v %v", err, calls)
	}
}

func TestRegistryStopErrors(t *testing.T) {
	var calls []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "a", stopErr: errors.New("boom"), log: &calls})
	_ = r.Register(&mockComponent{name: "b", log: &calls})
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to stop a") {
		t.Errorf("err = %v", err)
	}
	if calls[len(calls)-1] != "stop:a" {
		t.Errorf("every component must be stopped: %v", calls)
	}
}

func TestRegistryLookupAndHealth(t *testing.T) {
	var calls []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "storage", log: &calls})

	if r.Get("storage") == nil || r.Get("missing") != nil {
		t.Error("Get returned unexpected result")
	}
	h := r.HealthAll(context.Background())
	if len(h) != 1 || h[0].Status != StatusHealthy {
		t.Errorf("HealthAll = %v", h)
	}
}
