// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package supervisor

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/maisonmai/analytics/internal/logging"
)

// mockService runs until canceled, optionally failing its first few starts.
type mockService struct {
	name     string
	starts   atomic.Int32
	failures int32
}

func (m *mockService) Serve(ctx context.Context) error {
	n := m.starts.Add(1)
	if n <= m.failures {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) String() string { return m.name }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.Root() == nil {
		t.Fatal("root supervisor is nil")
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want defaults %+v", tree.config, DefaultTreeConfig())
	}
}

func TestNewSupervisorTree_KeepsExplicitValues(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{FailureThreshold: 2, ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	if tree.config.FailureThreshold != 2 || tree.config.ShutdownTimeout != time.Second {
		t.Errorf("explicit values overwritten: %+v", tree.config)
	}
	if tree.config.FailureDecay != 30 {
		t.Errorf("FailureDecay = %v, want default 30", tree.config.FailureDecay)
	}
}

func TestSupervisorTree_StartsBothLayers(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})

	data := &mockService{name: "cache-janitor"}
	api := &mockService{name: "http-server"}
	tree.AddDataService(data)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	waitFor(t, func() bool { return data.starts.Load() >= 1 && api.starts.Load() >= 1 })
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not shut down in time")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport() error = %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services: %v", report)
	}
}

func TestSupervisorTree_RestartsFailedService(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	flaky := &mockService{name: "cache-warmer", failures: 2}
	steady := &mockService{name: "http-server"}
	tree.AddDataService(flaky)
	tree.AddAPIService(steady)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tree.ServeBackground(ctx)

	waitFor(t, func() bool { return flaky.starts.Load() >= 3 })

	if got := steady.starts.Load(); got != 1 {
		t.Errorf("api service started %d times, want 1: data layer failures must not restart it", got)
	}
}

func TestSupervisorTree_LogsThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	tree, _ := NewSupervisorTree(slog.New(logging.NewSlogHandler()), TreeConfig{
		FailureBackoff:  10 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})
	svc := &mockService{name: "failing-once", failures: 1}
	tree.AddDataService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)
	waitFor(t, func() bool { return svc.starts.Load() >= 2 })
	cancel()
	<-errCh

	if !strings.Contains(buf.String(), "failing-once") {
		t.Errorf("supervisor events were not logged through zerolog: %q", buf.String())
	}
}
