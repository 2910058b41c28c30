// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

// countingWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type countingWorker struct {
	runCount atomic.Int32
	err      error
}

func (m *countingWorker) Run(ctx context.Context) error {
	m.runCount.Add(1)
	return m.err
}

// blockingWorker returns only after ctx is cancelled.
type blockingWorker struct {
	stopped atomic.Bool
}

func (b *blockingWorker) Run(ctx context.Context) error {
	<-ctx.Done()
	b.stopped.Store(true)
	return nil
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &countingWorker{}
	w2 := &countingWorker{}
	w3 := &countingWorker{}

	ws := NewWorkers(w1, w2, w3)
	if err := ws.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, w := range []*countingWorker{w1, w2, w3} {
		if got := w.runCount.Load(); got != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, got)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	// Should not block or fail on an empty workers list
	if err := NewWorkers().Run(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	if err := ws.Run(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWorkers_Run_JoinsErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	err := NewWorkers(&countingWorker{err: errA}, &countingWorker{}, &countingWorker{err: errB}).Run(context.Background())

	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected both worker errors, got %v", err)
	}
}

func TestWorkers_Run_WaitsForCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b1 := &blockingWorker{}
	b2 := &blockingWorker{}

	done := make(chan error, 1)
	go func() { done <- NewWorkers(b1, b2).Run(ctx) }()

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !b1.stopped.Load() || !b2.stopped.Load() {
		t.Error("expected Run to return only after every worker stopped")
	}
}
