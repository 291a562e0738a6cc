package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	testhelpers "github.com/polkiloo/megano/internal/test"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewRatingProcessorDefaults(t *testing.T) {
	proc := NewRatingProcessor(&testhelpers.WorkerFacadeStub{}, 0, 0, newTestLogger())
	if proc.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", proc.workers)
	}
	if cap(proc.jobs) != 1 {
		t.Fatalf("expected queue default to 1, got %d", cap(proc.jobs))
	}
}

func TestRatingProcessorProcessesJobs(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{}
	proc := NewRatingProcessor(facade, 2, 8, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	if !proc.Enqueue(5) {
		t.Fatal("expected job to be accepted")
	}

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		processed := len(facade.Calls) > 0
		facade.Unlock()
		if processed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for rating recomputation")
		case <-time.After(10 * time.Millisecond):
		}
	}

	proc.Stop()
	facade.Lock()
	defer facade.Unlock()
	if facade.Calls[0] != 5 {
		t.Fatalf("expected product 5, got %d", facade.Calls[0])
	}
}

func TestRatingProcessorDropsJobsWhenQueueFull(t *testing.T) {
	// Not started: nothing drains the queue.
	proc := NewRatingProcessor(&testhelpers.WorkerFacadeStub{}, 1, 1, newTestLogger())

	if !proc.Enqueue(1) {
		t.Fatal("expected first job to be accepted")
	}
	if proc.Enqueue(2) {
		t.Fatal("expected second job to be dropped")
	}
}

func TestRatingProcessorStopWaitsForWorkers(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	facade := &testhelpers.WorkerFacadeStub{
		RecalculateFn: func(ctx context.Context, productID int64) error {
			close(started)
			<-release
			return nil
		},
	}
	proc := NewRatingProcessor(facade, 1, 4, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)
	proc.Enqueue(1)
	<-started

	done := make(chan struct{})
	go func() {
		proc.Stop()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("stop returned while a job was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not return after job completion")
	}
}
