package tasks

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lthutara/nextgen-technologies/app/scraping"
)

type fakeRunner struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeRunner) RunAll(ctx context.Context) []scraping.RunResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return []scraping.RunResult{{Category: "AI", TotalFound: 1, TotalNew: 1}}
}

func (f *fakeRunner) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestSchedulerRunsImmediately(t *testing.T) {
	runner := &fakeRunner{}
	scheduler := NewScheduler(runner, time.Hour)

	scheduler.Start()
	defer scheduler.Stop()

	deadline := time.After(2 * time.Second)
	for runner.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("Expected an immediate sweep after Start")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSchedulerTicks(t *testing.T) {
	runner := &fakeRunner{}
	scheduler := NewScheduler(runner, 20*time.Millisecond)

	scheduler.Start()
	defer scheduler.Stop()

	deadline := time.After(2 * time.Second)
	for runner.count() < 3 {
		select {
		case <-deadline:
			t.Fatalf("Expected at least 3 sweeps, got %d", runner.count())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSchedulerStopHaltsSweeps(t *testing.T) {
	runner := &fakeRunner{}
	scheduler := NewScheduler(runner, 10*time.Millisecond)

	scheduler.Start()
	time.Sleep(50 * time.Millisecond)
	scheduler.Stop()

	after := runner.count()
	time.Sleep(50 * time.Millisecond)

	if runner.count() != after {
		t.Errorf("Expected no sweeps after Stop, got %d more", runner.count()-after)
	}
}
