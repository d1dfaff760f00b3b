package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lthutara/nextgen-technologies/app/scraping"
)

// IngestionRunner is the coordinator entry point the scheduler drives.
type IngestionRunner interface {
	RunAll(ctx context.Context) []scraping.RunResult
}

// Scheduler triggers a full ingestion sweep on a fixed interval. It is an
// explicitly owned object: main constructs it, starts it after wiring, and
// stops it during shutdown.
type Scheduler struct {
	runner   IngestionRunner
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewScheduler(runner IngestionRunner, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		runner:   runner,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the background loop. The first sweep runs immediately so a
// fresh deployment has content before the first interval elapses.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.sweep()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()

	slog.Info("Ingestion scheduler started", "interval", s.interval.String())
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Ingestion scheduler stopped")
}

func (s *Scheduler) sweep() {
	results := s.runner.RunAll(s.ctx)

	totalNew := 0
	for _, result := range results {
		totalNew += result.TotalNew
	}
	slog.Info("Scheduled ingestion completed", "categories", len(results), "new_articles", totalNew)
}
