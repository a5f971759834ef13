package service

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"example/screenshot-batch/internal/logging"
	"example/screenshot-batch/internal/model"
	"example/screenshot-batch/internal/worklist"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Stats summarizes a completed run.
type Stats struct {
	Batches   int
	Processed int
	Failed    int
}

// BatchRunner repeats full passes over the work list until the deadline.
// Each batch reloads the list, fans it out to a fixed-size worker pool and
// fully drains it before the next deadline check; the deadline is only ever
// consulted between batches, so a run can overshoot by one batch's duration.
type BatchRunner struct {
	processor *ItemProcessor
	listPath  string
	outputDir string
	workers   int
	duration  time.Duration
	logger    *logging.Logger
}

func NewBatchRunner(processor *ItemProcessor, listPath, outputDir string, workers int, duration time.Duration, logger *logging.Logger) *BatchRunner {
	return &BatchRunner{
		processor: processor,
		listPath:  listPath,
		outputDir: outputDir,
		workers:   workers,
		duration:  duration,
		logger:    logger,
	}
}

// Run executes batches until the deadline elapses. A non-positive duration
// fails the first deadline check and runs zero batches. Per-item failures are
// absorbed into the stats; Run itself only fails when a shared sink (work
// list, output directory) becomes unusable.
func (r *BatchRunner) Run(ctx context.Context) (Stats, error) {
	deadline := time.Now().Add(r.duration)
	r.logger.Logf("Starting run %s: %d workers, %s duration", uuid.NewString(), r.workers, r.duration)

	var stats Stats
	for time.Now().Before(deadline) {
		items, err := worklist.Read(r.listPath)
		if err != nil {
			return stats, fmt.Errorf("reading work list: %w", err)
		}

		r.logger.Logf("Starting batch %d with %d images", stats.Batches+1, len(items))
		outcomes := r.runBatch(ctx, items)

		failed := 0
		for _, o := range outcomes {
			if !o.Success() {
				failed++
			}
		}
		stats.Batches++
		stats.Processed += len(outcomes)
		stats.Failed += failed
		r.logger.Logf("Batch %d complete: %d images, %d failed", stats.Batches, len(outcomes), failed)

		if err := r.checkSink(); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// runBatch dispatches every item to the pool and blocks until all outcomes
// are in. Outcomes are written by dispatch index, so a batch of K items
// always yields exactly K outcomes attributed to their items no matter how
// completion interleaves.
func (r *BatchRunner) runBatch(ctx context.Context, items []model.WorkItem) []model.Outcome {
	outcomes := make([]model.Outcome, len(items))

	g := new(errgroup.Group)
	g.SetLimit(r.workers)

	var processed atomic.Int32
	done := make(chan struct{})
	go r.reportProgress(len(items), &processed, done)

	for i, item := range items {
		g.Go(func() error {
			outcomes[i] = r.processor.Process(ctx, item)
			processed.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	close(done)
	return outcomes
}

func (r *BatchRunner) reportProgress(total int, processed *atomic.Int32, done <-chan struct{}) {
	ticker := time.NewTicker(4 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			p := processed.Load()
			if int(p) < total {
				r.logger.Logf("Progress: %d/%d (%.1f%%)", p, total, float64(p)/float64(total)*100)
			}
		}
	}
}

// checkSink verifies the output directory still exists between batches. An
// isolated write failure stays a per-item outcome; a vanished directory would
// fail every remaining item, so it stops the run instead.
func (r *BatchRunner) checkSink() error {
	info, err := os.Stat(r.outputDir)
	if err != nil {
		return fmt.Errorf("output directory unusable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory unusable: %s is not a directory", r.outputDir)
	}
	return nil
}
