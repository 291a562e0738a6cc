package worker

import (
	"context"
	"log/slog"
	"sync"
)

// RatingFacade exposes the subset of application functionality required by the worker.
type RatingFacade interface {
	RecalculateRating(ctx context.Context, productID int64) error
}

// RatingProcessor recomputes product ratings in the background after review
// submissions. Jobs arrive through Enqueue and are fanned out to a fixed pool.
type RatingProcessor struct {
	facade  RatingFacade
	workers int
	logger  *slog.Logger

	jobs   chan int64
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRatingProcessor constructs rating processor worker pool.
func NewRatingProcessor(facade RatingFacade, workers, queueSize int, logger *slog.Logger) *RatingProcessor {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &RatingProcessor{
		facade:  facade,
		workers: workers,
		logger:  logger,
		jobs:    make(chan int64, queueSize),
	}
}

// Enqueue schedules a rating recomputation without blocking the caller. A full
// queue drops the job; the next review for the product will schedule it again.
func (p *RatingProcessor) Enqueue(productID int64) bool {
	select {
	case p.jobs <- productID:
		return true
	default:
		p.logger.Warn("rating queue full, job dropped", slog.Int64("product", productID))
		return false
	}
}

// Start launches background processing.
func (p *RatingProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}
}

// Stop waits for all workers to finish.
func (p *RatingProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *RatingProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case productID, ok := <-p.jobs:
			if !ok {
				return
			}
			if err := p.facade.RecalculateRating(ctx, productID); err != nil {
				p.logger.Error("rating recomputation failed",
					slog.Int64("product", productID), slog.String("error", err.Error()))
			}
		}
	}
}
