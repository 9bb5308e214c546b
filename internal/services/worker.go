package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hiresight/resume-relevance/internal/repositories"
)

// Worker consumes queued batches. Batches arrive either directly from the
// evaluate handler or from the poller, which picks up batches left queued
// across restarts.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueBatch(batchID uuid.UUID)
}

type worker struct {
	evalRepo    repositories.EvaluationRepository
	evaluator   EvaluatorService
	batchQueue  chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	logger      *zap.Logger
}

func NewWorker(
	evalRepo repositories.EvaluationRepository,
	evaluator EvaluatorService,
	concurrency int,
	logger *zap.Logger,
) Worker {
	return &worker{
		evalRepo:    evalRepo,
		evaluator:   evaluator,
		batchQueue:  make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		logger:      logger,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Info("starting worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processBatches(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollQueuedBatches(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.logger.Info("stopping worker")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("worker stopped")
}

// EnqueueBatch implements Worker.
func (w *worker) EnqueueBatch(batchID uuid.UUID) {
	select {
	case w.batchQueue <- batchID:
		w.logger.Debug("batch enqueued", zap.String("batch_id", batchID.String()))
	case <-w.stopChan:
		w.logger.Warn("worker stopped, cannot enqueue batch", zap.String("batch_id", batchID.String()))
	}
}

func (w *worker) processBatches(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.logger.Debug("worker goroutine stopped", zap.Int("worker", workerID))
			return
		case batchID := <-w.batchQueue:
			w.logger.Info("processing batch",
				zap.Int("worker", workerID),
				zap.String("batch_id", batchID.String()),
			)
			if err := w.evaluator.ProcessBatch(ctx, batchID); err != nil {
				w.logger.Error("batch processing failed",
					zap.Int("worker", workerID),
					zap.String("batch_id", batchID.String()),
					zap.Error(err),
				)
			}
		}
	}
}

func (w *worker) pollQueuedBatches(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			queued, err := w.evalRepo.FindQueuedBatches(10)
			if err != nil {
				w.logger.Warn("failed to fetch queued batches", zap.Error(err))
				continue
			}

			for _, batch := range queued {
				w.EnqueueBatch(batch.ID)
			}
		}
	}
}
