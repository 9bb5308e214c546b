package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stubBatchProcessor records which batches it was asked to process.
type stubBatchProcessor struct {
	processed chan uuid.UUID
}

func (s *stubBatchProcessor) ProcessBatch(_ context.Context, batchID uuid.UUID) error {
	s.processed <- batchID
	return nil
}

func TestWorkerProcessesEnqueuedBatch(t *testing.T) {
	processor := &stubBatchProcessor{processed: make(chan uuid.UUID, 1)}
	w := NewWorker(nil, processor, 1, zap.NewNop())

	w.Start(context.Background())
	defer w.Stop()

	batchID := uuid.New()
	w.EnqueueBatch(batchID)

	select {
	case got := <-processor.processed:
		if got != batchID {
			t.Errorf("processed %s, want %s", got, batchID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("batch was never processed")
	}
}

func TestWorkerStopRejectsEnqueue(t *testing.T) {
	processor := &stubBatchProcessor{processed: make(chan uuid.UUID, 1)}
	w := NewWorker(nil, processor, 1, zap.NewNop())

	w.Start(context.Background())
	w.Stop()

	// Must not block after shutdown.
	done := make(chan struct{})
	go func() {
		w.EnqueueBatch(uuid.New())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("EnqueueBatch blocked after Stop")
	}
}
