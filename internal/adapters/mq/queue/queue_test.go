package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/okian/meshrank/internal/domain/model"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	// Test empty queue
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	// Test enqueue
	job1 := model.ScoreJob{JobID: "job1", UserID: "user1", CandidateID: "cand1"}
	if !q.Enqueue(ctx, job1) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	// Test dequeue
	jobChan := q.Dequeue(ctx)
	job := <-jobChan
	if job.JobID != "job1" {
		t.Errorf("expected job1, got %v", job.JobID)
	}
	if job.UserID != "user1" || job.CandidateID != "cand1" {
		t.Errorf("unexpected pair %s/%s", job.UserID, job.CandidateID)
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	job1 := model.ScoreJob{JobID: "job1", UserID: "user1", CandidateID: "cand1"}
	job2 := model.ScoreJob{JobID: "job2", UserID: "user1", CandidateID: "cand2"}
	job3 := model.ScoreJob{JobID: "job3", UserID: "user2", CandidateID: "cand1"}

	if !q.Enqueue(ctx, job1) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, job2) {
		t.Error("expected enqueue to succeed")
	}

	// Try to enqueue when full
	if q.Enqueue(ctx, job3) {
		t.Error("expected enqueue to fail when at capacity")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()

	if q.IsClosed() {
		t.Error("expected new queue to be open")
	}

	job := model.ScoreJob{JobID: "job1", UserID: "user1", CandidateID: "cand1"}
	if !q.Enqueue(ctx, job) {
		t.Error("expected enqueue to succeed")
	}

	if err := q.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}

	// Enqueue after close must be rejected
	if q.Enqueue(ctx, job) {
		t.Error("expected enqueue to fail after close")
	}

	// Closing twice is a no-op
	if err := q.Close(); err != nil {
		t.Errorf("unexpected error on double close: %v", err)
	}

	// The buffered job drains, then the dequeue channel closes
	jobChan := q.Dequeue(ctx)
	drained, ok := <-jobChan
	if !ok || drained.JobID != "job1" {
		t.Errorf("expected to drain job1, got %v (ok=%v)", drained.JobID, ok)
	}
	select {
	case _, ok := <-jobChan:
		if ok {
			t.Error("expected dequeue channel to be closed")
		}
	case <-time.After(time.Second):
		t.Error("timed out waiting for dequeue channel to close")
	}
}

func TestInMemoryQueue_FIFOOrder(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(16))
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		job := model.ScoreJob{
			JobID:       fmt.Sprintf("job-%d", i),
			UserID:      "user",
			CandidateID: fmt.Sprintf("cand-%d", i),
		}
		if !q.Enqueue(ctx, job) {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	if err := q.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	i := 0
	for job := range q.Dequeue(ctx) {
		if want := fmt.Sprintf("job-%d", i); job.JobID != want {
			t.Errorf("expected %s at position %d, got %s", want, i, job.JobID)
		}
		i++
	}
	if i != 8 {
		t.Errorf("expected 8 jobs, got %d", i)
	}
}

func TestInMemoryQueue_DequeueRespectsContext(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx, cancel := context.WithCancel(context.Background())

	jobChan := q.Dequeue(ctx)
	cancel()

	// After cancellation the forwarding goroutine must stop once it tries
	// to deliver; enqueue a job so it has something to forward.
	q.Enqueue(context.Background(), model.ScoreJob{JobID: "late", UserID: "u", CandidateID: "c"})

	select {
	case <-jobChan:
		// A job already in flight may still be delivered; either outcome
		// is acceptable as long as we do not hang.
	case <-time.After(100 * time.Millisecond):
	}
}
