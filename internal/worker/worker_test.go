package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPool_ProcessesAllJobs(t *testing.T) {
	processor := func(ctx context.Context, job Job) error {
		return nil
	}

	pool := NewPool(2, 10, processor)
	pool.Start(context.Background())

	for i := 0; i < 25; i++ {
		pool.Submit(i)
	}
	pool.Stop()

	processed, failed := pool.Stats()
	if processed != 25 || failed != 0 {
		t.Errorf("expected 25 processed / 0 failed, got %d / %d", processed, failed)
	}
}

func TestPool_CountsFailures(t *testing.T) {
	processor := func(ctx context.Context, job Job) error {
		if job.(int)%2 == 0 {
			return errors.New("even jobs fail")
		}
		return nil
	}

	pool := NewPool(3, 10, processor)
	pool.Start(context.Background())

	for i := 0; i < 10; i++ {
		pool.Submit(i)
	}
	pool.Stop()

	processed, failed := pool.Stats()
	if processed != 5 || failed != 5 {
		t.Errorf("expected 5 processed / 5 failed, got %d / %d", processed, failed)
	}
}

func TestPool_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	processor := func(ctx context.Context, job Job) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-block:
			return nil
		}
	}

	pool := NewPool(1, 1, processor)
	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	pool.Submit(1)
	time.Sleep(20 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		pool.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("workers did not exit after cancellation")
	}
	close(block)
}
