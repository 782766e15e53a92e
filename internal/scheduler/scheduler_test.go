package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

type countingTask struct {
	runs atomic.Int32
	err  error
}

func (t *countingTask) Name() string { return "counting" }

func (t *countingTask) Run(context.Context) error {
	t.runs.Add(1)
	return t.err
}

// Первый запуск сразу, дальше по тикеру; ошибки не останавливают цикл
func TestScheduler_RunsUntilCancelled(t *testing.T) {
	task := &countingTask{err: errors.New("fail")}
	s := NewScheduler(task, 10*time.Millisecond, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for task.runs.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 runs, got %d", task.runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
