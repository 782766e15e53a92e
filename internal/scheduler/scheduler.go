package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Task — фоновая задача: перезагрузка настроек, прогрев кэшей
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

type Scheduler struct {
	task     Task
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler — конструктор планировщика периодической задачи
func NewScheduler(task Task, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		task:     task,
		interval: interval,
		logger:   logger.With(slog.String("task", task.Name())),
	}
}

// Start — запускает периодическое выполнение задачи до остановки контекста
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("scheduler started")
	s.logger.Debug("scheduler interval configured", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// первый запуск сразу
	s.runOnce(ctx)

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx)
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		}
	}
}

// runOnce — одна итерация; ошибка задачи не останавливает планировщик
func (s *Scheduler) runOnce(ctx context.Context) {
	s.logger.Debug("tick: running task")
	start := time.Now()
	if err := s.task.Run(ctx); err != nil {
		s.logger.Error("tick: task failed", slog.Any("err", err))
		return
	}
	s.logger.Debug("tick: completed", slog.Duration("took", time.Since(start)))
}
