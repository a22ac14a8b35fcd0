package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// Completer переводит прошедшие confirmed записи в completed
type Completer interface {
	CompletePast(ctx context.Context, today time.Time) ([]int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler периодически завершает прошедшие записи
type Scheduler struct {
	completer Completer
	interval  time.Duration
	logger    Logger
	now       func() time.Time
}

// New создает планировщик. interval <= 0 выключает периодический запуск
func New(completer Completer, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		completer: completer,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
	}
}

// Start блокирует до отмены ctx. Первый проход выполняется сразу
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Warn("Scheduler: interval is not positive, automatic completion disabled")
		return
	}

	s.logger.Info("Scheduler: started, interval=%s", s.interval)
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler: stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	ids, err := s.completer.CompletePast(ctx, domain.DateOnly(s.now()))
	if err != nil {
		s.logger.Error("Scheduler: complete past reservations: %v", err)
		return
	}
	if len(ids) > 0 {
		s.logger.Info("Scheduler: completed %d reservations: %v", len(ids), ids)
	}
}
