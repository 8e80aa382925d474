package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// DefaultPeriod — интервал запуска sync run'ов по умолчанию.
const DefaultPeriod = 60 * time.Second

// Runner — то, что scheduler запускает на каждый тик.
// RunOnce не возвращает ошибок: сбой run'а не должен влиять на
// следующий тик.
type Runner interface {
	RunOnce(ctx context.Context)
}

// Scheduler — периодический триггер sync run'ов.
//
// Два режима:
//   - фиксированный период (default: 60s)
//   - cron-выражение (CronExpr), если задано — имеет приоритет
//
// Тики выполняются синхронно: пока run обрабатывает длинный batch,
// очередной тик просто поглощается. Перекрытие runs в любом случае
// безопасно (runs не разделяют состояния), синхронный вызов лишь
// убирает лишний интерливинг логов.
type Scheduler struct {
	runner   Runner
	period   time.Duration
	cronExpr string
	logger   *slog.Logger
}

// Config — конфигурация Scheduler.
type Config struct {
	Runner Runner

	// Period — интервал между запусками (default: 60s).
	Period time.Duration

	// CronExpr — cron-выражение (минутная гранулярность).
	// Если задано, Period игнорируется.
	CronExpr string

	Logger *slog.Logger
}

// New создаёт новый Scheduler.
func New(cfg Config) *Scheduler {
	period := cfg.Period
	if period <= 0 {
		period = DefaultPeriod
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		runner:   cfg.Runner,
		period:   period,
		cronExpr: cfg.CronExpr,
		logger:   logger,
	}
}

// Run блокирует до отмены context, запуская runner по расписанию.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.cronExpr != "" {
		return s.runCron(ctx)
	}
	return s.runInterval(ctx)
}

// runInterval — режим фиксированного периода.
func (s *Scheduler) runInterval(ctx context.Context) error {
	s.logger.Info("scheduler started", "period", s.period)

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	// Первый run сразу при старте (подхватываем строки, накопившиеся
	// пока сервис был выключен).
	s.runner.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runner.RunOnce(ctx)
		}
	}
}

// runCron — режим cron-выражения.
func (s *Scheduler) runCron(ctx context.Context) error {
	schedule, err := ParseCronExpr(s.cronExpr)
	if err != nil {
		return err
	}

	s.logger.Info("scheduler started", "cron", s.cronExpr)

	for {
		next := schedule.Next(time.Now())

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-timer.C:
			s.runner.RunOnce(ctx)
		}
	}
}
