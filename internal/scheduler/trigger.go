// Package scheduler запускает прогоны runner'а: периодически по
// интервалу и немедленно по внешней команде. Сам прогон живёт в
// пакете runner; здесь только решение "когда".
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shaiso/Vitrina/internal/domain"
)

// Runner — то, что Trigger умеет запускать.
//
// Реализация: runner.Runner.
type Runner interface {
	Run(ctx context.Context, now time.Time, manual bool) (*domain.RunReport, error)
}

// Trigger владеет cron-расписанием периодических прогонов и точкой
// входа для ручного запуска. Сериализацию самих прогонов обеспечивает
// mutex внутри runner'а, Trigger об этом не заботится.
type Trigger struct {
	runner Runner
	logger *slog.Logger
	cron   *cron.Cron

	mu      sync.Mutex
	entryID cron.EntryID
	armed   bool
}

// NewTrigger создаёт Trigger. Периодика не активна до EnsureArmed.
func NewTrigger(runner Runner, logger *slog.Logger) *Trigger {
	return &Trigger{
		runner: runner,
		logger: logger,
		cron:   cron.New(),
	}
}

// EnsureArmed включает периодический запуск с заданным интервалом.
// Идемпотентен: повторные вызовы не добавляют второй таймер.
func (t *Trigger) EnsureArmed(interval time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.armed {
		return nil
	}

	id, err := t.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		t.fire(context.Background(), false)
	})
	if err != nil {
		return fmt.Errorf("arm periodic trigger: %w", err)
	}
	t.entryID = id
	t.armed = true
	t.cron.Start()

	t.logger.Info("periodic trigger armed", "interval", interval.String())
	return nil
}

// FireManual немедленно выполняет прогон по внешней команде.
// Блокируется до завершения прогона.
func (t *Trigger) FireManual(ctx context.Context) {
	t.fire(ctx, true)
}

// NextRun возвращает момент следующего периодического запуска;
// нулевое время — периодика не активна.
func (t *Trigger) NextRun() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.armed {
		return time.Time{}
	}
	return t.cron.Entry(t.entryID).Next
}

// Stop останавливает периодику. Возвращённый контекст закрывается,
// когда уже начавшийся cron-колбэк дорабатывает.
func (t *Trigger) Stop() context.Context {
	return t.cron.Stop()
}

func (t *Trigger) fire(ctx context.Context, manual bool) {
	if _, err := t.runner.Run(ctx, time.Now().UTC(), manual); err != nil {
		t.logger.Error("run failed", "manual", manual, "error", err)
	}
}
