// Package runner — последовательный прогон назревших переходов.
//
// Один процесс держит один Runner; mutex внутри гарантирует, что
// периодический и ручной запуски никогда не идут параллельно.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shaiso/Vitrina/internal/domain"
	"github.com/shaiso/Vitrina/internal/executor"
)

// ScheduleStore — доступ runner'а к записям расписания.
//
// Реализация: repo.ScheduleRepo.
type ScheduleStore interface {
	ListDue(ctx context.Context, now time.Time) ([]domain.ScheduleEntry, error)
	MarkCompleted(ctx context.Context, id int64) error
}

// TransitionApplier выполняет один переход.
//
// Реализация: executor.Executor.
type TransitionApplier interface {
	Apply(ctx context.Context, entry *domain.ScheduleEntry) (*executor.Result, error)
}

// ReportStore сохраняет отчёты прогонов.
//
// Реализация: repo.ReportRepo.
type ReportStore interface {
	Insert(ctx context.Context, report *domain.RunReport) error
}

// ReportPublisher рассылает отчёт прогона подписчикам.
//
// Реализация: mq.Publisher. Может быть nil — тогда отчёт только
// сохраняется.
type ReportPublisher interface {
	PublishRunReport(ctx context.Context, report *domain.RunReport) error
}

// Runner обрабатывает назревшие записи расписания строго по одной,
// в порядке возрастания срока.
type Runner struct {
	schedules ScheduleStore
	applier   TransitionApplier
	reports   ReportStore
	publisher ReportPublisher
	logger    *slog.Logger

	mu sync.Mutex
}

// New создаёт Runner.
func New(schedules ScheduleStore, applier TransitionApplier, reports ReportStore, publisher ReportPublisher, logger *slog.Logger) *Runner {
	return &Runner{
		schedules: schedules,
		applier:   applier,
		reports:   reports,
		publisher: publisher,
		logger:    logger,
	}
}

// Run выполняет один прогон: выбирает записи со сроком <= now и
// применяет их по очереди. Неудавшийся переход пишется в отчёт и
// остаётся незавершённым — его подберёт следующий прогон; прогон из-за
// него не прерывается. Ошибка возвращается только если не удалось
// получить сам список записей.
func (r *Runner) Run(ctx context.Context, now time.Time, manual bool) (*domain.RunReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := &domain.RunReport{StartedAt: now, Manual: manual}

	entries, err := r.schedules.ListDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list due: %w", err)
	}

	for i := range entries {
		entry := &entries[i]
		result, err := r.applier.Apply(ctx, entry)
		if err != nil {
			// Причина остаётся в логе; в отчёт идут только имя и
			// идентификаторы товара.
			r.logger.Error("transition failed",
				"schedule_id", entry.ID,
				"product_id", entry.ProductID,
				"kind", entry.Kind.String(),
				"error", err,
			)
			failure := domain.TransitionFailure{
				ScheduleID: entry.ID,
				ProductID:  entry.ProductID,
			}
			var terr *executor.TransitionError
			if errors.As(err, &terr) {
				failure.Name = terr.Name
			}
			report.Failed = append(report.Failed, failure)
			continue
		}

		if err := r.schedules.MarkCompleted(ctx, entry.ID); err != nil {
			// Переход применён, но запись осталась pending. Повтор на
			// следующем прогоне идемпотентен, так что это не фатально.
			r.logger.Error("mark completed failed",
				"schedule_id", entry.ID,
				"product_id", entry.ProductID,
				"error", err,
			)
			report.Failed = append(report.Failed, domain.TransitionFailure{
				ScheduleID: entry.ID,
				ProductID:  entry.ProductID,
				Name:       result.Name,
			})
			continue
		}

		report.Succeeded = append(report.Succeeded, domain.TransitionOutcome{
			ScheduleID: result.ScheduleID,
			ProductID:  result.ProductID,
			Name:       result.Name,
		})
	}

	report.FinishedAt = time.Now().UTC()

	// Отчёт — best effort: его потеря не должна валить прогон,
	// переходы уже применены.
	if err := r.reports.Insert(ctx, report); err != nil {
		r.logger.Warn("persist run report failed", "error", err)
	}
	if r.publisher != nil {
		if err := r.publisher.PublishRunReport(ctx, report); err != nil {
			r.logger.Warn("publish run report failed", "error", err)
		}
	}

	r.logger.Info("run finished",
		"manual", manual,
		"succeeded", len(report.Succeeded),
		"failed", len(report.Failed),
		"summary", report.Summary(),
	)
	return report, nil
}
