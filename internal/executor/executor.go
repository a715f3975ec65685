package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shaiso/Vitrina/internal/domain"
	"github.com/shaiso/Vitrina/internal/repo"
)

// ProductStore — доступ executor'а к товарам.
//
// Реализация: repo.ProductRepo.
type ProductStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Save(ctx context.Context, p *domain.Product) error
	ForceStatus(ctx context.Context, id int64, status domain.ProductStatus) error
	InvalidateCache(ctx context.Context, productID int64) error
}

// Result — подтверждённый переход.
type Result struct {
	// ScheduleID — исполненная запись расписания.
	ScheduleID int64

	// ProductID — товар.
	ProductID int64

	// Name — имя товара на момент перехода.
	Name string
}

// Executor применяет переходы к товарам.
type Executor struct {
	store  ProductStore
	logger *slog.Logger
}

// New создаёт Executor.
func New(store ProductStore, logger *slog.Logger) *Executor {
	return &Executor{store: store, logger: logger}
}

// Apply выполняет переход по записи расписания и возвращает Result
// только после того, как контрольное чтение подтвердило целевое
// состояние. При любой ошибке запись остаётся незавершённой; если
// товар успел загрузиться, ошибка несёт его имя для отчёта прогона,
// а причина уходит в лог на стороне runner'а.
func (e *Executor) Apply(ctx context.Context, entry *domain.ScheduleEntry) (*Result, error) {
	product, err := e.store.GetByID(ctx, entry.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrProductNotFound, entry.ProductID)
	}
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}

	reloaded, err := e.transition(ctx, entry, product)
	if err != nil {
		return nil, &TransitionError{Name: product.Name, Err: err}
	}

	e.logger.Info("transition applied",
		"schedule_id", entry.ID,
		"product_id", product.ID,
		"kind", entry.Kind.String(),
	)
	return &Result{
		ScheduleID: entry.ID,
		ProductID:  product.ID,
		Name:       reloaded.Name,
	}, nil
}

// transition мутирует товар, сохраняет его и перечитывает для
// верификации. Возвращает перечитанный товар.
func (e *Executor) transition(ctx context.Context, entry *domain.ScheduleEntry, product *domain.Product) (*domain.Product, error) {
	switch entry.Kind {
	case domain.KindPublishFromPrivate:
		product.Status = domain.StatusPublish
		product.CatalogVisibility = domain.VisibilityVisible
		product.Featured = false
	case domain.KindPublishFromDraft:
		product.Status = domain.StatusPublish
	default:
		return nil, fmt.Errorf("unknown transition kind %q", entry.Kind)
	}

	if err := e.store.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}

	if entry.Kind == domain.KindPublishFromPrivate {
		// Обычный путь записи может не довести статус private →
		// publish; статус дожимается прямой записью.
		if err := e.store.ForceStatus(ctx, product.ID, domain.StatusPublish); err != nil {
			return nil, fmt.Errorf("force status: %w", err)
		}
	}

	// Кэшированные представления сбрасываются после любой записи,
	// иначе контрольное чтение может увидеть устаревшее состояние.
	if err := e.store.InvalidateCache(ctx, product.ID); err != nil {
		return nil, fmt.Errorf("invalidate cache: %w", err)
	}

	reloaded, err := e.store.GetByID(ctx, entry.ProductID)
	if err != nil {
		return nil, fmt.Errorf("verify product: %w", err)
	}
	if err := verify(entry.Kind, reloaded); err != nil {
		return nil, err
	}
	return reloaded, nil
}

// verify сверяет перечитанный товар с целевым состоянием перехода.
func verify(kind domain.TransitionKind, p *domain.Product) error {
	if p.Status != domain.StatusPublish {
		return fmt.Errorf("%w: product %d status %q", ErrVerificationFailed, p.ID, p.Status)
	}
	if kind == domain.KindPublishFromPrivate && p.CatalogVisibility != domain.VisibilityVisible {
		return fmt.Errorf("%w: product %d visibility %q", ErrVerificationFailed, p.ID, p.CatalogVisibility)
	}
	return nil
}
