package executor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shaiso/Vitrina/internal/domain"
	"github.com/shaiso/Vitrina/internal/repo"
)

// fakeStore — in-memory реализация ProductStore для тестов.
type fakeStore struct {
	products map[int64]*domain.Product

	saveErr error
	// dropStatusOnSave имитирует путь записи, который "теряет" статус:
	// Save пишет всё, кроме поля Status.
	dropStatusOnSave bool

	saveCalls       int
	forceCalls      int
	invalidateCalls int
}

func newFakeStore(products ...*domain.Product) *fakeStore {
	s := &fakeStore{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) Save(_ context.Context, p *domain.Product) error {
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	stored, ok := s.products[p.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cp := *p
	if s.dropStatusOnSave {
		cp.Status = stored.Status
	}
	s.products[p.ID] = &cp
	return nil
}

func (s *fakeStore) ForceStatus(_ context.Context, id int64, status domain.ProductStatus) error {
	s.forceCalls++
	p, ok := s.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.Status = status
	return nil
}

func (s *fakeStore) InvalidateCache(_ context.Context, _ int64) error {
	s.invalidateCalls++
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func entry(productID int64, kind domain.TransitionKind) *domain.ScheduleEntry {
	return &domain.ScheduleEntry{
		ID:          100,
		ProductID:   productID,
		ScheduledAt: time.Now().UTC().Truncate(time.Minute),
		Kind:        kind,
	}
}

func TestApply_VisibilityTransition(t *testing.T) {
	store := newFakeStore(&domain.Product{
		ID:                7,
		Name:              "Wool Scarf",
		Status:            domain.StatusPrivate,
		CatalogVisibility: domain.VisibilityHidden,
		Featured:          true,
	})
	exec := New(store, discardLogger())

	result, err := exec.Apply(context.Background(), entry(7, domain.KindPublishFromPrivate))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.ScheduleID != 100 || result.ProductID != 7 || result.Name != "Wool Scarf" {
		t.Errorf("unexpected result: %+v", result)
	}

	got := store.products[7]
	if got.Status != domain.StatusPublish {
		t.Errorf("status = %s, want publish", got.Status)
	}
	if got.CatalogVisibility != domain.VisibilityVisible {
		t.Errorf("visibility = %s, want visible", got.CatalogVisibility)
	}
	if got.Featured {
		t.Error("featured flag not cleared")
	}
	if store.forceCalls != 1 {
		t.Errorf("forceCalls = %d, want 1", store.forceCalls)
	}
	if store.invalidateCalls != 1 {
		t.Errorf("invalidateCalls = %d, want 1", store.invalidateCalls)
	}
}

func TestApply_StatusTransition(t *testing.T) {
	store := newFakeStore(&domain.Product{
		ID:                3,
		Name:              "Linen Shirt",
		Status:            domain.StatusDraft,
		CatalogVisibility: domain.VisibilityCatalog,
		Featured:          true,
	})
	exec := New(store, discardLogger())

	result, err := exec.Apply(context.Background(), entry(3, domain.KindPublishFromDraft))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.ProductID != 3 {
		t.Errorf("ProductID = %d, want 3", result.ProductID)
	}

	got := store.products[3]
	if got.Status != domain.StatusPublish {
		t.Errorf("status = %s, want publish", got.Status)
	}
	// Переход статуса не трогает ни видимость, ни featured.
	if got.CatalogVisibility != domain.VisibilityCatalog {
		t.Errorf("visibility = %s, want catalog", got.CatalogVisibility)
	}
	if !got.Featured {
		t.Error("featured flag changed")
	}
	if store.forceCalls != 0 {
		t.Errorf("forceCalls = %d, want 0", store.forceCalls)
	}
	// Кэш сбрасывается после записи независимо от вида перехода.
	if store.invalidateCalls != 1 {
		t.Errorf("invalidateCalls = %d, want 1", store.invalidateCalls)
	}
}

func TestApply_ProductMissing(t *testing.T) {
	exec := New(newFakeStore(), discardLogger())

	_, err := exec.Apply(context.Background(), entry(42, domain.KindPublishFromPrivate))
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestApply_SaveError(t *testing.T) {
	store := newFakeStore(&domain.Product{ID: 5, Status: domain.StatusPrivate})
	store.saveErr = errors.New("connection reset")
	exec := New(store, discardLogger())

	_, err := exec.Apply(context.Background(), entry(5, domain.KindPublishFromPrivate))
	if err == nil {
		t.Fatal("expected error")
	}
	if store.forceCalls != 0 {
		t.Errorf("forceCalls = %d after failed save, want 0", store.forceCalls)
	}
	if store.invalidateCalls != 0 {
		t.Errorf("invalidateCalls = %d after failed save, want 0", store.invalidateCalls)
	}
}

func TestApply_VerificationFailed(t *testing.T) {
	// Save "теряет" статус, ForceStatus для переходов статуса не
	// вызывается — контрольное чтение увидит draft.
	store := newFakeStore(&domain.Product{ID: 9, Name: "Felt Hat", Status: domain.StatusDraft})
	store.dropStatusOnSave = true
	exec := New(store, discardLogger())

	_, err := exec.Apply(context.Background(), entry(9, domain.KindPublishFromDraft))
	if !errors.Is(err, ErrVerificationFailed) {
		t.Errorf("err = %v, want ErrVerificationFailed", err)
	}

	// Ошибка несёт имя товара для отчёта прогона.
	var terr *TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %T, want *TransitionError", err)
	}
	if terr.Name != "Felt Hat" {
		t.Errorf("Name = %q, want %q", terr.Name, "Felt Hat")
	}
}

func TestApply_ForceStatusCoversLostWrite(t *testing.T) {
	// Для переходов видимости потерянный статус дожимается прямой
	// записью, и верификация проходит.
	store := newFakeStore(&domain.Product{
		ID:                11,
		Name:              "Cape",
		Status:            domain.StatusPrivate,
		CatalogVisibility: domain.VisibilityHidden,
	})
	store.dropStatusOnSave = true
	exec := New(store, discardLogger())

	if _, err := exec.Apply(context.Background(), entry(11, domain.KindPublishFromPrivate)); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := store.products[11].Status; got != domain.StatusPublish {
		t.Errorf("status = %s, want publish", got)
	}
}

func TestApply_UnknownKind(t *testing.T) {
	store := newFakeStore(&domain.Product{ID: 1, Status: domain.StatusDraft})
	exec := New(store, discardLogger())

	_, err := exec.Apply(context.Background(), entry(1, domain.TransitionKind("archive")))
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if store.saveCalls != 0 {
		t.Errorf("saveCalls = %d, want 0", store.saveCalls)
	}
}
