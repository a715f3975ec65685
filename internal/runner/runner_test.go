package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shaiso/Vitrina/internal/domain"
	"github.com/shaiso/Vitrina/internal/executor"
)

type fakeSchedules struct {
	due       []domain.ScheduleEntry
	completed []int64
	markErr   error
	listErr   error
}

func (s *fakeSchedules) ListDue(_ context.Context, now time.Time) ([]domain.ScheduleEntry, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var due []domain.ScheduleEntry
	for _, e := range s.due {
		if e.IsDue(now) {
			due = append(due, e)
		}
	}
	return due, nil
}

func (s *fakeSchedules) MarkCompleted(_ context.Context, id int64) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.completed = append(s.completed, id)
	for i := range s.due {
		if s.due[i].ID == id {
			s.due[i].Completed = true
		}
	}
	return nil
}

// fakeApplier успешно применяет всё, кроме записей из fail.
type fakeApplier struct {
	fail    map[int64]error
	applied []int64
}

func (a *fakeApplier) Apply(_ context.Context, entry *domain.ScheduleEntry) (*executor.Result, error) {
	a.applied = append(a.applied, entry.ID)
	if err, ok := a.fail[entry.ID]; ok {
		return nil, err
	}
	return &executor.Result{
		ScheduleID: entry.ID,
		ProductID:  entry.ProductID,
		Name:       "Product",
	}, nil
}

type fakeReports struct {
	inserted []*domain.RunReport
	err      error
}

func (r *fakeReports) Insert(_ context.Context, report *domain.RunReport) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, report)
	return nil
}

type fakePublisher struct {
	published []*domain.RunReport
	err       error
}

func (p *fakePublisher) PublishRunReport(_ context.Context, report *domain.RunReport) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, report)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func at(minute int) time.Time {
	return time.Date(2026, 8, 31, 12, minute, 0, 0, time.UTC)
}

func TestRun_EmptyRun(t *testing.T) {
	schedules := &fakeSchedules{}
	applier := &fakeApplier{}
	reports := &fakeReports{}
	r := New(schedules, applier, reports, nil, discardLogger())

	report, err := r.Run(context.Background(), at(30), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.Empty() {
		t.Errorf("report not empty: %+v", report)
	}
	if len(applier.applied) != 0 {
		t.Errorf("applier called %d times on empty run", len(applier.applied))
	}
	// Пустой прогон тоже оставляет отчёт.
	if len(reports.inserted) != 1 {
		t.Errorf("inserted %d reports, want 1", len(reports.inserted))
	}
}

func TestRun_ProcessesDueInOrder(t *testing.T) {
	schedules := &fakeSchedules{due: []domain.ScheduleEntry{
		{ID: 1, ProductID: 10, ScheduledAt: at(0), Kind: domain.KindPublishFromPrivate},
		{ID: 2, ProductID: 20, ScheduledAt: at(15), Kind: domain.KindPublishFromDraft},
		{ID: 3, ProductID: 30, ScheduledAt: at(45), Kind: domain.KindPublishFromPrivate},
	}}
	applier := &fakeApplier{}
	reports := &fakeReports{}
	publisher := &fakePublisher{}
	r := New(schedules, applier, reports, publisher, discardLogger())

	report, err := r.Run(context.Background(), at(30), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Запись 3 ещё не назрела.
	if diff := cmp.Diff([]int64{1, 2}, applier.applied); diff != "" {
		t.Errorf("applied order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{1, 2}, schedules.completed); diff != "" {
		t.Errorf("completed mismatch (-want +got):\n%s", diff)
	}

	want := []domain.TransitionOutcome{
		{ScheduleID: 1, ProductID: 10, Name: "Product"},
		{ScheduleID: 2, ProductID: 20, Name: "Product"},
	}
	if diff := cmp.Diff(want, report.Succeeded); diff != "" {
		t.Errorf("succeeded mismatch (-want +got):\n%s", diff)
	}
	if len(report.Failed) != 0 {
		t.Errorf("failed = %+v, want none", report.Failed)
	}
	if len(publisher.published) != 1 {
		t.Errorf("published %d reports, want 1", len(publisher.published))
	}
}

func TestRun_FailureDoesNotStopRun(t *testing.T) {
	schedules := &fakeSchedules{due: []domain.ScheduleEntry{
		{ID: 1, ProductID: 10, ScheduledAt: at(0), Kind: domain.KindPublishFromPrivate},
		{ID: 2, ProductID: 20, ScheduledAt: at(5), Kind: domain.KindPublishFromDraft},
		{ID: 3, ProductID: 30, ScheduledAt: at(10), Kind: domain.KindPublishFromPrivate},
	}}
	applier := &fakeApplier{fail: map[int64]error{2: executor.ErrVerificationFailed}}
	reports := &fakeReports{}
	r := New(schedules, applier, reports, nil, discardLogger())

	report, err := r.Run(context.Background(), at(30), true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff([]int64{1, 2, 3}, applier.applied); diff != "" {
		t.Errorf("applied mismatch (-want +got):\n%s", diff)
	}
	// Неудавшаяся запись не помечается выполненной.
	if diff := cmp.Diff([]int64{1, 3}, schedules.completed); diff != "" {
		t.Errorf("completed mismatch (-want +got):\n%s", diff)
	}
	wantFailed := []domain.TransitionFailure{{ScheduleID: 2, ProductID: 20}}
	if diff := cmp.Diff(wantFailed, report.Failed); diff != "" {
		t.Errorf("failed mismatch (-want +got):\n%s", diff)
	}
	if !report.Manual {
		t.Error("manual flag lost")
	}
}

func TestRun_FailureNamesLoadedProduct(t *testing.T) {
	schedules := &fakeSchedules{due: []domain.ScheduleEntry{
		{ID: 1, ProductID: 10, ScheduledAt: at(0), Kind: domain.KindPublishFromPrivate},
	}}
	// Товар загрузился, но верификация не прошла — отчёт называет его
	// по имени, причина в отчёт не попадает.
	applier := &fakeApplier{fail: map[int64]error{
		1: &executor.TransitionError{Name: "Cape", Err: executor.ErrVerificationFailed},
	}}
	r := New(schedules, applier, &fakeReports{}, nil, discardLogger())

	report, err := r.Run(context.Background(), at(10), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantFailed := []domain.TransitionFailure{{ScheduleID: 1, ProductID: 10, Name: "Cape"}}
	if diff := cmp.Diff(wantFailed, report.Failed); diff != "" {
		t.Errorf("failed mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_FailedEntryRetriedNextRun(t *testing.T) {
	schedules := &fakeSchedules{due: []domain.ScheduleEntry{
		{ID: 1, ProductID: 10, ScheduledAt: at(0), Kind: domain.KindPublishFromDraft},
	}}
	applier := &fakeApplier{fail: map[int64]error{1: errors.New("db down")}}
	r := New(schedules, applier, &fakeReports{}, nil, discardLogger())

	if _, err := r.Run(context.Background(), at(10), false); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// Сбой устранён — следующий прогон подбирает ту же запись.
	applier.fail = nil
	report, err := r.Run(context.Background(), at(25), false)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if diff := cmp.Diff([]int64{1, 1}, applier.applied); diff != "" {
		t.Errorf("applied mismatch (-want +got):\n%s", diff)
	}
	if len(report.Succeeded) != 1 {
		t.Errorf("succeeded = %+v, want one entry", report.Succeeded)
	}
}

func TestRun_MarkCompletedFailure(t *testing.T) {
	schedules := &fakeSchedules{
		due: []domain.ScheduleEntry{
			{ID: 1, ProductID: 10, ScheduledAt: at(0), Kind: domain.KindPublishFromDraft},
		},
		markErr: errors.New("db down"),
	}
	r := New(schedules, &fakeApplier{}, &fakeReports{}, nil, discardLogger())

	report, err := r.Run(context.Background(), at(10), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantFailed := []domain.TransitionFailure{{ScheduleID: 1, ProductID: 10, Name: "Product"}}
	if diff := cmp.Diff(wantFailed, report.Failed); diff != "" {
		t.Errorf("failed mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ReportErrorsAreNotFatal(t *testing.T) {
	schedules := &fakeSchedules{due: []domain.ScheduleEntry{
		{ID: 1, ProductID: 10, ScheduledAt: at(0), Kind: domain.KindPublishFromDraft},
	}}
	reports := &fakeReports{err: errors.New("insert failed")}
	publisher := &fakePublisher{err: errors.New("broker gone")}
	r := New(schedules, &fakeApplier{}, reports, publisher, discardLogger())

	report, err := r.Run(context.Background(), at(10), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Succeeded) != 1 {
		t.Errorf("succeeded = %+v, want one entry", report.Succeeded)
	}
}

func TestRun_ListDueError(t *testing.T) {
	schedules := &fakeSchedules{listErr: errors.New("db down")}
	r := New(schedules, &fakeApplier{}, &fakeReports{}, nil, discardLogger())

	if _, err := r.Run(context.Background(), at(0), false); err == nil {
		t.Fatal("expected error")
	}
}
