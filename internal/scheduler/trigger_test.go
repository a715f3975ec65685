package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shaiso/Vitrina/internal/domain"
)

type fakeRunner struct {
	mu     sync.Mutex
	runs   int
	manual []bool
}

func (r *fakeRunner) Run(_ context.Context, _ time.Time, manual bool) (*domain.RunReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs++
	r.manual = append(r.manual, manual)
	return &domain.RunReport{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnsureArmedIdempotent(t *testing.T) {
	trigger := NewTrigger(&fakeRunner{}, discardLogger())
	defer trigger.Stop()

	if err := trigger.EnsureArmed(15 * time.Minute); err != nil {
		t.Fatalf("EnsureArmed: %v", err)
	}
	if err := trigger.EnsureArmed(15 * time.Minute); err != nil {
		t.Fatalf("EnsureArmed (second): %v", err)
	}

	if entries := trigger.cron.Entries(); len(entries) != 1 {
		t.Errorf("cron entries = %d, want 1", len(entries))
	}
}

func TestNextRun(t *testing.T) {
	trigger := NewTrigger(&fakeRunner{}, discardLogger())
	defer trigger.Stop()

	if next := trigger.NextRun(); !next.IsZero() {
		t.Errorf("NextRun before arming = %v, want zero", next)
	}

	if err := trigger.EnsureArmed(15 * time.Minute); err != nil {
		t.Fatalf("EnsureArmed: %v", err)
	}
	next := trigger.NextRun()
	if next.IsZero() {
		t.Fatal("NextRun after arming is zero")
	}
	if until := time.Until(next); until <= 0 || until > 15*time.Minute+time.Minute {
		t.Errorf("NextRun %v not within the next interval", next)
	}
}

func TestFireManual(t *testing.T) {
	runner := &fakeRunner{}
	trigger := NewTrigger(runner, discardLogger())

	trigger.FireManual(context.Background())

	if runner.runs != 1 {
		t.Fatalf("runs = %d, want 1", runner.runs)
	}
	if !runner.manual[0] {
		t.Error("run not marked manual")
	}
}
