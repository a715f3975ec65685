package domain

import (
	"strings"
	"testing"
	"time"
)

func TestParseTransitionKind(t *testing.T) {
	for _, s := range []string{"visibility", "status"} {
		kind, err := ParseTransitionKind(s)
		if err != nil {
			t.Errorf("ParseTransitionKind(%q): %v", s, err)
		}
		if kind.String() != s {
			t.Errorf("kind = %q, want %q", kind, s)
		}
	}

	if _, err := ParseTransitionKind("archive"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestEligibleFrom(t *testing.T) {
	tests := []struct {
		kind   TransitionKind
		status ProductStatus
		want   bool
	}{
		{KindPublishFromPrivate, StatusPrivate, true},
		{KindPublishFromPrivate, StatusDraft, false},
		{KindPublishFromPrivate, StatusPublish, false},
		{KindPublishFromDraft, StatusDraft, true},
		{KindPublishFromDraft, StatusPrivate, false},
		{KindPublishFromDraft, StatusPublish, false},
	}
	for _, tt := range tests {
		if got := tt.kind.EligibleFrom(tt.status); got != tt.want {
			t.Errorf("%s.EligibleFrom(%s) = %v, want %v", tt.kind, tt.status, got, tt.want)
		}
	}
}

func TestIsDue(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	entry := ScheduleEntry{ScheduledAt: now}
	if !entry.IsDue(now) {
		t.Error("entry at exactly now must be due")
	}

	entry.ScheduledAt = now.Add(time.Minute)
	if entry.IsDue(now) {
		t.Error("future entry must not be due")
	}

	entry.ScheduledAt = now.Add(-time.Hour)
	entry.Completed = true
	if entry.IsDue(now) {
		t.Error("completed entry must not be due")
	}
}

func TestRunReportSummary(t *testing.T) {
	var report RunReport
	if !report.Empty() {
		t.Error("zero report must be empty")
	}
	if got := report.Summary(); got != "no scheduled changes were due" {
		t.Errorf("empty summary = %q", got)
	}

	report.Succeeded = []TransitionOutcome{
		{ScheduleID: 1, ProductID: 10, Name: "Scarf"},
		{ScheduleID: 2, ProductID: 20, Name: "Shirt"},
	}
	report.Failed = []TransitionFailure{
		{ScheduleID: 3, ProductID: 30, Name: "Cape"},
		{ScheduleID: 4, ProductID: 40},
	}

	got := report.Summary()
	for _, want := range []string{
		"published: Scarf (ID: 10), Shirt (ID: 20)",
		"failed: Cape (ID: 30), ID: 40",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}
}
