package localtime

import (
	"errors"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		clock string
		zone  string
		want  string // ожидаемый UTC-момент в RFC3339
	}{
		{
			name: "utc passthrough",
			date: "2026-03-10", clock: "09:30", zone: "UTC",
			want: "2026-03-10T09:30:00Z",
		},
		{
			name: "berlin winter is utc+1",
			date: "2026-01-15", clock: "10:00", zone: "Europe/Berlin",
			want: "2026-01-15T09:00:00Z",
		},
		{
			name: "berlin summer is utc+2",
			date: "2026-07-15", clock: "10:00", zone: "Europe/Berlin",
			want: "2026-07-15T08:00:00Z",
		},
		{
			name: "half hour zone",
			date: "2026-07-15", clock: "10:00", zone: "Asia/Kolkata",
			want: "2026-07-15T04:30:00Z",
		},
		{
			name: "crosses date boundary",
			date: "2026-01-01", clock: "03:00", zone: "Pacific/Auckland",
			want: "2025-12-31T14:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.date, tt.clock, tt.zone)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			want, _ := time.Parse(time.RFC3339, tt.want)
			if !got.Equal(want) {
				t.Errorf("Normalize = %v, want %v", got, want)
			}
			if got.Location() != time.UTC {
				t.Errorf("Normalize returned non-UTC location %v", got.Location())
			}
		})
	}
}

func TestNormalizeInvalidInput(t *testing.T) {
	if _, err := Normalize("2026-03-10", "09:30", "Mars/Olympus"); !errors.Is(err, ErrInvalidTimezone) {
		t.Errorf("unknown zone: err = %v, want ErrInvalidTimezone", err)
	}
	if _, err := Normalize("2026-13-40", "09:30", "UTC"); !errors.Is(err, ErrInvalidDateTime) {
		t.Errorf("bad date: err = %v, want ErrInvalidDateTime", err)
	}
	if _, err := Normalize("2026-03-10", "25:99", "UTC"); !errors.Is(err, ErrInvalidDateTime) {
		t.Errorf("bad clock: err = %v, want ErrInvalidDateTime", err)
	}
}

func TestRoundTrip(t *testing.T) {
	zones := []string{"UTC", "Europe/Berlin", "Asia/Kolkata", "America/New_York"}
	for _, zone := range zones {
		canonical, err := Normalize("2026-06-01", "18:45", zone)
		if err != nil {
			t.Fatalf("Normalize(%s): %v", zone, err)
		}
		date, clock, err := Denormalize(canonical, zone)
		if err != nil {
			t.Fatalf("Denormalize(%s): %v", zone, err)
		}
		if date != "2026-06-01" || clock != "18:45" {
			t.Errorf("round trip via %s = (%s, %s), want (2026-06-01, 18:45)", zone, date, clock)
		}
	}
}

func TestDenormalizeInvalidZone(t *testing.T) {
	if _, _, err := Denormalize(time.Now(), "Not/AZone"); !errors.Is(err, ErrInvalidTimezone) {
		t.Errorf("err = %v, want ErrInvalidTimezone", err)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name                                  string
		override, processDefault, hostDefault string
		want                                  string
	}{
		{"override wins", "Asia/Tokyo", "Europe/Berlin", "America/Chicago", "Asia/Tokyo"},
		{"process default next", "", "Europe/Berlin", "America/Chicago", "Europe/Berlin"},
		{"host default next", "", "", "America/Chicago", "America/Chicago"},
		{"utc last resort", "", "", "", "UTC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.override, tt.processDefault, tt.hostDefault); got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		zone string
		at   string
		want string
	}{
		{"UTC", "2026-01-15T12:00:00Z", "UTC+00:00"},
		{"Europe/Berlin", "2026-01-15T12:00:00Z", "UTC+01:00"},
		{"Europe/Berlin", "2026-07-15T12:00:00Z", "UTC+02:00"},
		{"Asia/Kolkata", "2026-01-15T12:00:00Z", "UTC+05:30"},
		{"America/New_York", "2026-01-15T12:00:00Z", "UTC-05:00"},
	}
	for _, tt := range tests {
		loc, err := time.LoadLocation(tt.zone)
		if err != nil {
			t.Fatalf("LoadLocation(%s): %v", tt.zone, err)
		}
		at, _ := time.Parse(time.RFC3339, tt.at)
		if got := FormatOffset(at.In(loc)); got != tt.want {
			t.Errorf("FormatOffset(%s @ %s) = %q, want %q", tt.zone, tt.at, got, tt.want)
		}
	}
}

func TestZones(t *testing.T) {
	var total int
	var sawBerlin bool
	for zone := range Zones() {
		total++
		if zone.ID == "Europe/Berlin" {
			sawBerlin = true
		}
		if zone.Offset == "" {
			t.Fatalf("zone %s has empty offset", zone.ID)
		}
	}
	if total == 0 {
		t.Skip("no tzdata directory on this host")
	}
	if !sawBerlin {
		t.Errorf("Europe/Berlin missing from %d listed zones", total)
	}
}

func TestZonesEarlyStop(t *testing.T) {
	var n int
	for range Zones() {
		n++
		break
	}
	if n > 1 {
		t.Errorf("yield after stop: got %d zones", n)
	}
}
