package checkin

import (
	"testing"
	"time"
)

func TestClassifyBoundary(t *testing.T) {
	cases := []struct {
		name   string
		hour   int
		minute int
		cutoff string
		want   Status
	}{
		{"one minute early", 7, 59, "08:00", StatusOnTime},
		{"exactly at cutoff", 8, 0, "08:00", StatusOnTime},
		{"one minute late", 8, 1, "08:00", StatusLate},
		{"midnight", 0, 0, "08:00", StatusOnTime},
		{"same hour earlier minute", 8, 29, "08:30", StatusOnTime},
		{"same hour at minute", 8, 30, "08:30", StatusOnTime},
		{"same hour past minute", 8, 31, "08:30", StatusLate},
		{"hours later", 17, 0, "08:00", StatusLate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			capturedAt := time.Date(2026, 3, 10, tc.hour, tc.minute, 0, 0, time.UTC)
			got := Classify(capturedAt, "UTC", tc.cutoff)
			if got != tc.want {
				t.Errorf("Classify(%02d:%02d, cutoff %s) = %s, want %s", tc.hour, tc.minute, tc.cutoff, got, tc.want)
			}
		})
	}
}

func TestClassifyUsesRecordZone(t *testing.T) {
	// 00:59 UTC is 07:59 in Jakarta (UTC+7): on time against 08:00
	capturedAt := time.Date(2026, 3, 10, 0, 59, 0, 0, time.UTC)
	if got := Classify(capturedAt, "Asia/Jakarta", "08:00"); got != StatusOnTime {
		t.Errorf("expected on_time in the record's zone, got %s", got)
	}

	// 01:01 UTC is 08:01 in Jakarta: late
	capturedAt = time.Date(2026, 3, 10, 1, 1, 0, 0, time.UTC)
	if got := Classify(capturedAt, "Asia/Jakarta", "08:00"); got != StatusLate {
		t.Errorf("expected late in the record's zone, got %s", got)
	}
}

func TestClassifyBadZoneStillReturns(t *testing.T) {
	capturedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	got := Classify(capturedAt, "Not/AZone", "08:00")
	if got != StatusOnTime && got != StatusLate {
		t.Fatalf("classifier must fall back to the local zone and return a value, got %q", got)
	}
}

func TestClassifyBadCutoffFallsBack(t *testing.T) {
	capturedAt := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)
	if got := Classify(capturedAt, "UTC", "nonsense"); got != StatusOnTime {
		t.Errorf("bad cutoff should fall back to %s, got %s", DefaultCutoff, got)
	}
}

func TestDayOfUsesRecordZone(t *testing.T) {
	// 23:00 UTC on Aug 29 is already Aug 30 in Jakarta (UTC+7). The gate
	// and the stored key must agree on the worker's day, not the server's.
	instant := time.Date(2026, 8, 29, 23, 0, 0, 0, time.UTC)

	if got := DayOf(instant, "Asia/Jakarta"); got != "2026-08-30" {
		t.Errorf("DayOf in Jakarta = %s, want 2026-08-30", got)
	}
	if got := DayOf(instant, "UTC"); got != "2026-08-29" {
		t.Errorf("DayOf in UTC = %s, want 2026-08-29", got)
	}

	// A later instant inside the same Jakarta day keys to the same gate day
	later := time.Date(2026, 8, 29, 23, 30, 0, 0, time.UTC)
	if DayOf(instant, "Asia/Jakarta") != DayOf(later, "Asia/Jakarta") {
		t.Error("instants within one wall-clock day must share one day key")
	}
}

func TestDayOfBadZoneStillReturns(t *testing.T) {
	instant := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	if got := DayOf(instant, "Not/AZone"); len(got) != 10 {
		t.Errorf("DayOf must fall back to the local zone, got %q", got)
	}
}

func TestValidCutoff(t *testing.T) {
	valid := []string{"08:00", "00:00", "23:59"}
	for _, v := range valid {
		if !ValidCutoff(v) {
			t.Errorf("ValidCutoff(%q) = false, want true", v)
		}
	}
	invalid := []string{"", "8:00", "24:00", "08:60", "0800", "late"}
	for _, v := range invalid {
		if ValidCutoff(v) {
			t.Errorf("ValidCutoff(%q) = true, want false", v)
		}
	}
}

func TestComputeStats(t *testing.T) {
	cases := []struct {
		name     string
		statuses []Status
		want     Stats
	}{
		{
			"three on time one late",
			[]Status{StatusOnTime, StatusOnTime, StatusOnTime, StatusLate},
			Stats{OnTime: 3, Late: 1, Total: 4, PunctualityRate: 75},
		},
		{
			"empty period",
			nil,
			Stats{},
		},
		{
			"missing excluded from denominator",
			[]Status{StatusOnTime, StatusMissing, StatusMissing},
			Stats{OnTime: 1, Late: 0, Total: 1, PunctualityRate: 100},
		},
		{
			"rounding",
			[]Status{StatusOnTime, StatusOnTime, StatusLate},
			Stats{OnTime: 2, Late: 1, Total: 3, PunctualityRate: 67},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeStats(tc.statuses)
			if got != tc.want {
				t.Errorf("ComputeStats() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestDeriveDayRows(t *testing.T) {
	roster := []RosterUser{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
		{ID: 3, Name: "Carol"},
	}
	recorded := map[uint]Status{
		1: StatusOnTime,
		3: StatusLate,
	}

	rows := DeriveDayRows(roster, recorded)
	if len(rows) != 3 {
		t.Fatalf("expected a row per roster member, got %d", len(rows))
	}
	if rows[0].Status != StatusOnTime {
		t.Errorf("Alice: got %s, want on_time", rows[0].Status)
	}
	if rows[1].Status != StatusMissing {
		t.Errorf("Bob has no record and must be missing, got %s", rows[1].Status)
	}
	if rows[2].Status != StatusLate {
		t.Errorf("Carol: got %s, want late", rows[2].Status)
	}
}
