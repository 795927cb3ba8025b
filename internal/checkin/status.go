package checkin

import (
	"math"
	"time"
)

// Status classifies a check-in relative to the cutoff. StatusMissing is
// derived for listings only and never persisted.
type Status string

const (
	StatusOnTime  Status = "on_time"
	StatusLate    Status = "late"
	StatusMissing Status = "missing"
)

// DefaultCutoff is used when no cutoff was configured yet, or when an
// invalid value reaches the classifier.
const DefaultCutoff = "08:00"

// ValidCutoff reports whether s is a 24-hour HH:mm string.
func ValidCutoff(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

// Classify maps a capture instant to on_time or late against an HH:mm
// cutoff. The comparison happens in the record's own time zone, not the
// caller's; an unrecognized zone falls back to the system zone so the
// function always returns a value. The minute boundary is inclusive:
// 08:00 against cutoff 08:00 is on time.
func Classify(capturedAt time.Time, timezone string, cutoff string) Status {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.Local
	}
	local := capturedAt.In(loc)

	cut, err := time.Parse("15:04", cutoff)
	if err != nil {
		cut, _ = time.Parse("15:04", DefaultCutoff)
	}

	if local.Hour() < cut.Hour() {
		return StatusOnTime
	}
	if local.Hour() == cut.Hour() && local.Minute() <= cut.Minute() {
		return StatusOnTime
	}
	return StatusLate
}

// DayOf returns the calendar day (YYYY-MM-DD) of an instant in the given
// zone, with the same system-zone fallback as Classify. The daily gate and
// the stored day key must both derive from this, so "today" never depends on
// the server's zone.
func DayOf(instant time.Time, timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.Local
	}
	return instant.In(loc).Format("2006-01-02")
}

// RosterUser is one worker expected to check in.
type RosterUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// DayRow is one roster member's state for a selected day.
type DayRow struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Status Status `json:"status"`
}

// DeriveDayRows joins the roster against the day's recorded statuses. Any
// roster member without a record is Missing, never Late.
func DeriveDayRows(roster []RosterUser, recorded map[uint]Status) []DayRow {
	rows := make([]DayRow, 0, len(roster))
	for _, u := range roster {
		status, ok := recorded[u.ID]
		if !ok {
			status = StatusMissing
		}
		rows = append(rows, DayRow{UserID: u.ID, Name: u.Name, Status: status})
	}
	return rows
}

// Stats are derived punctuality metrics over a period. Missing days are
// excluded from the denominator.
type Stats struct {
	OnTime          int `json:"on_time"`
	Late            int `json:"late"`
	Total           int `json:"total"`
	PunctualityRate int `json:"punctuality_rate"` // 0-100
}

// ComputeStats aggregates statuses into punctuality metrics. A zero total
// yields rate 0, not a division fault.
func ComputeStats(statuses []Status) Stats {
	var s Stats
	for _, st := range statuses {
		switch st {
		case StatusOnTime:
			s.OnTime++
		case StatusLate:
			s.Late++
		}
	}
	s.Total = s.OnTime + s.Late
	if s.Total > 0 {
		s.PunctualityRate = int(math.Round(float64(s.OnTime) / float64(s.Total) * 100))
	}
	return s
}
