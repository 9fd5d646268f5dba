package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// FormatHHMM returns the zero-padded 24-hour "HH:MM" label of t in its own location
func FormatHHMM(t time.Time) string {
	return t.Format(domain.TimeFormat)
}

// StartOfDay returns 00:00:00.000000000 of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999999999 of t's calendar day in t's location
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// IsSameDay reports whether a and b fall on the same calendar day in a's location
func IsSameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast reports whether date's calendar day is before now's calendar day
func IsDateInPast(date, now time.Time) bool {
	return StartOfDay(date).Before(StartOfDay(now.In(date.Location())))
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
