package domain

import "time"

// TimeSlot represents a bookable time interval produced by the slot generator
// It is never persisted
type TimeSlot struct {
	Start     time.Time
	End       time.Time
	Label     string // "HH:MM"
	Available bool
}

// DurationMinutes returns the slot length in minutes
func (s *TimeSlot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}
