package domain

import "time"

// DoctorScheduleConfig represents the working-hours grid of a doctor
// Supports a two-level hierarchy:
// 1. Doctor-specific (doctor_id)
// 2. Clinic-wide default (NULL)
type DoctorScheduleConfig struct {
	ID                  int64
	DoctorID            *int64 // NULL = default for all doctors
	WorkStartHour       int
	WorkEndHour         int
	SlotDurationMinutes int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsGlobalConfig returns true if this is the clinic-wide default
func (c *DoctorScheduleConfig) IsGlobalConfig() bool {
	return c.DoctorID == nil
}

// WorkingMinutes returns the length of the working window in minutes
func (c *DoctorScheduleConfig) WorkingMinutes() int {
	return (c.WorkEndHour - c.WorkStartHour) * 60
}

// DefaultScheduleConfig returns the built-in working grid (09:00-17:00, 30 min)
func DefaultScheduleConfig() *DoctorScheduleConfig {
	return &DoctorScheduleConfig{
		WorkStartHour:       DefaultWorkStartHour,
		WorkEndHour:         DefaultWorkEndHour,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
	}
}
