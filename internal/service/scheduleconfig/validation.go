package scheduleconfig

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateConfig проверяет бизнес-ограничения расписания
func validateConfig(c *domain.DoctorScheduleConfig) error {
	if c.WorkStartHour < 0 || c.WorkStartHour > 23 {
		return fmt.Errorf("%w: work start hour must be between 0 and 23", ErrInvalidInput)
	}

	if c.WorkEndHour < 1 || c.WorkEndHour > 24 {
		return fmt.Errorf("%w: work end hour must be between 1 and 24", ErrInvalidInput)
	}

	if c.WorkStartHour >= c.WorkEndHour {
		return fmt.Errorf("%w: work start hour must be before work end hour", ErrInvalidInput)
	}

	if c.SlotDurationMinutes < domain.MinSlotDurationMinutes || c.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if c.SlotDurationMinutes > c.WorkingMinutes() {
		return fmt.Errorf("%w: slot duration must not exceed working hours", ErrInvalidInput)
	}

	return nil
}
