package create_appointment

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest проверяет входные данные и проставляет длительность по умолчанию
func validateRequest(req *Request) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patient_id must be positive", ErrInvalidInput)
	}
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctor_id must be positive", ErrInvalidInput)
	}
	if req.PatientID == req.DoctorID {
		return fmt.Errorf("%w: cannot book an appointment with yourself", ErrInvalidInput)
	}
	if req.AppointmentDate.IsZero() {
		return fmt.Errorf("%w: appointment_date is required", ErrInvalidInput)
	}
	if req.DurationMinutes < 0 || req.DurationMinutes > domain.MaxAppointmentDurationMinutes {
		return fmt.Errorf("%w: duration_minutes must be between 0 and %d", ErrInvalidInput, domain.MaxAppointmentDurationMinutes)
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	if req.DurationMinutes == 0 {
		req.DurationMinutes = domain.DefaultAppointmentDurationMinutes
	}

	return nil
}
