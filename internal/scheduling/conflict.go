package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// HasConflict сообщает, пересекается ли предлагаемый прием врача doctorID с одной из существующих записей
//
// Учитываются только активные записи (SCHEDULED, CONFIRMED) того же врача, кроме excludeAppointmentID
// (используется при переносе, чтобы запись не конфликтовала сама с собой).
// Длительность <= 0 заменяется на 30 минут.
//
// Запись конфликтует, если она начинается раньше конца нового приема и не раньше,
// чем за ConflictBufferMinutes до его начала. Буфер односторонний: запись, начавшаяся
// больше чем за 30 минут до нового приема, не считается конфликтом, даже если еще не закончилась.
func HasConflict(
	doctorID int64,
	proposedStart time.Time,
	proposedDurationMinutes int,
	existing []*domain.Appointment,
	excludeAppointmentID *int64,
) bool {
	return FindConflict(doctorID, proposedStart, proposedDurationMinutes, existing, excludeAppointmentID) != nil
}

// FindConflict как HasConflict, но возвращает первую конфликтующую запись (или nil)
func FindConflict(
	doctorID int64,
	proposedStart time.Time,
	proposedDurationMinutes int,
	existing []*domain.Appointment,
	excludeAppointmentID *int64,
) *domain.Appointment {
	from, to := ConflictWindow(proposedStart, proposedDurationMinutes)

	for _, candidate := range existing {
		if candidate == nil || !candidate.IsActive() {
			continue
		}
		if candidate.DoctorID != doctorID {
			continue
		}
		if excludeAppointmentID != nil && candidate.ID == *excludeAppointmentID {
			continue
		}

		if candidate.AppointmentDate.Before(to) && !candidate.AppointmentDate.Before(from) {
			return candidate
		}
	}

	return nil
}

// ConflictWindow возвращает полуинтервал [from, to) времен начала записей, которые конфликтуют
// с приемом proposedStart длительностью durationMinutes. Используется и для выборки из БД.
func ConflictWindow(proposedStart time.Time, durationMinutes int) (from, to time.Time) {
	if durationMinutes <= 0 {
		durationMinutes = domain.DefaultAppointmentDurationMinutes
	}
	return proposedStart.Add(-minutes(domain.ConflictBufferMinutes)), proposedStart.Add(minutes(durationMinutes))
}
