package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment represents a patient's appointment with a doctor
type Appointment struct {
	ID              int64
	DoctorID        int64
	PatientID       int64
	AppointmentDate time.Time // начало приема (момент времени)
	DurationMinutes int
	Status          AppointmentStatus

	Reason *string
	Notes  *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment blocks slots and causes conflicts
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// EndTime returns the instant the appointment ends
func (a *Appointment) EndTime() time.Time {
	return a.AppointmentDate.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.IsActive()
}

// CanBeRescheduled returns true if the appointment time can be changed
func (a *Appointment) CanBeRescheduled() bool {
	return a.IsActive()
}

// IsParticipant returns true if the user is the patient or the doctor of the appointment
func (a *Appointment) IsParticipant(userID int64) bool {
	return a.PatientID == userID || a.DoctorID == userID
}

// IsActive returns true for SCHEDULED and CONFIRMED
func (s AppointmentStatus) IsActive() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// IsValid returns true if the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may change to next.
// COMPLETED and CANCELLED are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusScheduled:
		return next == StatusConfirmed || next == StatusCompleted || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// DoctorAppointmentsFilter фильтр для получения записей врача
type DoctorAppointmentsFilter struct {
	DoctorID        int64              // Обязательный параметр
	From            *time.Time         // Начало периода включительно (опционально)
	To              *time.Time         // Конец периода (опционально)
	ToExclusive     bool               // true - To не включается в период
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли COMPLETED и CANCELLED
}
