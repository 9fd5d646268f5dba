package reschedule_appointment

import "time"

// Request модель запроса на перенос записи
type Request struct {
	UserID          int64     // Пациент или врач записи
	AppointmentID   int64     // ID записи
	AppointmentDate time.Time // Новое время начала
	DurationMinutes int       // Новая длительность, 0 - оставить прежнюю
}

// Response модель ответа с перенесенной записью
type Response struct {
	ID              int64
	DoctorID        int64
	PatientID       int64
	AppointmentDate time.Time
	DurationMinutes int
	Status          string
}
