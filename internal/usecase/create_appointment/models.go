package create_appointment

import "time"

// Request модель запроса на запись к врачу
type Request struct {
	PatientID       int64     // ID пациента (из X-User-ID)
	DoctorID        int64     // ID врача
	AppointmentDate time.Time // Начало приема
	DurationMinutes int       // Длительность, 0 - по умолчанию (30 минут)
	Reason          *string   // Причина обращения (опционально)
	Notes           *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	DoctorID        int64
	PatientID       int64
	AppointmentDate time.Time
	DurationMinutes int
	Status          string
	Reason          *string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
