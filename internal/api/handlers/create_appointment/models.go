package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	DoctorID        int64   `json:"doctorId" validate:"required,gt=0"`
	AppointmentDate string  `json:"appointmentDate" validate:"required"` // RFC 3339 или "2026-03-02T10:00"
	DurationMinutes int     `json:"durationMinutes" validate:"gte=0,lte=480"`
	Reason          *string `json:"reason,omitempty" validate:"omitempty,max=500"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	DoctorID        int64   `json:"doctorId"`
	PatientID       int64   `json:"patientId"`
	AppointmentDate string  `json:"appointmentDate"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Reason          *string `json:"reason,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(patientID int64, loc *time.Location) (*createAppointment.Request, error) {
	start, err := handlers.ParseDateTime(r.AppointmentDate, loc)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		PatientID:       patientID,
		DoctorID:        r.DoctorID,
		AppointmentDate: start,
		DurationMinutes: r.DurationMinutes,
		Reason:          r.Reason,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response, loc *time.Location) *AppointmentResponse {
	start := resp.AppointmentDate.In(loc)
	return &AppointmentResponse{
		ID:              resp.ID,
		DoctorID:        resp.DoctorID,
		PatientID:       resp.PatientID,
		AppointmentDate: start.Format(time.RFC3339),
		Date:            start.Format(domain.DateFormat),
		StartTime:       scheduling.FormatHHMM(start),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Reason:          resp.Reason,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
