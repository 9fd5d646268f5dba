package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	rescheduleAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_appointment"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	AppointmentDate string `json:"appointmentDate" validate:"required"`
	DurationMinutes int    `json:"durationMinutes" validate:"gte=0,lte=480"` // 0 - оставить прежнюю
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID              int64  `json:"id"`
	DoctorID        int64  `json:"doctorId"`
	PatientID       int64  `json:"patientId"`
	AppointmentDate string `json:"appointmentDate"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(userID, appointmentID int64, loc *time.Location) (*rescheduleAppointment.Request, error) {
	start, err := handlers.ParseDateTime(r.AppointmentDate, loc)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		UserID:          userID,
		AppointmentID:   appointmentID,
		AppointmentDate: start,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response, loc *time.Location) *RescheduleResponse {
	start := resp.AppointmentDate.In(loc)
	return &RescheduleResponse{
		ID:              resp.ID,
		DoctorID:        resp.DoctorID,
		PatientID:       resp.PatientID,
		AppointmentDate: start.Format(time.RFC3339),
		Date:            start.Format(domain.DateFormat),
		StartTime:       scheduling.FormatHHMM(start),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
	}
}
