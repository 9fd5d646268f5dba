package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректная дата приема, ожидается RFC 3339 или YYYY-MM-DDTHH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgDoctorNotAvailable  = "врач занят в выбранное время"
	msgDoctorBusy          = "расписание врача сейчас изменяется, повторите попытку"
	msgDoctorNotFound      = "врач не найден"
	msgDoctorNotAccepting  = "врач не принимает пациентов"
	msgAppointmentInPast   = "нельзя записаться на прошедшее время"
	msgOutsideWorkingHours = "время приема вне рабочих часов врача"
	msgInvalidInput        = "некорректные данные записи"
)

type Handler struct {
	useCase  CreateAppointmentUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateAppointmentUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("POST /appointments - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput+": "+handlers.ValidationMessage(err))
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(patientID, h.location)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrDoctorNotAvailable):
			h.logger.Warn("POST /appointments - Doctor not available: patient_id=%d, doctor_id=%d", patientID, req.DoctorID)
			handlers.RespondConflict(w, msgDoctorNotAvailable)

		case errors.Is(err, createAppointment.ErrDoctorBusy):
			h.logger.Warn("POST /appointments - Doctor schedule is locked: doctor_id=%d", req.DoctorID)
			handlers.RespondConflict(w, msgDoctorBusy)

		case errors.Is(err, createAppointment.ErrDoctorNotFound):
			h.logger.Warn("POST /appointments - Doctor not found: doctor_id=%d", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, createAppointment.ErrDoctorNotAccepting):
			h.logger.Warn("POST /appointments - Doctor not accepting: doctor_id=%d", req.DoctorID)
			handlers.RespondBadRequest(w, msgDoctorNotAccepting)

		case errors.Is(err, createAppointment.ErrAppointmentInPast):
			h.logger.Warn("POST /appointments - Appointment in past: patient_id=%d", patientID)
			handlers.RespondBadRequest(w, msgAppointmentInPast)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: doctor_id=%d", req.DoctorID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: patient_id=%d, doctor_id=%d, error=%v",
				patientID, req.DoctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, patient_id=%d, doctor_id=%d",
		result.ID, patientID, req.DoctorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
