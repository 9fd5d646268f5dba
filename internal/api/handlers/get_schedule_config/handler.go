package get_schedule_config

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const msgInvalidDoctorID = "некорректный ID врача"

type Handler struct {
	service ScheduleConfigService
	logger  Logger
}

func NewHandler(service ScheduleConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/schedule-config
// Публичный маршрут, всегда возвращает действующее расписание
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathInt64(r, "doctorId")
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/schedule-config - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	config, err := h.service.GetForDoctor(r.Context(), doctorID)
	if err != nil {
		h.logger.Error("GET /doctors/{id}/schedule-config - Failed to get config: doctor_id=%d, error=%v", doctorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctors/{id}/schedule-config - Config retrieved successfully: doctor_id=%d, source=%s",
		doctorID, config.Source)
	handlers.RespondJSON(w, http.StatusOK, config)
}
