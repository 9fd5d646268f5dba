package update_schedule_config

import "github.com/m04kA/SMC-AppointmentService/internal/service/scheduleconfig/models"

// UpdateConfigRequest HTTP request model, незаданные поля не меняются
type UpdateConfigRequest struct {
	WorkStartHour       *int `json:"workStartHour,omitempty" validate:"omitempty,gte=0,lte=23"`
	WorkEndHour         *int `json:"workEndHour,omitempty" validate:"omitempty,gte=1,lte=24"`
	SlotDurationMinutes *int `json:"slotDurationMinutes,omitempty" validate:"omitempty,gte=5,lte=480"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateConfigRequest) ToServiceRequest(userID, doctorID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:              userID,
		DoctorID:            doctorID,
		WorkStartHour:       r.WorkStartHour,
		WorkEndHour:         r.WorkEndHour,
		SlotDurationMinutes: r.SlotDurationMinutes,
	}
}
