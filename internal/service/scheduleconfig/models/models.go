package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Источник, из которого получено расписание
const (
	SourceDoctor  = "doctor"
	SourceGlobal  = "global"
	SourceDefault = "default"
)

// Request модели

// UpsertConfigRequest запрос на создание или обновление расписания врача
// Незаданные поля берутся из текущего действующего расписания
type UpsertConfigRequest struct {
	UserID              int64 `json:"userId"`
	DoctorID            int64 `json:"doctorId"`
	WorkStartHour       *int  `json:"workStartHour,omitempty"`
	WorkEndHour         *int  `json:"workEndHour,omitempty"`
	SlotDurationMinutes *int  `json:"slotDurationMinutes,omitempty"`
}

// ApplyToConfig применяет изменения к конфигурации
func (r *UpsertConfigRequest) ApplyToConfig(config *domain.DoctorScheduleConfig) {
	if r.WorkStartHour != nil {
		config.WorkStartHour = *r.WorkStartHour
	}
	if r.WorkEndHour != nil {
		config.WorkEndHour = *r.WorkEndHour
	}
	if r.SlotDurationMinutes != nil {
		config.SlotDurationMinutes = *r.SlotDurationMinutes
	}
}

// Response модели

// ConfigResponse ответ с расписанием врача
type ConfigResponse struct {
	ID                  int64      `json:"id,omitempty"`
	DoctorID            int64      `json:"doctorId"`
	WorkStartHour       int        `json:"workStartHour"`
	WorkEndHour         int        `json:"workEndHour"`
	SlotDurationMinutes int        `json:"slotDurationMinutes"`
	Source              string     `json:"source"` // doctor, global или default
	CreatedAt           *time.Time `json:"createdAt,omitempty"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainConfig конвертирует domain модель в DTO
// config == nil означает встроенные значения по умолчанию
func FromDomainConfig(doctorID int64, config *domain.DoctorScheduleConfig) *ConfigResponse {
	if config == nil {
		def := domain.DefaultScheduleConfig()
		return &ConfigResponse{
			DoctorID:            doctorID,
			WorkStartHour:       def.WorkStartHour,
			WorkEndHour:         def.WorkEndHour,
			SlotDurationMinutes: def.SlotDurationMinutes,
			Source:              SourceDefault,
		}
	}

	resp := &ConfigResponse{
		ID:                  config.ID,
		DoctorID:            doctorID,
		WorkStartHour:       config.WorkStartHour,
		WorkEndHour:         config.WorkEndHour,
		SlotDurationMinutes: config.SlotDurationMinutes,
		Source:              SourceDoctor,
	}
	if config.IsGlobalConfig() {
		resp.Source = SourceGlobal
	}
	if !config.CreatedAt.IsZero() {
		resp.CreatedAt = &config.CreatedAt
	}
	if !config.UpdatedAt.IsZero() {
		resp.UpdatedAt = &config.UpdatedAt
	}

	return resp
}
