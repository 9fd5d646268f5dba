package scheduleconfig

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ConfigRepository интерфейс репозитория расписаний врачей
type ConfigRepository interface {
	GetByDoctorID(ctx context.Context, doctorID *int64) (*domain.DoctorScheduleConfig, error)
	GetConfigWithHierarchy(ctx context.Context, doctorID int64) (*domain.DoctorScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.DoctorScheduleConfig) (*domain.DoctorScheduleConfig, error)
	DeleteByDoctorID(ctx context.Context, doctorID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
