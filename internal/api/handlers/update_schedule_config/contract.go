package update_schedule_config

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/scheduleconfig/models"
)

type ScheduleConfigService interface {
	Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
