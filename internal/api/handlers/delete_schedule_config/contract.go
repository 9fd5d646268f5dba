package delete_schedule_config

import "context"

type ScheduleConfigService interface {
	DeleteForDoctor(ctx context.Context, doctorID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
