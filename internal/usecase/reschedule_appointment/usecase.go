package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/locker"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	scheduleConfigRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

const metricsOperation = "reschedule"

// UseCase use case для переноса записи на другое время
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ScheduleConfigRepository
	locker          Locker
	lockTTL         time.Duration
	txManager       TransactionManager
	metrics         MetricsRecorder
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ScheduleConfigRepository,
	locker Locker,
	lockTTL time.Duration,
	txManager TransactionManager,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		locker:          locker,
		lockTTL:         lockTTL,
		txManager:       txManager,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переносит запись
// Сама переносимая запись исключается из проверки конфликтов, поэтому перенос на то же время успешен.
// Подтвержденная запись после переноса снова становится SCHEDULED.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: user=%d, appointment=%d, date=%s, duration=%d",
		req.UserID, req.AppointmentID, req.AppointmentDate.Format(time.RFC3339), req.DurationMinutes)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	current, err := uc.loadForUpdate(ctx, req)
	if err != nil {
		return nil, err
	}

	start := req.AppointmentDate.In(uc.location)
	duration := req.DurationMinutes
	if duration == 0 {
		duration = current.DurationMinutes
	}

	if !start.After(uc.timeProvider.Now()) {
		uc.logger.Warn("RescheduleAppointment: new date %s is in the past", start.Format(time.RFC3339))
		return nil, ErrAppointmentInPast
	}

	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, current.DoctorID)
	if err != nil && !errors.Is(err, scheduleConfigRepo.ErrConfigNotFound) {
		uc.logger.Error("RescheduleAppointment: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}
	if config == nil {
		config = domain.DefaultScheduleConfig()
	}
	if !scheduling.WithinWorkingHours(start, scheduling.SlotConfigFrom(config)) {
		uc.logger.Warn("RescheduleAppointment: %s is outside %02d:00-%02d:00 for doctor=%d",
			scheduling.FormatHHMM(start), config.WorkStartHour, config.WorkEndHour, current.DoctorID)
		return nil, fmt.Errorf("%w: %s is outside %02d:00-%02d:00",
			ErrOutsideWorkingHours, scheduling.FormatHHMM(start), config.WorkStartHour, config.WorkEndHour)
	}

	release, ok := locker.LockDoctor(ctx, uc.locker, current.DoctorID, uc.lockTTL, uc.logger, "RescheduleAppointment")
	if !ok {
		return nil, ErrDoctorBusy
	}
	defer release()

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перечитываем запись под блокировкой строки
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}
		if !appointment.CanBeRescheduled() {
			return ErrCannotReschedule
		}

		from, to := scheduling.ConflictWindow(start, duration)
		existing, err := uc.appointmentRepo.GetByDoctorWithFilter(txCtx, domain.DoctorAppointmentsFilter{
			DoctorID:    appointment.DoctorID,
			From:        &from,
			To:          &to,
			ToExclusive: true,
		})
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		if conflict := scheduling.FindConflict(appointment.DoctorID, start, duration, existing, &appointment.ID); conflict != nil {
			uc.logger.Warn("RescheduleAppointment: doctor=%d not available at %s, conflicts with appointment id=%d",
				appointment.DoctorID, start.Format(time.RFC3339), conflict.ID)
			return ErrDoctorNotAvailable
		}

		status := appointment.Status
		if status == domain.StatusConfirmed {
			status = domain.StatusScheduled
		}

		if err := uc.appointmentRepo.Reschedule(txCtx, appointment.ID, start, duration, status); err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrDoctorNotAvailable
			}
			uc.logger.Error("RescheduleAppointment: failed to update appointment: %v", err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		appointment.AppointmentDate = start
		appointment.DurationMinutes = duration
		appointment.Status = status
		result = appointment
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrDoctorNotAvailable):
			uc.metrics.RecordConflict(metricsOperation)
			return nil, ErrDoctorNotAvailable
		case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrCannotReschedule), errors.Is(err, ErrInternal):
			return nil, err
		}
		uc.logger.Error("RescheduleAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to %s", result.ID, start.Format(time.RFC3339))

	return &Response{
		ID:              result.ID,
		DoctorID:        result.DoctorID,
		PatientID:       result.PatientID,
		AppointmentDate: result.AppointmentDate,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
	}, nil
}

// loadForUpdate находит запись и проверяет права пользователя и статус
func (uc *UseCase) loadForUpdate(ctx context.Context, req *Request) (*domain.Appointment, error) {
	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if !appointment.IsParticipant(req.UserID) {
		uc.logger.Warn("RescheduleAppointment: user=%d is not a participant of appointment id=%d", req.UserID, req.AppointmentID)
		return nil, ErrAccessDenied
	}

	if !appointment.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d has status %s", appointment.ID, appointment.Status)
		return nil, ErrCannotReschedule
	}

	return appointment, nil
}
