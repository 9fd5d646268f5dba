package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/locker"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	scheduleConfigRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

const metricsOperation = "create"

// UseCase use case для записи пациента к врачу
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ScheduleConfigRepository
	userClient      UserServiceClient
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
	userClient UserServiceClient,
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
		userClient:      userClient,
		locker:          locker,
		lockTTL:         lockTTL,
		txManager:       txManager,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка конфликта и вставка выполняются под блокировкой расписания врача в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%d, doctor=%d, date=%s, duration=%d",
		req.PatientID, req.DoctorID, req.AppointmentDate.Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	start := req.AppointmentDate.In(uc.location)

	// 2. Прием должен быть в будущем
	if !start.After(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateAppointment: appointment date %s is in the past", start.Format(time.RFC3339))
		return nil, ErrAppointmentInPast
	}

	// 3. Проверяем врача
	doctor, err := uc.userClient.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, userservice.ErrDoctorNotFound) {
			uc.logger.Warn("CreateAppointment: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}
	if !doctor.IsAcceptingPatients {
		uc.logger.Warn("CreateAppointment: doctor id=%d is not accepting patients", req.DoctorID)
		return nil, ErrDoctorNotAccepting
	}

	// 4. Рабочие часы врача
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.DoctorID)
	if err != nil && !errors.Is(err, scheduleConfigRepo.ErrConfigNotFound) {
		uc.logger.Error("CreateAppointment: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}
	if config == nil {
		config = domain.DefaultScheduleConfig()
	}
	if !scheduling.WithinWorkingHours(start, scheduling.SlotConfigFrom(config)) {
		uc.logger.Warn("CreateAppointment: %s is outside %02d:00-%02d:00 for doctor=%d",
			scheduling.FormatHHMM(start), config.WorkStartHour, config.WorkEndHour, req.DoctorID)
		return nil, fmt.Errorf("%w: %s is outside %02d:00-%02d:00",
			ErrOutsideWorkingHours, scheduling.FormatHHMM(start), config.WorkStartHour, config.WorkEndHour)
	}

	// 5. Блокировка расписания врача
	release, ok := locker.LockDoctor(ctx, uc.locker, req.DoctorID, uc.lockTTL, uc.logger, "CreateAppointment")
	if !ok {
		return nil, ErrDoctorBusy
	}
	defer release()

	var result *domain.Appointment

	// 6. Проверка конфликта и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		from, to := scheduling.ConflictWindow(start, req.DurationMinutes)
		filter := domain.DoctorAppointmentsFilter{
			DoctorID:    req.DoctorID,
			From:        &from,
			To:          &to,
			ToExclusive: true,
		}

		existing, err := uc.appointmentRepo.GetByDoctorWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		if conflict := scheduling.FindConflict(req.DoctorID, start, req.DurationMinutes, existing, nil); conflict != nil {
			uc.logger.Warn("CreateAppointment: doctor=%d not available at %s, conflicts with appointment id=%d",
				req.DoctorID, start.Format(time.RFC3339), conflict.ID)
			return ErrDoctorNotAvailable
		}

		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			DoctorID:        req.DoctorID,
			PatientID:       req.PatientID,
			AppointmentDate: start,
			DurationMinutes: req.DurationMinutes,
			Status:          domain.StatusScheduled,
			Reason:          req.Reason,
			Notes:           req.Notes,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: doctor=%d slot %s taken concurrently", req.DoctorID, start.Format(time.RFC3339))
				return ErrDoctorNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrDoctorNotAvailable) {
			uc.metrics.RecordConflict(metricsOperation)
			return nil, ErrDoctorNotAvailable
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.RecordAppointmentCreated(metricsOperation)
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		DoctorID:        result.DoctorID,
		PatientID:       result.PatientID,
		AppointmentDate: result.AppointmentDate,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Reason:          result.Reason,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
