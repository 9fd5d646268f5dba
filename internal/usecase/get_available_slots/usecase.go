package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleConfigRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// UseCase use case для получения свободных слотов врача
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ScheduleConfigRepository
	userClient      UserServiceClient
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ScheduleConfigRepository,
	userClient UserServiceClient,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		userClient:      userClient,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, doctor=%d, date=%s",
		req.UserID, req.DoctorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. День в часовом поясе клиники
	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, uc.location)
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Проверяем врача (при недоступности UserService показываем слоты без проверки)
	doctor, err := uc.userClient.GetDoctorWithGracefulDegradation(ctx, req.DoctorID)
	switch {
	case errors.Is(err, userservice.ErrDoctorNotFound):
		uc.logger.Warn("GetAvailableSlots: doctor id=%d not found", req.DoctorID)
		return nil, ErrDoctorNotFound
	case errors.Is(err, userservice.ErrServiceDegraded):
		uc.logger.Warn("GetAvailableSlots: skipping doctor check for id=%d: %v", req.DoctorID, err)
	case err != nil:
		uc.logger.Error("GetAvailableSlots: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 4. Дата не должна быть в прошлом
	if scheduling.IsDateInPast(date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 5. Получаем расписание врача с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.DoctorID)
	if err != nil && !errors.Is(err, scheduleConfigRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = domain.DefaultScheduleConfig()
		uc.logger.Info("GetAvailableSlots: using default config for doctor=%d", req.DoctorID)
	} else {
		uc.logger.Info("GetAvailableSlots: using config id=%d", config.ID)
	}

	response := &Response{
		Date:                date,
		DoctorID:            req.DoctorID,
		SlotDurationMinutes: config.SlotDurationMinutes,
		Slots:               []Slot{},
	}

	if doctor != nil && !doctor.IsAcceptingPatients {
		uc.logger.Info("GetAvailableSlots: doctor id=%d is not accepting patients", req.DoctorID)
		return response, nil
	}

	// 6. Получаем активные записи врача на этот день
	from, to := scheduling.StartOfDay(date), scheduling.EndOfDay(date)
	filter := domain.DoctorAppointmentsFilter{
		DoctorID:        req.DoctorID,
		From:            &from,
		To:              &to,
		IncludeInactive: false, // Только активные записи
	}

	appointments, err := uc.appointmentRepo.GetByDoctorWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 7. Генерируем слоты
	timeSlots := scheduling.GenerateSlots(date, appointments, scheduling.SlotConfigFrom(config), now)
	for _, s := range timeSlots {
		response.Slots = append(response.Slots, Slot{
			Start:     s.Start,
			End:       s.End,
			Label:     s.Label,
			Available: s.Available,
		})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for doctor=%d, date=%s (%d active appointments)",
		len(response.Slots), req.DoctorID, date.Format(domain.DateFormat), len(appointments))

	return response, nil
}
