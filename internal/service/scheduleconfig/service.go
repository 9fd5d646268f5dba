package scheduleconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/SMC-AppointmentService/internal/service/scheduleconfig/models"
)

// Service сервис для работы с расписанием врачей
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// GetForDoctor получает действующее расписание врача
// Публичный метод. Приоритет: расписание врача > глобальное > встроенные значения
func (s *Service) GetForDoctor(ctx context.Context, doctorID int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetForDoctor: fetching config for doctor=%d", doctorID)

	if doctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	config, err := s.resolve(ctx, "GetForDoctor", doctorID)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainConfig(doctorID, config)
	s.logger.Info("GetForDoctor: doctor=%d uses %s config", doctorID, resp.Source)
	return resp, nil
}

// Upsert создает или обновляет собственное расписание врача
// Менять расписание может только сам врач
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: updating config for doctor=%d by user=%d", req.DoctorID, req.UserID)

	if req.UserID != req.DoctorID {
		s.logger.Warn("Upsert: user=%d is not doctor=%d", req.UserID, req.DoctorID)
		return nil, ErrAccessDenied
	}

	// Незаданные поля берем из действующего расписания
	current, err := s.resolve(ctx, "Upsert", req.DoctorID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = domain.DefaultScheduleConfig()
	}

	doctorID := req.DoctorID
	config := &domain.DoctorScheduleConfig{
		DoctorID:            &doctorID,
		WorkStartHour:       current.WorkStartHour,
		WorkEndHour:         current.WorkEndHour,
		SlotDurationMinutes: current.SlotDurationMinutes,
	}
	req.ApplyToConfig(config)

	if err := validateConfig(config); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.configRepo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("Upsert: repository error for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d for doctor=%d", saved.ID, req.DoctorID)
	return models.FromDomainConfig(req.DoctorID, saved), nil
}

// DeleteForDoctor удаляет собственное расписание врача, после чего действует глобальное
func (s *Service) DeleteForDoctor(ctx context.Context, doctorID, userID int64) error {
	s.logger.Info("DeleteForDoctor: deleting config for doctor=%d by user=%d", doctorID, userID)

	if userID != doctorID {
		s.logger.Warn("DeleteForDoctor: user=%d is not doctor=%d", userID, doctorID)
		return ErrAccessDenied
	}

	if err := s.configRepo.DeleteByDoctorID(ctx, doctorID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("DeleteForDoctor: doctor=%d has no own config", doctorID)
			return ErrConfigNotFound
		}
		s.logger.Error("DeleteForDoctor: repository error for doctor=%d: %v", doctorID, err)
		return fmt.Errorf("%w: DeleteForDoctor - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteForDoctor: successfully deleted config for doctor=%d", doctorID)
	return nil
}

// resolve возвращает nil, если расписание не найдено ни на одном уровне
func (s *Service) resolve(ctx context.Context, op string, doctorID int64) (*domain.DoctorScheduleConfig, error) {
	config, err := s.configRepo.GetConfigWithHierarchy(ctx, doctorID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return nil, nil
		}
		s.logger.Error("%s: repository error for doctor=%d: %v", op, doctorID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return config, nil
}
