package scheduleconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "doctor_schedule_config"

var columns = []string{
	"id",
	"doctor_id",
	"work_start_hour",
	"work_end_hour",
	"slot_duration_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с расписанием врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDoctorID получает конфигурацию конкретного врача
// doctorID == nil - глобальная конфигурация клиники
func (r *Repository) GetByDoctorID(ctx context.Context, doctorID *int64) (*domain.DoctorScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	// Фильтрация по doctor_id (NULL или конкретное значение)
	if doctorID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"doctor_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"doctor_id": *doctorID})
	}

	query, args, err := selectBuilder.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorID - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.DoctorScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.DoctorID,
		&config.WorkStartHour,
		&config.WorkEndHour,
		&config.SlotDurationMinutes,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorID - scan config: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// 1. Конфигурация конкретного врача
// 2. Глобальная конфигурация клиники (doctor_id IS NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, doctorID int64) (*domain.DoctorScheduleConfig, error) {
	config, err := r.GetByDoctorID(ctx, &doctorID)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - doctor level: %v", ErrExecQuery, err)
	}

	config, err = r.GetByDoctorID(ctx, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - global level: %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// Upsert создает или обновляет конфигурацию врача
func (r *Repository) Upsert(ctx context.Context, config *domain.DoctorScheduleConfig) (*domain.DoctorScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("doctor_id", "work_start_hour", "work_end_hour", "slot_duration_minutes").
		Values(config.DoctorID, config.WorkStartHour, config.WorkEndHour, config.SlotDurationMinutes).
		Suffix(`ON CONFLICT (doctor_id) WHERE doctor_id IS NOT NULL DO UPDATE SET
			work_start_hour = EXCLUDED.work_start_hour,
			work_end_hour = EXCLUDED.work_end_hour,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// DeleteByDoctorID удаляет конфигурацию врача, после чего применяется глобальная
func (r *Repository) DeleteByDoctorID(ctx context.Context, doctorID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"doctor_id": doctorID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByDoctorID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByDoctorID - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByDoctorID - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}
