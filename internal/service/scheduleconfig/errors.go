package scheduleconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда у врача нет собственного расписания
	ErrConfigNotFound = errors.New("config not found")

	// ErrAccessDenied возвращается, когда пользователь меняет чужое расписание
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
