package userservice

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врача с таким ID нет (или пользователь не врач)
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что UserService недоступен и проверку врача можно пропустить
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
