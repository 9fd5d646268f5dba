package reschedule_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда пользователь не является участником записи
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrCannotReschedule возвращается для завершенных и отмененных записей
	ErrCannotReschedule = errors.New("reschedule_appointment: only active appointments can be rescheduled")

	// ErrAppointmentInPast возвращается, когда новое время уже прошло
	ErrAppointmentInPast = errors.New("reschedule_appointment: appointment time is in the past")

	// ErrOutsideWorkingHours возвращается, когда прием не помещается в рабочие часы врача
	ErrOutsideWorkingHours = errors.New("reschedule_appointment: appointment is outside doctor's working hours")

	// ErrDoctorBusy возвращается, когда расписание врача сейчас изменяется другим запросом
	ErrDoctorBusy = errors.New("reschedule_appointment: doctor's schedule is being modified, retry later")

	// ErrDoctorNotAvailable возвращается, когда новое время пересекается с другой записью врача
	ErrDoctorNotAvailable = errors.New("reschedule_appointment: doctor not available at this time")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
