package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrAppointmentInPast возвращается, когда время приема уже прошло
	ErrAppointmentInPast = errors.New("create_appointment: appointment time is in the past")

	// ErrOutsideWorkingHours возвращается, когда прием не помещается в рабочие часы врача
	ErrOutsideWorkingHours = errors.New("create_appointment: appointment is outside doctor's working hours")

	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("create_appointment: doctor not found")

	// ErrDoctorNotAccepting возвращается, когда врач не принимает новых пациентов
	ErrDoctorNotAccepting = errors.New("create_appointment: doctor is not accepting patients")

	// ErrDoctorBusy возвращается, когда расписание врача сейчас изменяется другим запросом
	ErrDoctorBusy = errors.New("create_appointment: doctor's schedule is being modified, retry later")

	// ErrDoctorNotAvailable возвращается, когда время пересекается с другой записью врача
	ErrDoctorNotAvailable = errors.New("create_appointment: doctor not available at this time")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
