package domain

// Default configuration values
const (
	DefaultWorkStartHour       = 9
	DefaultWorkEndHour         = 17
	DefaultSlotDurationMinutes = 30

	// DefaultAppointmentDurationMinutes используется, если длительность приема не указана
	DefaultAppointmentDurationMinutes = 30

	// ConflictBufferMinutes запас перед началом нового приема при проверке конфликтов
	ConflictBufferMinutes = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes        = 5
	MaxSlotDurationMinutes        = 480 // 8 hours
	MaxAppointmentDurationMinutes = 480
	MaxNotesLength                = 500
	MaxReasonLength               = 500
	MaxCancellationReasonLength   = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, которые блокируют слоты и вызывают конфликты
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
}

// InactiveStatuses статусы, которые никогда не блокируют слоты
var InactiveStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}
