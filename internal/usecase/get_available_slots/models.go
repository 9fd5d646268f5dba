package get_available_slots

import "time"

// Request модель запроса на получение свободных слотов врача
type Request struct {
	UserID   int64     // ID пользователя (для логирования, не влияет на результат)
	DoctorID int64     // ID врача
	Date     time.Time // Календарный день, время суток игнорируется
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date                time.Time // Начало запрошенного дня в часовом поясе клиники
	DoctorID            int64
	SlotDurationMinutes int
	Slots               []Slot
}

// Slot модель временного слота
type Slot struct {
	Start     time.Time
	End       time.Time
	Label     string // "HH:MM"
	Available bool
}
