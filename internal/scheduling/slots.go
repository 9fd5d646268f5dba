package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SlotConfig working-hours grid used by GenerateSlots
type SlotConfig struct {
	WorkStartHour       int
	WorkEndHour         int
	SlotDurationMinutes int
}

// DefaultSlotConfig 09:00-17:00 with 30 minute slots
func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		WorkStartHour:       domain.DefaultWorkStartHour,
		WorkEndHour:         domain.DefaultWorkEndHour,
		SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
	}
}

// SlotConfigFrom converts a persisted doctor config; nil gives the defaults
func SlotConfigFrom(cfg *domain.DoctorScheduleConfig) SlotConfig {
	if cfg == nil {
		return DefaultSlotConfig()
	}
	return SlotConfig{
		WorkStartHour:       cfg.WorkStartHour,
		WorkEndHour:         cfg.WorkEndHour,
		SlotDurationMinutes: cfg.SlotDurationMinutes,
	}
}

func (c SlotConfig) withDefaults() SlotConfig {
	if c == (SlotConfig{}) {
		return DefaultSlotConfig()
	}
	if c.SlotDurationMinutes <= 0 {
		c.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	return c
}

// GenerateSlots возвращает свободные слоты на календарный день date
//
// Слоты идут с шагом SlotDurationMinutes от WorkStartHour (включительно) до WorkEndHour (не включительно)
// в часовом поясе date. Слот пропускается, если:
//   - время начала какой-либо активной записи в формате "HH:MM" совпадает с меткой слота.
//     Сравнение точное, а не по пересечению интервалов: запись 10:00 на 45 минут не закрывает слот 10:30;
//   - date - сегодняшний день, и начало слота не строго позже now.
//
// Возвращаемые слоты упорядочены по времени и всегда Available = true.
// Время суток в date игнорируется.
func GenerateSlots(date time.Time, existing []*domain.Appointment, cfg SlotConfig, now time.Time) []domain.TimeSlot {
	cfg = cfg.withDefaults()
	loc := date.Location()
	day := StartOfDay(date)

	booked := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		if a == nil || !a.IsActive() {
			continue
		}
		booked[FormatHHMM(a.AppointmentDate.In(loc))] = struct{}{}
	}

	today := IsSameDay(date, now)
	step := minutes(cfg.SlotDurationMinutes)
	y, m, d := day.Date()

	// Кандидаты строятся по настенному времени: в дни перехода на летнее/зимнее время
	// шаг по реальному времени повторил бы или пропустил метки
	slots := make([]domain.TimeSlot, 0)
	var prev time.Time
	for wall := cfg.WorkStartHour * 60; wall < cfg.WorkEndHour*60; wall += cfg.SlotDurationMinutes {
		candidate := time.Date(y, m, d, 0, wall, 0, 0, loc)
		// несуществующее время (весенний переход) нормализуется и может совпасть с уже выданным слотом
		if !prev.IsZero() && !candidate.After(prev) {
			continue
		}
		prev = candidate

		label := FormatHHMM(candidate)

		if _, taken := booked[label]; taken {
			continue
		}
		if today && !candidate.After(now) {
			continue
		}

		slots = append(slots, domain.TimeSlot{
			Start:     candidate,
			End:       candidate.Add(step),
			Label:     label,
			Available: true,
		})
	}

	return slots
}

// WithinWorkingHours reports whether start's wall-clock time lies in [WorkStartHour, WorkEndHour)
// Only the start is bounded, the same way GenerateSlots bounds its candidates.
// start must already be in the clinic location.
func WithinWorkingHours(start time.Time, cfg SlotConfig) bool {
	cfg = cfg.withDefaults()
	wall := start.Hour()*60 + start.Minute()
	return wall >= cfg.WorkStartHour*60 && wall < cfg.WorkEndHour*60
}
