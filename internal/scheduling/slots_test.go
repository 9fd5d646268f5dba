package scheduling

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func labels(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Label)
	}
	return out
}

func appointmentAt(id, doctorID int64, start time.Time, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		DoctorID:        doctorID,
		PatientID:       100 + id,
		AppointmentDate: start,
		DurationMinutes: 30,
		Status:          status,
	}
}

func TestGenerateSlots_FullDayDefaults(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	slots := GenerateSlots(date, nil, SlotConfig{}, now)

	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0].Label)
	assert.Equal(t, "16:30", slots[len(slots)-1].Label)
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.Equal(t, 30, s.DurationMinutes())
	}
}

func TestGenerateSlots_ExcludesExactlyMatchingActiveAppointments(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	existing := []*domain.Appointment{
		appointmentAt(1, 7, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), domain.StatusConfirmed),
		appointmentAt(2, 7, time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC), domain.StatusCancelled),
		appointmentAt(3, 7, time.Date(2026, 3, 2, 12, 15, 0, 0, time.UTC), domain.StatusScheduled),
	}

	slots := GenerateSlots(date, existing, DefaultSlotConfig(), now)
	got := labels(slots)

	require.Len(t, slots, 15)
	assert.NotContains(t, got, "10:00")
	assert.Contains(t, got, "10:30")
	// cancelled appointment does not occupy its slot
	assert.Contains(t, got, "11:00")
	// off-grid appointment does not occlude neighbours
	assert.Contains(t, got, "12:00")
	assert.Contains(t, got, "12:30")
}

func TestGenerateSlots_LongAppointmentOccludesOnlyItsStart(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	long := appointmentAt(1, 7, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), domain.StatusScheduled)
	long.DurationMinutes = 90

	got := labels(GenerateSlots(date, []*domain.Appointment{long}, DefaultSlotConfig(), now))

	assert.NotContains(t, got, "10:00")
	assert.Contains(t, got, "10:30")
	assert.Contains(t, got, "11:00")
}

func TestGenerateSlots_TodayDropsSlotsNotAfterNow(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("between slots", func(t *testing.T) {
		now := time.Date(2026, 3, 2, 13, 10, 0, 0, time.UTC)
		slots := GenerateSlots(date, nil, DefaultSlotConfig(), now)

		require.NotEmpty(t, slots)
		assert.Equal(t, "13:30", slots[0].Label)
		for _, s := range slots {
			assert.True(t, s.Start.After(now))
		}
	})

	t.Run("exactly on a slot boundary", func(t *testing.T) {
		now := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
		slots := GenerateSlots(date, nil, DefaultSlotConfig(), now)

		require.NotEmpty(t, slots)
		assert.Equal(t, "13:30", slots[0].Label)
	})

	t.Run("after working hours", func(t *testing.T) {
		now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
		assert.Empty(t, GenerateSlots(date, nil, DefaultSlotConfig(), now))
	})
}

func TestGenerateSlots_CustomConfig(t *testing.T) {
	date := time.Date(2026, 3, 2, 15, 45, 0, 0, time.UTC)
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	cfg := SlotConfig{WorkStartHour: 8, WorkEndHour: 10, SlotDurationMinutes: 45}
	got := labels(GenerateSlots(date, nil, cfg, now))

	// 08:00, 08:45, 09:30; 10:15 would start past the end of the day
	assert.Equal(t, []string{"08:00", "08:45", "09:30"}, got)
}

func TestGenerateSlots_EmptyWindow(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	cfg := SlotConfig{WorkStartHour: 12, WorkEndHour: 12, SlotDurationMinutes: 30}
	assert.Empty(t, GenerateSlots(date, nil, cfg, now))
}

func TestGenerateSlots_LabelsAreUniqueAndIncreasing(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, loc)

	cfg := SlotConfig{WorkStartHour: 0, WorkEndHour: 24, SlotDurationMinutes: 20}
	slots := GenerateSlots(date, nil, cfg, now)

	require.Len(t, slots, 72)
	seen := make(map[string]struct{}, len(slots))
	for i, s := range slots {
		_, dup := seen[s.Label]
		assert.False(t, dup, "duplicate label %s", s.Label)
		seen[s.Label] = struct{}{}

		assert.Equal(t, loc, s.Start.Location())
		if i > 0 {
			assert.True(t, s.Start.After(slots[i-1].Start))
		}
	}
}

func TestGenerateSlots_AppointmentInOtherZoneMatchesLocalLabel(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, loc)

	// 07:00 UTC is 10:00 local
	existing := []*domain.Appointment{
		appointmentAt(1, 7, time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC), domain.StatusScheduled),
	}

	got := labels(GenerateSlots(date, existing, DefaultSlotConfig(), now))
	assert.NotContains(t, got, "10:00")
	assert.Contains(t, got, "09:00")
}

func assertStrictlyIncreasing(t *testing.T, slots []domain.TimeSlot) {
	t.Helper()
	seen := make(map[string]struct{}, len(slots))
	for i, s := range slots {
		_, dup := seen[s.Label]
		assert.False(t, dup, "label %s repeated", s.Label)
		seen[s.Label] = struct{}{}
		if i > 0 {
			assert.True(t, s.Start.After(slots[i-1].Start), "slot %s is not after %s", s.Label, slots[i-1].Label)
			assert.Greater(t, s.Label, slots[i-1].Label)
		}
	}
}

func TestGenerateSlots_FallBackDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-11-01 02:00 EDT -> 01:00 EST, часы 01:00-02:00 проходят дважды
	date := time.Date(2026, 11, 1, 0, 0, 0, 0, loc)
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, loc)
	cfg := SlotConfig{WorkStartHour: 0, WorkEndHour: 6, SlotDurationMinutes: 30}

	slots := GenerateSlots(date, nil, cfg, now)

	assert.Equal(t, []string{
		"00:00", "00:30", "01:00", "01:30", "02:00", "02:30",
		"03:00", "03:30", "04:00", "04:30", "05:00", "05:30",
	}, labels(slots))
	assertStrictlyIncreasing(t, slots)
}

func TestGenerateSlots_SpringForwardDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08 02:00 EST -> 03:00 EDT, часа 02:00-03:00 нет
	date := time.Date(2026, 3, 8, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, loc)
	cfg := SlotConfig{WorkStartHour: 0, WorkEndHour: 6, SlotDurationMinutes: 30}

	slots := GenerateSlots(date, nil, cfg, now)

	got := labels(slots)
	assert.NotContains(t, got, "02:00")
	assert.NotContains(t, got, "02:30")
	assert.Contains(t, got, "01:30")
	assert.Contains(t, got, "04:00")
	assertStrictlyIncreasing(t, slots)
}

func TestWithinWorkingHours(t *testing.T) {
	cfg := SlotConfig{WorkStartHour: 9, WorkEndHour: 17, SlotDurationMinutes: 45}
	at := func(h, m int) time.Time { return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC) }

	assert.False(t, WithinWorkingHours(at(8, 59), cfg))
	assert.True(t, WithinWorkingHours(at(9, 0), cfg))
	// последний слот сетки выходит за конец дня, но начинается внутри него
	assert.True(t, WithinWorkingHours(at(16, 30), cfg))
	assert.False(t, WithinWorkingHours(at(17, 0), cfg))

	// every listed slot is bookable
	date := at(0, 0)
	for _, s := range GenerateSlots(date, nil, cfg, date.AddDate(0, 0, -1)) {
		assert.True(t, WithinWorkingHours(s.Start, cfg), "slot %s", s.Label)
	}
}
