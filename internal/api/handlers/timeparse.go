package handlers

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// localDateTimeLayout время без смещения трактуется в часовом поясе клиники
const localDateTimeLayout = "2006-01-02T15:04"

// ParseDate разбирает "YYYY-MM-DD" как начало дня в loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, s, loc)
}

// ParseDateTime принимает RFC 3339 или "YYYY-MM-DDTHH:MM" (локальное время клиники)
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.ParseInLocation(localDateTimeLayout, s, loc)
}
