package get_doctor_appointments

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// ParseQuery собирает запрос сервиса из query параметров
// from и to - даты YYYY-MM-DD, to включается целиком
func ParseQuery(q url.Values, userID, doctorID int64, loc *time.Location) (*models.GetDoctorAppointmentsRequest, error) {
	req := &models.GetDoctorAppointmentsRequest{
		UserID:   userID,
		DoctorID: doctorID,
	}

	if raw := q.Get("from"); raw != "" {
		from, err := handlers.ParseDate(raw, loc)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		req.From = &from
	}

	if raw := q.Get("to"); raw != "" {
		to, err := handlers.ParseDate(raw, loc)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		end := scheduling.EndOfDay(to)
		req.To = &end
	}

	if raw := q.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := q.Get("includeInactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("includeInactive: %w", err)
		}
		req.IncludeInactive = include
	}

	return req, nil
}
