package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubUseCase struct {
	got *createAppointment.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &createAppointment.Response{
		ID:              1,
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		AppointmentDate: req.AppointmentDate,
		DurationMinutes: 30,
		Status:          "SCHEDULED",
	}, nil
}

var msk = time.FixedZone("MSK", 3*60*60)

func serve(uc *stubUseCase, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, msk, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "20")
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{}

	rec := serve(uc, `{"doctorId": 7, "appointmentDate": "2026-03-02T10:00"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(20), uc.got.PatientID)
	assert.True(t, uc.got.AppointmentDate.Equal(time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)))

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "2026-03-02", resp.Date)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"conflict", createAppointment.ErrDoctorNotAvailable, http.StatusConflict},
		{"busy", createAppointment.ErrDoctorBusy, http.StatusConflict},
		{"doctor not found", createAppointment.ErrDoctorNotFound, http.StatusNotFound},
		{"past", createAppointment.ErrAppointmentInPast, http.StatusBadRequest},
		{"outside hours", createAppointment.ErrOutsideWorkingHours, http.StatusBadRequest},
		{"invalid", createAppointment.ErrInvalidInput, http.StatusBadRequest},
		{"internal", createAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, `{"doctorId": 7, "appointmentDate": "2026-03-02T10:00:00+03:00"}`)

			assert.Equal(t, tt.code, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"doctorId":`},
		{"unknown field", `{"doctorId": 7, "appointmentDate": "2026-03-02T10:00", "room": 1}`},
		{"missing doctor", `{"appointmentDate": "2026-03-02T10:00"}`},
		{"bad date", `{"doctorId": 7, "appointmentDate": "tomorrow"}`},
		{"negative duration", `{"doctorId": 7, "appointmentDate": "2026-03-02T10:00", "durationMinutes": -5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			rec := serve(uc, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	h := NewHandler(&stubUseCase{}, msk, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
