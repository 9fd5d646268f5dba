package get_patient_appointments

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type stubService struct {
	got *models.GetPatientAppointmentsRequest
	err error
}

func (s *stubService) GetPatientAppointments(_ context.Context, req *models.GetPatientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{{ID: 1}}}, nil
}

func serve(svc *stubService, path, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/api/v1/patients/{patientId}/appointments",
		middleware.Auth(http.HandlerFunc(NewHandler(svc, logger.NewNop()).Handle))).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(middleware.UserIDHeader, userID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &stubService{}

	rec := serve(svc, "/api/v1/patients/20/appointments?status=completed", "20")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(20), svc.got.PatientID)
	assert.Equal(t, int64(20), svc.got.UserID)
	assert.Equal(t, "completed", ptr.Value(svc.got.Status, ""))
	assert.Contains(t, rec.Body.String(), `"appointments":[`)
}

func TestHandle_NoStatusFilter(t *testing.T) {
	svc := &stubService{}

	rec := serve(svc, "/api/v1/patients/20/appointments", "20")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		err  error
		want int
	}{
		{"bad id", "/api/v1/patients/x/appointments", nil, http.StatusBadRequest},
		{"other patient", "/api/v1/patients/21/appointments", appointments.ErrAccessDenied, http.StatusForbidden},
		{"bad status", "/api/v1/patients/20/appointments?status=LOST", fmt.Errorf("%w: invalid status", appointments.ErrInvalidInput), http.StatusBadRequest},
		{"internal", "/api/v1/patients/20/appointments", appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, tt.path, "20")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
