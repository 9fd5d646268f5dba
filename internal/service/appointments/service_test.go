package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeRepo struct {
	byID          map[int64]*domain.Appointment
	patientStatus *domain.AppointmentStatus
	doctorFilter  domain.DoctorAppointmentsFilter
	cancelReason  *string
	err           error
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (r *fakeRepo) GetByPatientID(_ context.Context, patientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	r.patientStatus = status
	var out []*domain.Appointment
	for _, a := range r.byID {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetByDoctorWithFilter(_ context.Context, f domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error) {
	r.doctorFilter = f
	return nil, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	r.byID[id].Status = status
	return nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, reason *string) error {
	r.cancelReason = reason
	r.byID[id].Status = domain.StatusCancelled
	return nil
}

type passTx struct{ calls int }

func (m *passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

var msk = time.FixedZone("MSK", 3*60*60)

func seed() *fakeRepo {
	return &fakeRepo{byID: map[int64]*domain.Appointment{
		1: {ID: 1, DoctorID: 7, PatientID: 20, AppointmentDate: time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC), DurationMinutes: 30, Status: domain.StatusScheduled},
		2: {ID: 2, DoctorID: 7, PatientID: 20, AppointmentDate: time.Date(2026, 3, 3, 7, 0, 0, 0, time.UTC), DurationMinutes: 30, Status: domain.StatusCompleted},
		3: {ID: 3, DoctorID: 7, PatientID: 21, AppointmentDate: time.Date(2026, 3, 4, 7, 0, 0, 0, time.UTC), DurationMinutes: 30, Status: domain.StatusConfirmed},
	}}
}

func newService(repo *fakeRepo) (*Service, *passTx) {
	tx := &passTx{}
	return NewService(repo, tx, msk, logger.NewNop()), tx
}

func TestGetByID(t *testing.T) {
	svc, _ := newService(seed())

	resp, err := svc.GetByID(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "10:30", resp.EndTime)

	_, err = svc.GetByID(context.Background(), 1, 7)
	assert.NoError(t, err, "doctor can see the appointment")

	_, err = svc.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 42, 20)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByID_RepositoryError(t *testing.T) {
	repo := seed()
	repo.err = errors.New("db down")
	svc, _ := newService(repo)

	_, err := svc.GetByID(context.Background(), 1, 20)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetPatientAppointments(t *testing.T) {
	repo := seed()
	svc, _ := newService(repo)

	resp, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		UserID: 20, PatientID: 20, Status: ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)
	require.NotNil(t, repo.patientStatus)
	assert.Equal(t, domain.StatusCompleted, *repo.patientStatus)

	_, err = svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{UserID: 21, PatientID: 20})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		UserID: 20, PatientID: 20, Status: ptr.Ptr("LOST"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetDoctorAppointments(t *testing.T) {
	repo := seed()
	svc, _ := newService(repo)

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, msk)
	to := time.Date(2026, 3, 2, 23, 59, 59, 0, msk)

	resp, err := svc.GetDoctorAppointments(context.Background(), &models.GetDoctorAppointmentsRequest{
		UserID: 7, DoctorID: 7, From: &from, To: &to, Status: ptr.Ptr("CANCELLED"),
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Appointments)
	assert.Equal(t, int64(7), repo.doctorFilter.DoctorID)
	assert.True(t, repo.doctorFilter.IncludeInactive, "explicit inactive status must not be filtered out")

	_, err = svc.GetDoctorAppointments(context.Background(), &models.GetDoctorAppointmentsRequest{UserID: 20, DoctorID: 7})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetDoctorAppointments(context.Background(), &models.GetDoctorAppointmentsRequest{
		UserID: 7, DoctorID: 7, From: &to, To: &from,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCancel(t *testing.T) {
	t.Run("patient cancels", func(t *testing.T) {
		repo := seed()
		svc, tx := newService(repo)

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 20, CancellationReason: ptr.Ptr("sick")})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, repo.byID[1].Status)
		assert.Equal(t, "sick", ptr.Value(repo.cancelReason, ""))
		assert.Equal(t, 1, tx.calls)
	})

	t.Run("doctor cancels", func(t *testing.T) {
		svc, _ := newService(seed())
		assert.NoError(t, svc.Cancel(context.Background(), 3, &models.CancelAppointmentRequest{UserID: 7}))
	})

	t.Run("stranger", func(t *testing.T) {
		svc, _ := newService(seed())
		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 99})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("already completed", func(t *testing.T) {
		svc, _ := newService(seed())
		err := svc.Cancel(context.Background(), 2, &models.CancelAppointmentRequest{UserID: 20})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _ := newService(seed())
		err := svc.Cancel(context.Background(), 404, &models.CancelAppointmentRequest{UserID: 20})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name   string
		id     int64
		userID int64
		status string
		want   error
		result domain.AppointmentStatus
	}{
		{"scheduled to confirmed", 1, 7, "CONFIRMED", nil, domain.StatusConfirmed},
		{"confirmed to completed", 3, 7, "COMPLETED", nil, domain.StatusCompleted},
		{"confirmed to cancelled", 3, 7, "CANCELLED", nil, domain.StatusCancelled},
		{"confirmed back to scheduled", 3, 7, "SCHEDULED", ErrInvalidTransition, domain.StatusConfirmed},
		{"completed is terminal", 2, 7, "CONFIRMED", ErrInvalidTransition, domain.StatusCompleted},
		{"patient cannot change", 1, 20, "CONFIRMED", ErrAccessDenied, domain.StatusScheduled},
		{"unknown status", 1, 7, "DONE", ErrInvalidInput, domain.StatusScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seed()
			svc, _ := newService(repo)

			err := svc.UpdateStatus(context.Background(), tt.id, &models.UpdateStatusRequest{UserID: tt.userID, Status: tt.status})

			if tt.want == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
			assert.Equal(t, tt.result, repo.byID[tt.id].Status)
		})
	}
}
