package create_appointment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	scheduleConfigRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/scheduleconfig"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeAppointmentRepo struct {
	existing  []*domain.Appointment
	created   []*domain.Appointment
	lastQuery domain.DoctorAppointmentsFilter
	createErr error
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	a.ID = int64(100 + len(r.created))
	r.created = append(r.created, a)
	return a, nil
}

func (r *fakeAppointmentRepo) GetByDoctorWithFilter(_ context.Context, f domain.DoctorAppointmentsFilter) ([]*domain.Appointment, error) {
	r.lastQuery = f
	return r.existing, nil
}

type fakeConfigRepo struct {
	config *domain.DoctorScheduleConfig
}

func (r *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64) (*domain.DoctorScheduleConfig, error) {
	if r.config == nil {
		return nil, scheduleConfigRepo.ErrConfigNotFound
	}
	return r.config, nil
}

type fakeUserClient struct {
	doctor *userservice.Doctor
	err    error
}

func (c *fakeUserClient) GetDoctor(_ context.Context, id int64) (*userservice.Doctor, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.doctor, nil
}

type fakeLocker struct {
	busy     bool
	err      error
	locked   []string
	unlocked []string
}

func (l *fakeLocker) TryLock(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	if l.err != nil {
		return "", false, l.err
	}
	if l.busy {
		return "", false, nil
	}
	l.locked = append(l.locked, key)
	return "token", true, nil
}

func (l *fakeLocker) Unlock(_ context.Context, key, _ string) error {
	l.unlocked = append(l.unlocked, key)
	return nil
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeMetrics struct {
	created   int
	conflicts int
}

func (m *fakeMetrics) RecordAppointmentCreated(string) { m.created++ }
func (m *fakeMetrics) RecordConflict(string)          { m.conflicts++ }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	uc      *UseCase
	repo    *fakeAppointmentRepo
	config  *fakeConfigRepo
	users   *fakeUserClient
	locker  *fakeLocker
	tx      *fakeTxManager
	metrics *fakeMetrics
}

var now = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		repo:    &fakeAppointmentRepo{},
		config:  &fakeConfigRepo{},
		users:   &fakeUserClient{doctor: &userservice.Doctor{ID: 7, IsAcceptingPatients: true}},
		locker:  &fakeLocker{},
		tx:      &fakeTxManager{},
		metrics: &fakeMetrics{},
	}
	f.uc = NewUseCase(f.repo, f.config, f.users, f.locker, 10*time.Second, f.tx, f.metrics, time.UTC, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

func validRequest() *Request {
	return &Request{
		PatientID:       20,
		DoctorID:        7,
		AppointmentDate: at(10, 0),
		Notes:           ptr.Ptr("first visit"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, domain.DefaultAppointmentDurationMinutes, resp.DurationMinutes)

	// conflict window [start-30m, start+duration)
	require.NotNil(t, f.repo.lastQuery.From)
	assert.Equal(t, at(9, 30), *f.repo.lastQuery.From)
	assert.Equal(t, at(10, 30), *f.repo.lastQuery.To)
	assert.True(t, f.repo.lastQuery.ToExclusive)

	assert.Equal(t, []string{"appointments:doctor:7"}, f.locker.locked)
	assert.Equal(t, []string{"appointments:doctor:7"}, f.locker.unlocked)
	assert.Equal(t, 1, f.metrics.created)
}

func TestExecute_Conflict(t *testing.T) {
	f := newFixture()
	f.repo.existing = []*domain.Appointment{
		{ID: 1, DoctorID: 7, PatientID: 21, AppointmentDate: at(10, 0), DurationMinutes: 30, Status: domain.StatusConfirmed},
	}

	req := validRequest()
	req.AppointmentDate = at(9, 45)

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDoctorNotAvailable)
	assert.Empty(t, f.repo.created)
	assert.Equal(t, 1, f.metrics.conflicts)
	assert.Len(t, f.locker.unlocked, 1, "lock must be released on conflict")
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.repo.existing = []*domain.Appointment{
		{ID: 1, DoctorID: 7, PatientID: 21, AppointmentDate: at(10, 0), DurationMinutes: 30, Status: domain.StatusCancelled},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Len(t, f.repo.created, 1)
}

func TestExecute_UniqueViolationMapsToNotAvailable(t *testing.T) {
	f := newFixture()
	f.repo.createErr = appointmentRepo.ErrSlotTaken

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDoctorNotAvailable)
}

func TestExecute_DoctorBusy(t *testing.T) {
	f := newFixture()
	f.locker.busy = true

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDoctorBusy)
	assert.Zero(t, f.tx.calls)
}

func TestExecute_LockerFailureDoesNotBlockBooking(t *testing.T) {
	f := newFixture()
	f.locker.err = errors.New("redis down")

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Empty(t, f.locker.unlocked)
}

func TestExecute_DoctorChecks(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.users.err = userservice.ErrDoctorNotFound
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})

	t.Run("service unavailable", func(t *testing.T) {
		f := newFixture()
		f.users.err = userservice.ErrInternal
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("not accepting", func(t *testing.T) {
		f := newFixture()
		f.users.doctor.IsAcceptingPatients = false
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrDoctorNotAccepting)
	})
}

func TestExecute_InPast(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.AppointmentDate = now

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAppointmentInPast)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	for _, start := range []time.Time{at(8, 30), at(17, 0), at(18, 15)} {
		f := newFixture()
		req := validRequest()
		req.AppointmentDate = start

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideWorkingHours, "start %s", start.Format(domain.TimeFormat))
		assert.Zero(t, f.tx.calls)
	}

	// начало внутри рабочего дня, конец может выходить за него
	f := newFixture()
	req := validRequest()
	req.AppointmentDate = at(16, 45)
	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_EveryListedSlotIsBookable(t *testing.T) {
	config := &domain.DoctorScheduleConfig{ID: 1, WorkStartHour: 9, WorkEndHour: 17, SlotDurationMinutes: 45}
	slots := scheduling.GenerateSlots(at(0, 0), nil, scheduling.SlotConfigFrom(config), now)
	require.NotEmpty(t, slots)
	assert.Equal(t, "16:30", slots[len(slots)-1].Label)

	for _, slot := range slots {
		f := newFixture()
		f.config.config = config

		req := validRequest()
		req.AppointmentDate = slot.Start
		req.DurationMinutes = slot.DurationMinutes()

		_, err := f.uc.Execute(context.Background(), req)
		assert.NoError(t, err, "slot %s", slot.Label)
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"zero patient", func(r *Request) { r.PatientID = 0 }},
		{"zero doctor", func(r *Request) { r.DoctorID = 0 }},
		{"self booking", func(r *Request) { r.DoctorID = r.PatientID }},
		{"missing date", func(r *Request) { r.AppointmentDate = time.Time{} }},
		{"negative duration", func(r *Request) { r.DurationMinutes = -1 }},
		{"too long", func(r *Request) { r.DurationMinutes = domain.MaxAppointmentDurationMinutes + 1 }},
		{"long notes", func(r *Request) { r.Notes = ptr.Ptr(strings.Repeat("я", domain.MaxNotesLength+1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}

	req := validRequest()
	req.Notes = ptr.Ptr(strings.Repeat("я", domain.MaxNotesLength))
	require.NoError(t, validateRequest(req))
	assert.Equal(t, domain.DefaultAppointmentDurationMinutes, req.DurationMinutes)
}
