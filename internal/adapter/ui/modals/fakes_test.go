package modals

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

// fakeAPI records calls. When gate is set every call blocks until the gate
// is closed or the request context ends.
type fakeAPI struct {
	mu      sync.Mutex
	calls   int
	err     error
	created *domain.Doctor
	started chan struct{}
	gate    chan struct{}

	lastDoctor    domain.Doctor
	lastPatient   domain.Patient
	lastKind      domain.EntityKind
	lastID        int64
	lastBlacklist domain.BlacklistRequest
}

func (f *fakeAPI) call(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	gate, started := f.gate, f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.err
}

func (f *fakeAPI) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAPI) CreateDoctor(ctx context.Context, doctor domain.Doctor) (*domain.Doctor, error) {
	f.lastDoctor = doctor
	if err := f.call(ctx); err != nil {
		return nil, err
	}
	if f.created != nil {
		return f.created, nil
	}
	doctor.ID = 1
	return &doctor, nil
}

func (f *fakeAPI) UpdateDoctor(ctx context.Context, doctor domain.Doctor) (*domain.Doctor, error) {
	f.lastDoctor = doctor
	if err := f.call(ctx); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (f *fakeAPI) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	return nil, f.call(ctx)
}

func (f *fakeAPI) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	return nil, f.call(ctx)
}

func (f *fakeAPI) CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	f.lastPatient = patient
	return &patient, f.call(ctx)
}

func (f *fakeAPI) UpdatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	f.lastPatient = patient
	if err := f.call(ctx); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (f *fakeAPI) DeleteEntity(ctx context.Context, kind domain.EntityKind, id int64) error {
	f.lastKind, f.lastID = kind, id
	return f.call(ctx)
}

func (f *fakeAPI) BlacklistEntity(ctx context.Context, kind domain.EntityKind, id int64, req domain.BlacklistRequest) error {
	f.lastKind, f.lastID, f.lastBlacklist = kind, id, req
	return f.call(ctx)
}

func (f *fakeAPI) AdminStats(ctx context.Context) (*domain.DashboardStats, error) {
	return &domain.DashboardStats{}, f.call(ctx)
}

func (f *fakeAPI) DoctorDashboard(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{}`), f.call(ctx)
}

func (f *fakeAPI) PatientDashboard(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{}`), f.call(ctx)
}

type recorder struct {
	mu       sync.Mutex
	payloads []interface{}
}

func (r *recorder) handle(payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}
