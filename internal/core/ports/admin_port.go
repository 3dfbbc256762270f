package ports

import (
	"context"
	"encoding/json"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

type DoctorAPI interface {
	CreateDoctor(ctx context.Context, doctor domain.Doctor) (*domain.Doctor, error)
	UpdateDoctor(ctx context.Context, doctor domain.Doctor) (*domain.Doctor, error)
	ListDoctors(ctx context.Context) ([]domain.Doctor, error)
}

type PatientAPI interface {
	CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error)
	UpdatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error)
	ListPatients(ctx context.Context) ([]domain.Patient, error)
}

// EntityAPI covers the kind-generic admin actions.
type EntityAPI interface {
	DeleteEntity(ctx context.Context, kind domain.EntityKind, id int64) error
	BlacklistEntity(ctx context.Context, kind domain.EntityKind, id int64, req domain.BlacklistRequest) error
}

type DashboardAPI interface {
	AdminStats(ctx context.Context) (*domain.DashboardStats, error)
	DoctorDashboard(ctx context.Context) (json.RawMessage, error)
	PatientDashboard(ctx context.Context) (json.RawMessage, error)
}
