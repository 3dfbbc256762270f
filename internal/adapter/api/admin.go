package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

func (c *Client) CreateDoctor(ctx context.Context, doctor domain.Doctor) (*domain.Doctor, error) {
	const op = "CreateDoctor"

	body, err := c.do(ctx, request{op: op, method: http.MethodPost, path: "/api/admin/create-doctor", body: doctor})
	if err != nil {
		return nil, err
	}
	created := doctor
	if err := decode(op, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateDoctor(ctx context.Context, doctor domain.Doctor) (*domain.Doctor, error) {
	const op = "UpdateDoctor"

	id := doctor.ID
	if _, err := c.do(ctx, request{op: op, method: http.MethodPut, path: "/api/admin/update-doctor/{id}", id: &id, body: doctor}); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (c *Client) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	const op = "ListDoctors"

	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/api/admin/doctors"})
	if err != nil {
		return nil, err
	}
	var resp struct {
		Doctors []domain.Doctor `json:"doctors"`
	}
	if err := decode(op, body, &resp); err != nil {
		return nil, err
	}
	return resp.Doctors, nil
}

func (c *Client) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	const op = "ListPatients"

	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/api/admin/patients"})
	if err != nil {
		return nil, err
	}
	var resp struct {
		Patients []domain.Patient `json:"patients"`
	}
	if err := decode(op, body, &resp); err != nil {
		return nil, err
	}
	return resp.Patients, nil
}

func (c *Client) CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	const op = "CreatePatient"

	body, err := c.do(ctx, request{op: op, method: http.MethodPost, path: "/api/admin/create-patient", body: patient})
	if err != nil {
		return nil, err
	}
	created := patient
	if err := decode(op, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	const op = "UpdatePatient"

	id := patient.ID
	if _, err := c.do(ctx, request{op: op, method: http.MethodPut, path: "/api/admin/update-patient/{id}", id: &id, body: patient}); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (c *Client) DeleteEntity(ctx context.Context, kind domain.EntityKind, id int64) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown entity kind %q", kind)
	}
	op := "Delete" + kindName(kind)

	_, err := c.do(ctx, request{op: op, method: http.MethodDelete, path: fmt.Sprintf("/api/admin/delete-%s/{id}", kind), id: &id})
	return err
}

func (c *Client) BlacklistEntity(ctx context.Context, kind domain.EntityKind, id int64, req domain.BlacklistRequest) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown entity kind %q", kind)
	}
	op := "Blacklist" + kindName(kind)

	_, err := c.do(ctx, request{op: op, method: http.MethodPost, path: fmt.Sprintf("/api/admin/blacklist-%s/{id}", kind), id: &id, body: req})
	return err
}

func (c *Client) AdminStats(ctx context.Context) (*domain.DashboardStats, error) {
	const op = "AdminStats"

	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/api/admin/stats"})
	if err != nil {
		return nil, err
	}
	var stats domain.DashboardStats
	if err := decode(op, body, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) DoctorDashboard(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, "DoctorDashboard", "/api/doctor/dashboard")
}

func (c *Client) PatientDashboard(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, "PatientDashboard", "/api/patient/dashboard")
}

func (c *Client) raw(ctx context.Context, op, path string) (json.RawMessage, error) {
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, &Error{Op: op, Kind: KindDecode, Status: http.StatusOK, Err: fmt.Errorf("response is not JSON")}
	}
	return json.RawMessage(body), nil
}

func kindName(kind domain.EntityKind) string {
	if kind == domain.DoctorEntity {
		return "Doctor"
	}
	return "Patient"
}
