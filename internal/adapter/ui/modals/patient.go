package modals

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
	"github.com/sm8ta/hospital_frontend/internal/core/ports"
)

var patientMessages = map[string]string{
	"Name": "Patient name is required",
	"Age":  "Age must be between 0 and 150",
}

type EditPatientModal struct {
	*dialog
	api      ports.PatientAPI
	validate *validator.Validate

	patient domain.Patient
}

func NewEditPatientModal(patient domain.Patient, api ports.PatientAPI, validate *validator.Validate, logger ports.LoggerPort) *EditPatientModal {
	return &EditPatientModal{
		dialog:   newDialog("edit-patient", logger),
		api:      api,
		validate: validate,
		patient:  patient,
	}
}

func (m *EditPatientModal) Patient() domain.Patient {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.patient
}

func (m *EditPatientModal) SetName(v string) {
	m.set(func(p *domain.Patient) { p.Name = v })
}

func (m *EditPatientModal) SetContactInfo(v string) {
	m.set(func(p *domain.Patient) { p.ContactInfo = v })
}

func (m *EditPatientModal) SetAge(v int) {
	m.set(func(p *domain.Patient) { p.Age = v })
}

func (m *EditPatientModal) SetGender(v string) {
	m.set(func(p *domain.Patient) { p.Gender = v })
}

func (m *EditPatientModal) set(apply func(*domain.Patient)) {
	m.mu.Lock()
	apply(&m.patient)
	m.mu.Unlock()
	m.clearError()
}

func (m *EditPatientModal) Submit(ctx context.Context) (*domain.Patient, error) {
	patient := m.Patient()
	patient.Name = trim(patient.Name)

	reqCtx, done, err := m.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	if patient.ID <= 0 {
		return nil, m.invalid(fmt.Sprintf("Invalid patient id %d", patient.ID))
	}
	if err := m.validate.Struct(patient); err != nil {
		return nil, m.invalid(firstViolation(err, patientMessages))
	}

	_, err = m.api.UpdatePatient(reqCtx, patient)
	if err := m.finish(err, "Error updating patient", "Patient updated successfully", domain.EventUpdated, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}
