package modals

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
	"github.com/sm8ta/hospital_frontend/internal/core/ports"
)

var doctorMessages = map[string]string{
	"Name":           "Doctor name is required",
	"Specialization": "Specialization is required",
	"Availability":   "Availability is required",
}

type DoctorForm struct {
	Name           string
	Specialization string
	Availability   string
}

type CreateDoctorModal struct {
	*dialog
	api      ports.DoctorAPI
	validate *validator.Validate

	form DoctorForm
}

func NewCreateDoctorModal(api ports.DoctorAPI, validate *validator.Validate, logger ports.LoggerPort) *CreateDoctorModal {
	return &CreateDoctorModal{
		dialog:   newDialog("create-doctor", logger),
		api:      api,
		validate: validate,
	}
}

func (m *CreateDoctorModal) Form() DoctorForm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

// SetName and the other setters clear a displayed error, like typing does.
func (m *CreateDoctorModal) SetName(v string) {
	m.set(func(f *DoctorForm) { f.Name = v })
}

func (m *CreateDoctorModal) SetSpecialization(v string) {
	m.set(func(f *DoctorForm) { f.Specialization = v })
}

func (m *CreateDoctorModal) SetAvailability(v string) {
	m.set(func(f *DoctorForm) { f.Availability = v })
}

func (m *CreateDoctorModal) set(apply func(*DoctorForm)) {
	m.mu.Lock()
	apply(&m.form)
	m.mu.Unlock()
	m.clearError()
}

// ResetForm clears the fields and both messages.
func (m *CreateDoctorModal) ResetForm() {
	m.mu.Lock()
	m.form = DoctorForm{}
	m.mu.Unlock()
	m.clearMessages()
}

func (m *CreateDoctorModal) Submit(ctx context.Context) (*domain.Doctor, error) {
	form := m.Form()
	doctor := domain.Doctor{
		Name:           trim(form.Name),
		Specialization: trim(form.Specialization),
		Availability:   trim(form.Availability),
	}

	reqCtx, done, err := m.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	if err := m.validate.Struct(doctor); err != nil {
		return nil, m.invalid(firstViolation(err, doctorMessages))
	}

	created, err := m.api.CreateDoctor(reqCtx, doctor)
	if err := m.finish(err, "Failed to create doctor", "Doctor created successfully!", domain.EventCreated, created); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.form = DoctorForm{}
	m.mu.Unlock()
	return created, nil
}

type EditDoctorModal struct {
	*dialog
	api      ports.DoctorAPI
	validate *validator.Validate

	doctor domain.Doctor
}

func NewEditDoctorModal(doctor domain.Doctor, api ports.DoctorAPI, validate *validator.Validate, logger ports.LoggerPort) *EditDoctorModal {
	return &EditDoctorModal{
		dialog:   newDialog("edit-doctor", logger),
		api:      api,
		validate: validate,
		doctor:   doctor,
	}
}

func (m *EditDoctorModal) Doctor() domain.Doctor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doctor
}

func (m *EditDoctorModal) SetName(v string) {
	m.set(func(d *domain.Doctor) { d.Name = v })
}

func (m *EditDoctorModal) SetSpecialization(v string) {
	m.set(func(d *domain.Doctor) { d.Specialization = v })
}

func (m *EditDoctorModal) SetAvailability(v string) {
	m.set(func(d *domain.Doctor) { d.Availability = v })
}

func (m *EditDoctorModal) SetContactInfo(v string) {
	m.set(func(d *domain.Doctor) { d.ContactInfo = v })
}

func (m *EditDoctorModal) set(apply func(*domain.Doctor)) {
	m.mu.Lock()
	apply(&m.doctor)
	m.mu.Unlock()
	m.clearError()
}

// Submit sends the edited doctor and emits it as the updated payload.
func (m *EditDoctorModal) Submit(ctx context.Context) (*domain.Doctor, error) {
	doctor := m.Doctor()
	doctor.Name = trim(doctor.Name)
	doctor.Specialization = trim(doctor.Specialization)
	doctor.Availability = trim(doctor.Availability)

	reqCtx, done, err := m.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	if doctor.ID <= 0 {
		return nil, m.invalid(fmt.Sprintf("Invalid doctor id %d", doctor.ID))
	}
	if err := m.validate.Struct(doctor); err != nil {
		return nil, m.invalid(firstViolation(err, doctorMessages))
	}

	_, err = m.api.UpdateDoctor(reqCtx, doctor)
	if err := m.finish(err, "Error updating doctor", "Doctor updated successfully", domain.EventUpdated, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}
