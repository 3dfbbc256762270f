package domain

import "strconv"

type EntityKind string

const (
	DoctorEntity  EntityKind = "doctor"
	PatientEntity EntityKind = "patient"
)

func (k EntityKind) Valid() bool {
	return k == DoctorEntity || k == PatientEntity
}

// Entity is the minimal view a confirmation dialog needs.
type Entity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (e Entity) IDString() string {
	return strconv.FormatInt(e.ID, 10)
}

// swagger:model domain.Doctor
type Doctor struct {
	ID             int64  `json:"id,omitempty"`
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email,omitempty"`
	Specialization string `json:"specialization" validate:"required"`
	Availability   string `json:"availability" validate:"required"`
	ContactInfo    string `json:"contact_info,omitempty"`
}

// swagger:model domain.Patient
type Patient struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
	Age         int    `json:"age,omitempty" validate:"min=0,max=150"`
	Gender      string `json:"gender,omitempty"`
}

type BlacklistRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type DashboardStats struct {
	TotalPatients         int `json:"total_patients"`
	TotalDoctors          int `json:"total_doctors"`
	TotalAppointments     int `json:"total_appointments"`
	UpcomingAppointments  int `json:"upcoming_appointments"`
	CompletedAppointments int `json:"completed_appointments"`
}

// Event names emitted by action dialogs.
const (
	EventCreated     = "created"
	EventUpdated     = "updated"
	EventDeleted     = "deleted"
	EventBlacklisted = "blacklisted"
	EventLoggedIn    = "logged-in"
)
