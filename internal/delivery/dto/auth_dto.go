package dto

import "time"

// Request DTOs

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type DoctorSignupRequest struct {
	Name              string    `json:"name" validate:"required"`
	Email             string    `json:"email" validate:"required,email"`
	Password          string    `json:"password" validate:"required"`
	Phone             string    `json:"phone" validate:"required"`
	Specialty         string    `json:"specialty" validate:"required"`
	YearsOfExperience FormValue `json:"yearsOfExperience" validate:"omitempty,numeric"`
	ProfilePicture    string    `json:"profilePicture"`
}

type PatientSignupRequest struct {
	Name           string    `json:"name" validate:"required"`
	Email          string    `json:"email" validate:"required,email"`
	Password       string    `json:"password" validate:"required"`
	Age            FormValue `json:"age" validate:"omitempty,numeric"`
	Phone          string    `json:"phone" validate:"required"`
	SurgeryHistory CSVList   `json:"surgeryHistory"`
	IllnessHistory CSVList   `json:"illnessHistory"`
	ProfilePicture string    `json:"profilePicture"`
}

// NormalizeForm splits history fields submitted as form values.
func (r *PatientSignupRequest) NormalizeForm() {
	r.SurgeryHistory = r.SurgeryHistory.Split()
	r.IllnessHistory = r.IllnessHistory.Split()
}

// Response DTOs

// SessionToken is the signed value stored in the session cookie
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}
