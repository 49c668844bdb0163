package dto

import "time"

type DoctorResponse struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Specialty         string    `json:"specialty"`
	YearsOfExperience float64   `json:"yearsOfExperience"`
	ProfilePicture    *string   `json:"profilePicture"`
	CreatedAt         time.Time `json:"createdAt"`
}
