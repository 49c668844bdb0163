package dto

import "time"

type PatientResponse struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Age            int       `json:"age"`
	Phone          string    `json:"phone"`
	ProfilePicture *string   `json:"profilePicture"`
	SurgeryHistory []string  `json:"surgeryHistory"`
	IllnessHistory []string  `json:"illnessHistory"`
	CreatedAt      time.Time `json:"createdAt"`
}
