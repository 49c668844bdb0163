package dto

import "time"

// ConsultationRequest carries the medical intake a patient submits.
type ConsultationRequest struct {
	CurrentIllness  string `json:"currentIllness"`
	RecentSurgery   string `json:"recentSurgery"`
	SurgeryTimespan string `json:"surgeryTimespan"`
	DiabetesHistory string `json:"diabetesHistory"`
	Allergies       string `json:"allergies"`
	Others          string `json:"others"`
	TransactionID   string `json:"transactionId"`
}

type ConsultationResponse struct {
	ID              int                   `json:"id"`
	PatientID       int                   `json:"patientId"`
	DoctorID        int                   `json:"doctorId"`
	PatientName     string                `json:"patientName"`
	PatientEmail    string                `json:"patientEmail"`
	PatientAge      int                   `json:"patientAge"`
	PatientPhone    string                `json:"patientPhone"`
	DoctorName      string                `json:"doctorName"`
	DoctorSpecialty string                `json:"doctorSpecialty"`
	CurrentIllness  string                `json:"currentIllness"`
	RecentSurgery   string                `json:"recentSurgery"`
	SurgeryTimespan string                `json:"surgeryTimespan"`
	DiabetesHistory string                `json:"diabetesHistory"`
	Allergies       string                `json:"allergies"`
	Others          string                `json:"others"`
	TransactionID   string                `json:"transactionId"`
	SubmittedAt     time.Time             `json:"submittedAt"`
	Prescription    *PrescriptionResponse `json:"prescription,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
