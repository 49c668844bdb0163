package converter

import (
	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:             patient.ID,
		Name:           patient.Name,
		Email:          patient.Email,
		Age:            patient.Age,
		Phone:          patient.Phone,
		ProfilePicture: patient.ProfilePicture,
		SurgeryHistory: nonNil(patient.SurgeryHistory),
		IllnessHistory: nonNil(patient.IllnessHistory),
		CreatedAt:      patient.CreatedAt,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
