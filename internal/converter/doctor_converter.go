package converter

import (
	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                doctor.ID,
		Name:              doctor.Name,
		Email:             doctor.Email,
		Phone:             doctor.Phone,
		Specialty:         doctor.Specialty,
		YearsOfExperience: doctor.YearsOfExperience,
		ProfilePicture:    doctor.ProfilePicture,
		CreatedAt:         doctor.CreatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
