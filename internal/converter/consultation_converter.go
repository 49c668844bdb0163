package converter

import (
	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/domain/entity"
)

func ConsultationToResponse(c *entity.Consultation) *dto.ConsultationResponse {
	if c == nil {
		return nil
	}

	return &dto.ConsultationResponse{
		ID:              c.ID,
		PatientID:       c.PatientID,
		DoctorID:        c.DoctorID,
		PatientName:     c.PatientName,
		PatientEmail:    c.PatientEmail,
		PatientAge:      c.PatientAge,
		PatientPhone:    c.PatientPhone,
		DoctorName:      c.DoctorName,
		DoctorSpecialty: c.DoctorSpecialty,
		CurrentIllness:  c.CurrentIllness,
		RecentSurgery:   c.RecentSurgery,
		SurgeryTimespan: c.SurgeryTimespan,
		DiabetesHistory: c.DiabetesHistory,
		Allergies:       c.Allergies,
		Others:          c.Others,
		TransactionID:   c.TransactionID,
		SubmittedAt:     c.SubmittedAt,
		Prescription:    PrescriptionToResponse(c.Prescription),
	}
}

func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i := range consultations {
		responses[i] = *ConsultationToResponse(&consultations[i])
	}
	return responses
}

func PrescriptionToResponse(p *entity.Prescription) *dto.PrescriptionResponse {
	if p == nil {
		return nil
	}

	pdfs := make([]dto.CustomPDFResponse, len(p.CustomPDFs))
	for i, pdf := range p.CustomPDFs {
		pdfs[i] = dto.CustomPDFResponse{
			Filename:     pdf.Filename,
			OriginalName: pdf.OriginalName,
			UploadedAt:   pdf.UploadedAt,
			Notes:        pdf.Notes,
		}
	}

	return &dto.PrescriptionResponse{
		CareToBeTaken: p.CareToBeTaken,
		Medicines:     p.Medicines,
		PrescribedAt:  p.PrescribedAt,
		PrescribedBy:  p.PrescribedBy,
		PDFFile:       p.PDFFile,
		SentToPatient: p.SentToPatient,
		SentAt:        p.SentAt,
		CustomPDFs:    pdfs,
	}
}
