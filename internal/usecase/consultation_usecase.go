package usecase

import (
	"context"
	"time"

	"go-telemedicine/internal/converter"
	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/domain/entity"
	"go-telemedicine/internal/domain/repository"
	"go-telemedicine/internal/service"

	"github.com/sirupsen/logrus"
)

type ConsultationUsecase interface {
	Create(ctx context.Context, patientID, doctorID int, req *dto.ConsultationRequest) (*dto.ConsultationResponse, error)
	ListByDoctor(ctx context.Context, doctorID int) ([]dto.ConsultationResponse, error)
	ListByPatient(ctx context.Context, patientID int) ([]dto.ConsultationResponse, error)
}

type consultationUsecase struct {
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	doctorRepo       repository.DoctorRepository
	patientRepo      repository.PatientRepository
	auditService     service.AuditService
	now              func() time.Time
}

func NewConsultationUsecase(
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) ConsultationUsecase {
	return &consultationUsecase{
		log:              log,
		consultationRepo: consultationRepo,
		doctorRepo:       doctorRepo,
		patientRepo:      patientRepo,
		auditService:     auditService,
		now:              time.Now,
	}
}

// Create records a consultation from patientID to doctorID. Display fields of
// both parties are copied now and never refreshed.
func (u *consultationUsecase) Create(ctx context.Context, patientID, doctorID int, req *dto.ConsultationRequest) (*dto.ConsultationResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrUnauthenticated
	}

	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	consultation := &entity.Consultation{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		PatientName:     patient.Name,
		PatientEmail:    patient.Email,
		PatientAge:      patient.Age,
		PatientPhone:    patient.Phone,
		DoctorName:      doctor.Name,
		DoctorSpecialty: doctor.Specialty,
		CurrentIllness:  req.CurrentIllness,
		RecentSurgery:   req.RecentSurgery,
		SurgeryTimespan: req.SurgeryTimespan,
		DiabetesHistory: req.DiabetesHistory,
		Allergies:       req.Allergies,
		Others:          req.Others,
		TransactionID:   req.TransactionID,
		SubmittedAt:     u.now(),
	}

	if err := u.consultationRepo.Create(ctx, consultation); err != nil {
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"consultation_id": consultation.ID,
		"patient":         patient.Name,
		"doctor":          doctor.Name,
	}).Info("Consultation saved")
	u.auditService.Log(ctx, service.Actor{Kind: entity.SessionKindPatient, ID: patient.ID},
		entity.AuditActionConsultationCreate, entity.AuditEntityConsultation, consultation.ID,
		map[string]interface{}{"doctor_id": doctor.ID})

	return converter.ConsultationToResponse(consultation), nil
}

func (u *consultationUsecase) ListByDoctor(ctx context.Context, doctorID int) ([]dto.ConsultationResponse, error) {
	consultations, err := u.consultationRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list consultations for doctor %d: %+v", doctorID, err)
		return nil, err
	}
	return converter.ConsultationsToResponses(consultations), nil
}

func (u *consultationUsecase) ListByPatient(ctx context.Context, patientID int) ([]dto.ConsultationResponse, error) {
	consultations, err := u.consultationRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list consultations for patient %d: %+v", patientID, err)
		return nil, err
	}
	return converter.ConsultationsToResponses(consultations), nil
}
