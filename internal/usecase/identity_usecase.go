package usecase

import (
	"context"
	"errors"
	"time"

	"go-telemedicine/internal/converter"
	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/domain/entity"
	"go-telemedicine/internal/domain/repository"
	"go-telemedicine/internal/service"
	"go-telemedicine/pkg/hash"

	"github.com/sirupsen/logrus"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPhoneAlreadyExists = errors.New("phone already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidYears       = errors.New("years of experience must be a number")
	ErrInvalidAge         = errors.New("age must be a number")
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrPatientNotFound    = errors.New("patient not found")
)

type IdentityUsecase interface {
	SignupDoctor(ctx context.Context, req *dto.DoctorSignupRequest) (*dto.DoctorResponse, error)
	SignupPatient(ctx context.Context, req *dto.PatientSignupRequest) (*dto.PatientResponse, error)
	SigninDoctor(ctx context.Context, req *dto.SignInRequest) (*dto.DoctorResponse, error)
	SigninPatient(ctx context.Context, req *dto.SignInRequest) (*dto.PatientResponse, error)
	GetDoctor(ctx context.Context, id int) (*dto.DoctorResponse, error)
	GetPatient(ctx context.Context, id int) (*dto.PatientResponse, error)
	ListDoctors(ctx context.Context) ([]dto.DoctorResponse, error)
}

type identityUsecase struct {
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	patientRepo  repository.PatientRepository
	hasher       hash.Hasher
	auditService service.AuditService
	now          func() time.Time
}

func NewIdentityUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	hasher hash.Hasher,
	auditService service.AuditService,
) IdentityUsecase {
	return &identityUsecase{
		log:          log,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		hasher:       hasher,
		auditService: auditService,
		now:          time.Now,
	}
}

func (u *identityUsecase) SignupDoctor(ctx context.Context, req *dto.DoctorSignupRequest) (*dto.DoctorResponse, error) {
	years, err := req.YearsOfExperience.Float()
	if err != nil {
		return nil, ErrInvalidYears
	}

	hashedPassword, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	doctor := &entity.Doctor{
		Name:              req.Name,
		Email:             req.Email,
		Password:          hashedPassword,
		Phone:             req.Phone,
		Specialty:         req.Specialty,
		YearsOfExperience: years,
		ProfilePicture:    optional(req.ProfilePicture),
		CreatedAt:         u.now(),
	}

	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		if mapped := mapDuplicateError(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, service.Actor{Kind: entity.SessionKindDoctor, ID: doctor.ID},
		entity.AuditActionDoctorSignup, entity.AuditEntityDoctor, doctor.ID, nil)

	return converter.DoctorToResponse(doctor), nil
}

func (u *identityUsecase) SignupPatient(ctx context.Context, req *dto.PatientSignupRequest) (*dto.PatientResponse, error) {
	age, err := req.Age.Int()
	if err != nil {
		return nil, ErrInvalidAge
	}

	hashedPassword, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		Name:           req.Name,
		Email:          req.Email,
		Password:       hashedPassword,
		Age:            age,
		Phone:          req.Phone,
		ProfilePicture: optional(req.ProfilePicture),
		SurgeryHistory: []string(req.SurgeryHistory),
		IllnessHistory: []string(req.IllnessHistory),
		CreatedAt:      u.now(),
	}
	if patient.SurgeryHistory == nil {
		patient.SurgeryHistory = []string{}
	}
	if patient.IllnessHistory == nil {
		patient.IllnessHistory = []string{}
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		if mapped := mapDuplicateError(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, service.Actor{Kind: entity.SessionKindPatient, ID: patient.ID},
		entity.AuditActionPatientSignup, entity.AuditEntityPatient, patient.ID, nil)

	return converter.PatientToResponse(patient), nil
}

func (u *identityUsecase) SigninDoctor(ctx context.Context, req *dto.SignInRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find doctor by email: %+v", err)
		return nil, err
	}
	if doctor == nil || !u.hasher.Compare(doctor.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	u.auditService.Log(ctx, service.Actor{Kind: entity.SessionKindDoctor, ID: doctor.ID},
		entity.AuditActionDoctorLogin, entity.AuditEntityDoctor, doctor.ID, nil)

	return converter.DoctorToResponse(doctor), nil
}

func (u *identityUsecase) SigninPatient(ctx context.Context, req *dto.SignInRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find patient by email: %+v", err)
		return nil, err
	}
	if patient == nil || !u.hasher.Compare(patient.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	u.auditService.Log(ctx, service.Actor{Kind: entity.SessionKindPatient, ID: patient.ID},
		entity.AuditActionPatientLogin, entity.AuditEntityPatient, patient.ID, nil)

	return converter.PatientToResponse(patient), nil
}

func (u *identityUsecase) GetDoctor(ctx context.Context, id int) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *identityUsecase) GetPatient(ctx context.Context, id int) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *identityUsecase) ListDoctors(ctx context.Context) ([]dto.DoctorResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	return converter.DoctorsToResponses(doctors), nil
}

func mapDuplicateError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailAlreadyExists
	case errors.Is(err, repository.ErrDuplicatePhone):
		return ErrPhoneAlreadyExists
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
