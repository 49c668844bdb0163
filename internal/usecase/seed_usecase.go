package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-telemedicine/config"
	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/domain/entity"
	"go-telemedicine/internal/domain/repository"
	"go-telemedicine/pkg/hash"

	"github.com/sirupsen/logrus"
)

var errSeedNotArray = errors.New("seed value is not a JSON array")

// SeedResult counts the records loaded from configuration.
type SeedResult struct {
	Doctors       int
	Patients      int
	Consultations int
}

// SeedUsecase pre-populates the stores from JSON arrays held in
// configuration. Invalid input is logged and skipped, never fatal.
type SeedUsecase interface {
	Seed(ctx context.Context, cfg config.SeedConfig) SeedResult
}

type seedUsecase struct {
	log              *logrus.Logger
	doctorRepo       repository.DoctorRepository
	patientRepo      repository.PatientRepository
	consultationRepo repository.ConsultationRepository
	hasher           hash.Hasher
	now              func() time.Time
}

func NewSeedUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	consultationRepo repository.ConsultationRepository,
	hasher hash.Hasher,
) SeedUsecase {
	return &seedUsecase{
		log:              log,
		doctorRepo:       doctorRepo,
		patientRepo:      patientRepo,
		consultationRepo: consultationRepo,
		hasher:           hasher,
		now:              time.Now,
	}
}

func (u *seedUsecase) Seed(ctx context.Context, cfg config.SeedConfig) SeedResult {
	var result SeedResult

	for i, raw := range u.records("DOCTORS_JSON", cfg.DoctorsJSON) {
		var seed dto.SeedDoctor
		if u.decodeRecord("DOCTORS_JSON", i, raw, &seed) && u.seedDoctor(ctx, &seed) {
			result.Doctors++
		}
	}

	for i, raw := range u.records("PATIENTS_JSON", cfg.PatientsJSON) {
		var seed dto.SeedPatient
		if u.decodeRecord("PATIENTS_JSON", i, raw, &seed) && u.seedPatient(ctx, &seed) {
			result.Patients++
		}
	}

	for i, raw := range u.records("CONSULTATIONS_JSON", cfg.ConsultationsJSON) {
		var seed dto.SeedConsultation
		if u.decodeRecord("CONSULTATIONS_JSON", i, raw, &seed) && u.seedConsultation(ctx, &seed) {
			result.Consultations++
		}
	}

	u.log.WithFields(logrus.Fields{
		"doctors":       result.Doctors,
		"patients":      result.Patients,
		"consultations": result.Consultations,
	}).Info("Seed data loaded")

	return result
}

// records splits raw into its array elements. Anything but a JSON array
// seeds nothing.
func (u *seedUsecase) records(name, raw string) []json.RawMessage {
	if raw == "" {
		return nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		var syntaxErr *json.SyntaxError
		if !errors.As(err, &syntaxErr) {
			err = errSeedNotArray
		}
		u.log.Warnf("Invalid %s, seeding nothing: %+v", name, err)
		return nil
	}
	return records
}

// decodeRecord decodes one array element; a bad element is skipped alone.
func (u *seedUsecase) decodeRecord(name string, index int, raw json.RawMessage, out interface{}) bool {
	if err := json.Unmarshal(raw, out); err != nil {
		u.log.Warnf("Skipping %s[%d]: %+v", name, index, err)
		return false
	}
	return true
}

func (u *seedUsecase) password(raw string) (string, error) {
	if hash.IsHashed(raw) {
		return raw, nil
	}
	return u.hasher.Hash(raw)
}

// timestamp falls back to now for missing or unreadable seed times.
func (u *seedUsecase) timestamp(t dto.SeedTime, field, owner string) time.Time {
	if t.Unparsed != "" {
		u.log.Warnf("Unreadable %s %q for seed %s, using now", field, t.Unparsed, owner)
	}
	if t.IsZero() {
		return u.now()
	}
	return t.Time
}

func (u *seedUsecase) seedDoctor(ctx context.Context, seed *dto.SeedDoctor) bool {
	years, err := seed.YearsOfExperience.Float()
	if err != nil {
		u.log.Warnf("Skipping seed doctor %s: %+v", seed.Email, ErrInvalidYears)
		return false
	}
	password, err := u.password(seed.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return false
	}

	doctor := &entity.Doctor{
		Name:              seed.Name,
		Email:             seed.Email,
		Password:          password,
		Phone:             seed.Phone,
		Specialty:         seed.Specialty,
		YearsOfExperience: years,
		ProfilePicture:    seed.ProfilePicture,
		CreatedAt:         u.timestamp(seed.CreatedAt, "createdAt", seed.Email),
	}
	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		u.log.Warnf("Skipping seed doctor %s: %+v", seed.Email, err)
		return false
	}
	return true
}

func (u *seedUsecase) seedPatient(ctx context.Context, seed *dto.SeedPatient) bool {
	age, err := seed.Age.Int()
	if err != nil {
		u.log.Warnf("Skipping seed patient %s: %+v", seed.Email, ErrInvalidAge)
		return false
	}
	password, err := u.password(seed.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return false
	}

	patient := &entity.Patient{
		Name:           seed.Name,
		Email:          seed.Email,
		Password:       password,
		Age:            age,
		Phone:          seed.Phone,
		ProfilePicture: seed.ProfilePicture,
		SurgeryHistory: append([]string{}, seed.SurgeryHistory...),
		IllnessHistory: append([]string{}, seed.IllnessHistory...),
		CreatedAt:      u.timestamp(seed.CreatedAt, "createdAt", seed.Email),
	}
	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Skipping seed patient %s: %+v", seed.Email, err)
		return false
	}
	return true
}

func (u *seedUsecase) seedConsultation(ctx context.Context, seed *dto.SeedConsultation) bool {
	consultation := &entity.Consultation{
		PatientID:       seed.PatientID,
		DoctorID:        seed.DoctorID,
		PatientName:     seed.PatientName,
		PatientEmail:    seed.PatientEmail,
		PatientAge:      seed.PatientAge,
		PatientPhone:    seed.PatientPhone,
		DoctorName:      seed.DoctorName,
		DoctorSpecialty: seed.DoctorSpecialty,
		CurrentIllness:  seed.CurrentIllness,
		RecentSurgery:   seed.RecentSurgery,
		SurgeryTimespan: seed.SurgeryTimespan,
		DiabetesHistory: seed.DiabetesHistory,
		Allergies:       seed.Allergies,
		Others:          seed.Others,
		TransactionID:   seed.TransactionID,
		SubmittedAt:     u.timestamp(seed.SubmittedAt, "submittedAt", seed.TransactionID),
	}
	if err := u.consultationRepo.Create(ctx, consultation); err != nil {
		u.log.Warnf("Skipping seed consultation: %+v", err)
		return false
	}
	return true
}
