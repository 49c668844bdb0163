package repository

import (
	"context"
	"errors"

	"go-telemedicine/internal/domain/entity"
	domainRepo "go-telemedicine/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type consultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) domainRepo.ConsultationRepository {
	return &consultationRepository{db: db}
}

func (r *consultationRepository) Create(ctx context.Context, consultation *entity.Consultation) error {
	if consultation.SubmittedAt.IsZero() {
		consultation.SubmittedAt = now()
	}
	return r.db.WithContext(ctx).Create(consultation).Error
}

func (r *consultationRepository) FindByID(ctx context.Context, id int) (*entity.Consultation, error) {
	var consultation entity.Consultation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) FindByDoctorID(ctx context.Context, doctorID int) ([]entity.Consultation, error) {
	consultations := make([]entity.Consultation, 0)
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("id ASC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindByPatientID(ctx context.Context, patientID int) ([]entity.Consultation, error) {
	consultations := make([]entity.Consultation, 0)
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("id ASC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

// Update locks the row (SELECT ... FOR UPDATE) for the duration of fn so
// concurrent prescription writes on one consultation serialize.
func (r *consultationRepository) Update(ctx context.Context, id int, fn func(consultation *entity.Consultation) error) (*entity.Consultation, error) {
	var updated entity.Consultation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var consultation entity.Consultation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&consultation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainRepo.ErrNotFound
			}
			return err
		}

		doctorID, patientID := consultation.DoctorID, consultation.PatientID
		if err := fn(&consultation); err != nil {
			return err
		}
		consultation.ID = id
		consultation.DoctorID = doctorID
		consultation.PatientID = patientID

		if err := tx.Save(&consultation).Error; err != nil {
			return err
		}
		updated = consultation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
