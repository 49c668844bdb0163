package repository

import (
	"context"

	"go-telemedicine/internal/domain/entity"
)

// ConsultationRepository is the append-mostly ledger of consultations.
//
// Update loads the record, applies fn and persists the result as one atomic
// step. If fn returns an error nothing is written and that error is returned.
// A missing record yields ErrNotFound.
type ConsultationRepository interface {
	Create(ctx context.Context, consultation *entity.Consultation) error
	FindByID(ctx context.Context, id int) (*entity.Consultation, error)
	FindByDoctorID(ctx context.Context, doctorID int) ([]entity.Consultation, error)
	FindByPatientID(ctx context.Context, patientID int) ([]entity.Consultation, error)
	Update(ctx context.Context, id int, fn func(consultation *entity.Consultation) error) (*entity.Consultation, error)
}
