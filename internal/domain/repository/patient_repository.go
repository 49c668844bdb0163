package repository

import (
	"context"

	"go-telemedicine/internal/domain/entity"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id int) (*entity.Patient, error)
	FindByEmail(ctx context.Context, email string) (*entity.Patient, error)
}
