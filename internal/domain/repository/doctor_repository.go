package repository

import (
	"context"

	"go-telemedicine/internal/domain/entity"
)

// DoctorRepository stores doctor records. Create assigns the ID and rejects a
// duplicate email before a duplicate phone. Finders return (nil, nil) when no
// record matches.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id int) (*entity.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*entity.Doctor, error)
	FindAll(ctx context.Context) ([]entity.Doctor, error)
}
