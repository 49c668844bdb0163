package repository

import (
	"context"
	"sync"

	"go-telemedicine/internal/domain/entity"
	domainRepo "go-telemedicine/internal/domain/repository"
)

type memoryPatientRepository struct {
	mu       sync.RWMutex
	patients []entity.Patient
}

func NewMemoryPatientRepository() domainRepo.PatientRepository {
	return &memoryPatientRepository{}
}

func (r *memoryPatientRepository) Create(_ context.Context, patient *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.patients {
		if r.patients[i].Email == patient.Email {
			return domainRepo.ErrDuplicateEmail
		}
	}
	for i := range r.patients {
		if r.patients[i].Phone == patient.Phone {
			return domainRepo.ErrDuplicatePhone
		}
	}

	patient.ID = len(r.patients) + 1
	if patient.CreatedAt.IsZero() {
		patient.CreatedAt = now()
	}
	r.patients = append(r.patients, patient.Clone())
	return nil
}

func (r *memoryPatientRepository) FindByID(_ context.Context, id int) (*entity.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.patients {
		if r.patients[i].ID == id {
			patient := r.patients[i].Clone()
			return &patient, nil
		}
	}
	return nil, nil
}

func (r *memoryPatientRepository) FindByEmail(_ context.Context, email string) (*entity.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.patients {
		if r.patients[i].Email == email {
			patient := r.patients[i].Clone()
			return &patient, nil
		}
	}
	return nil, nil
}
