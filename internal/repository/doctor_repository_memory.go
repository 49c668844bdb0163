package repository

import (
	"context"
	"sync"

	"go-telemedicine/internal/domain/entity"
	domainRepo "go-telemedicine/internal/domain/repository"
)

type memoryDoctorRepository struct {
	mu      sync.RWMutex
	doctors []entity.Doctor
}

func NewMemoryDoctorRepository() domainRepo.DoctorRepository {
	return &memoryDoctorRepository{}
}

func (r *memoryDoctorRepository) Create(_ context.Context, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.doctors {
		if r.doctors[i].Email == doctor.Email {
			return domainRepo.ErrDuplicateEmail
		}
	}
	for i := range r.doctors {
		if r.doctors[i].Phone == doctor.Phone {
			return domainRepo.ErrDuplicatePhone
		}
	}

	doctor.ID = len(r.doctors) + 1
	if doctor.CreatedAt.IsZero() {
		doctor.CreatedAt = now()
	}
	r.doctors = append(r.doctors, *doctor)
	return nil
}

func (r *memoryDoctorRepository) FindByID(_ context.Context, id int) (*entity.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.doctors {
		if r.doctors[i].ID == id {
			doctor := r.doctors[i]
			return &doctor, nil
		}
	}
	return nil, nil
}

func (r *memoryDoctorRepository) FindByEmail(_ context.Context, email string) (*entity.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.doctors {
		if r.doctors[i].Email == email {
			doctor := r.doctors[i]
			return &doctor, nil
		}
	}
	return nil, nil
}

func (r *memoryDoctorRepository) FindAll(_ context.Context) ([]entity.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doctors := make([]entity.Doctor, len(r.doctors))
	copy(doctors, r.doctors)
	return doctors, nil
}
