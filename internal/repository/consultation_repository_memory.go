package repository

import (
	"context"
	"sync"
	"time"

	"go-telemedicine/internal/domain/entity"
	domainRepo "go-telemedicine/internal/domain/repository"
)

// now is the clock used to stamp records created without a timestamp.
var now = time.Now

type memoryConsultationRepository struct {
	mu            sync.RWMutex
	consultations []entity.Consultation
}

func NewMemoryConsultationRepository() domainRepo.ConsultationRepository {
	return &memoryConsultationRepository{}
}

func (r *memoryConsultationRepository) Create(_ context.Context, consultation *entity.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	consultation.ID = len(r.consultations) + 1
	if consultation.SubmittedAt.IsZero() {
		consultation.SubmittedAt = now()
	}
	r.consultations = append(r.consultations, consultation.Clone())
	return nil
}

func (r *memoryConsultationRepository) FindByID(_ context.Context, id int) (*entity.Consultation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, nil
	}
	consultation := r.consultations[idx].Clone()
	return &consultation, nil
}

func (r *memoryConsultationRepository) FindByDoctorID(_ context.Context, doctorID int) ([]entity.Consultation, error) {
	return r.filter(func(c *entity.Consultation) bool { return c.DoctorID == doctorID }), nil
}

func (r *memoryConsultationRepository) FindByPatientID(_ context.Context, patientID int) ([]entity.Consultation, error) {
	return r.filter(func(c *entity.Consultation) bool { return c.PatientID == patientID }), nil
}

// Update runs fn on a private copy under the write lock and only stores the
// copy back when fn succeeds.
func (r *memoryConsultationRepository) Update(_ context.Context, id int, fn func(consultation *entity.Consultation) error) (*entity.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, domainRepo.ErrNotFound
	}

	working := r.consultations[idx].Clone()
	if err := fn(&working); err != nil {
		return nil, err
	}
	// ownership and identity are immutable
	working.ID = r.consultations[idx].ID
	working.DoctorID = r.consultations[idx].DoctorID
	working.PatientID = r.consultations[idx].PatientID

	r.consultations[idx] = working.Clone()
	return &working, nil
}

func (r *memoryConsultationRepository) indexOf(id int) int {
	for i := range r.consultations {
		if r.consultations[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *memoryConsultationRepository) filter(match func(c *entity.Consultation) bool) []entity.Consultation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]entity.Consultation, 0)
	for i := range r.consultations {
		if match(&r.consultations[i]) {
			result = append(result, r.consultations[i].Clone())
		}
	}
	return result
}
