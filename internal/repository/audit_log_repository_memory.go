package repository

import (
	"context"
	"sync"

	"go-telemedicine/internal/domain/entity"
	domainRepo "go-telemedicine/internal/domain/repository"
)

type memoryAuditLogRepository struct {
	mu   sync.Mutex
	logs []entity.AuditLog
}

func NewMemoryAuditLogRepository() domainRepo.AuditLogRepository {
	return &memoryAuditLogRepository{}
}

func (r *memoryAuditLogRepository) Create(_ context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.ID = len(r.logs) + 1
	if log.CreatedAt.IsZero() {
		log.CreatedAt = now()
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *memoryAuditLogRepository) FindAll(_ context.Context) ([]entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logs := make([]entity.AuditLog, len(r.logs))
	copy(logs, r.logs)
	return logs, nil
}
