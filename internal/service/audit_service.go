package service

import (
	"context"

	"go-telemedicine/internal/domain/entity"
	"go-telemedicine/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// Actor identifies who performed an audited action.
type Actor struct {
	Kind entity.SessionKind
	ID   int
}

type AuditService interface {
	Log(ctx context.Context, actor Actor, action, entityName string, entityID int, metadata map[string]interface{})
	List(ctx context.Context) ([]entity.AuditLog, error)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// Log records an audit entry. Failures are logged and never interrupt the
// action being audited.
func (s *auditService) Log(ctx context.Context, actor Actor, action, entityName string, entityID int, metadata map[string]interface{}) {
	auditLog := &entity.AuditLog{
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		ActorKind: actor.Kind,
		ActorID:   actor.ID,
		Metadata:  metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
	}

	s.log.WithFields(logrus.Fields{
		"audit":      true,
		"action":     action,
		"entity":     entityName,
		"entity_id":  entityID,
		"actor_kind": actor.Kind,
		"actor_id":   actor.ID,
	}).Info("audit")
}

func (s *auditService) List(ctx context.Context) ([]entity.AuditLog, error) {
	logs, err := s.auditRepo.FindAll(ctx)
	if err != nil {
		s.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}
	return logs, nil
}
