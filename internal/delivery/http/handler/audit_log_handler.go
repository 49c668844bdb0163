package handler

import (
	"net/http"

	"go-telemedicine/internal/delivery/http/middleware"
	"go-telemedicine/internal/domain/entity"
	"go-telemedicine/internal/service"
	"go-telemedicine/pkg/response"
)

type AuditLogHandler struct {
	auditService service.AuditService
}

func NewAuditLogHandler(auditService service.AuditService) *AuditLogHandler {
	return &AuditLogHandler{
		auditService: auditService,
	}
}

// GetMyAuditLogs returns the audit entries recorded for the signed-in doctor.
func (h *AuditLogHandler) GetMyAuditLogs(w http.ResponseWriter, r *http.Request) {
	doctor, _ := middleware.GetDoctorFromContext(r.Context())

	auditLogs, err := h.auditService.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	mine := make([]entity.AuditLog, 0)
	for _, auditLog := range auditLogs {
		if auditLog.ActorKind == entity.SessionKindDoctor && auditLog.ActorID == doctor.ID {
			mine = append(mine, auditLog)
		}
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", mine)
}
