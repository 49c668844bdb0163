package entity

import "time"

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int                    `gorm:"primaryKey;autoIncrement" json:"id"`
	Action    string                 `gorm:"type:varchar(50);not null;index" json:"action"`
	Entity    string                 `gorm:"type:varchar(50);not null" json:"entity"`
	EntityID  int                    `gorm:"not null" json:"entity_id"`
	ActorKind SessionKind            `gorm:"type:varchar(20)" json:"actor_kind,omitempty"`
	ActorID   int                    `json:"actor_id,omitempty"`
	Metadata  map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"metadata,omitempty"`
	CreatedAt time.Time              `gorm:"autoCreateTime" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionDoctorSignup       = "doctor.signup"
	AuditActionDoctorLogin        = "doctor.login"
	AuditActionDoctorLogout       = "doctor.logout"
	AuditActionPatientSignup      = "patient.signup"
	AuditActionPatientLogin       = "patient.login"
	AuditActionPatientLogout      = "patient.logout"
	AuditActionConsultationCreate = "consultation.create"
	AuditActionPrescriptionCreate = "prescription.create"
	AuditActionPrescriptionRender = "prescription.render"
	AuditActionPrescriptionSend   = "prescription.send"
	AuditActionPrescriptionUpload = "prescription.upload"
)

// Audit entity names
const (
	AuditEntityDoctor       = "doctor"
	AuditEntityPatient      = "patient"
	AuditEntityConsultation = "consultation"
)
