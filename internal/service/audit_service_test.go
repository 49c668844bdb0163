package service

import (
	"context"
	"io"
	"testing"

	"go-telemedicine/internal/domain/entity"
	"go-telemedicine/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_Log(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetOutput(io.Discard)
	svc := NewAuditService(log, repository.NewMemoryAuditLogRepository())

	svc.Log(context.Background(), Actor{Kind: entity.SessionKindDoctor, ID: 2},
		entity.AuditActionPrescriptionCreate, entity.AuditEntityConsultation, 7,
		map[string]interface{}{"pdf_file": "prescription_7_1.pdf"})

	logs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionPrescriptionCreate, logs[0].Action)
	assert.Equal(t, 7, logs[0].EntityID)
	assert.Equal(t, entity.SessionKindDoctor, logs[0].ActorKind)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, entity.AuditActionPrescriptionCreate, entry.Data["action"])
	assert.Equal(t, 2, entry.Data["actor_id"])
}
