package converter

import (
	"testing"
	"time"

	"go-telemedicine/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsultationToResponse(t *testing.T) {
	assert.Nil(t, ConsultationToResponse(nil))

	at := time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC)
	c := &entity.Consultation{
		ID:         3,
		DoctorID:   1,
		PatientID:  2,
		DoctorName: "A",
		Prescription: &entity.Prescription{
			CareToBeTaken: "Rest",
			PrescribedAt:  at,
			CustomPDFs:    []entity.CustomPDF{{Filename: "custom_1-2.pdf", OriginalName: "rx.pdf"}},
		},
	}

	resp := ConsultationToResponse(c)
	require.NotNil(t, resp.Prescription)
	assert.Equal(t, 3, resp.ID)
	assert.Equal(t, "Rest", resp.Prescription.CareToBeTaken)
	require.Len(t, resp.Prescription.CustomPDFs, 1)
	assert.Equal(t, "rx.pdf", resp.Prescription.CustomPDFs[0].OriginalName)
}

func TestPatientToResponse_EmptyHistories(t *testing.T) {
	resp := PatientToResponse(&entity.Patient{ID: 1})
	assert.Equal(t, []string{}, resp.SurgeryHistory)
	assert.Equal(t, []string{}, resp.IllnessHistory)
}
