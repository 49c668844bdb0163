package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsultation_HadRecentSurgery(t *testing.T) {
	cases := map[string]bool{
		"":                 false,
		"None":             false,
		"  None ":          true,
		"none":             true,
		"Appendectomy":     true,
		"Knee arthroscopy": true,
	}
	for surgery, want := range cases {
		c := Consultation{RecentSurgery: surgery}
		assert.Equal(t, want, c.HadRecentSurgery(), "surgery %q", surgery)
	}
}

func TestConsultation_CloneIsIndependent(t *testing.T) {
	sentAt := time.Date(2024, 1, 21, 10, 0, 0, 0, time.UTC)
	original := Consultation{
		ID:       1,
		DoctorID: 1,
		Prescription: &Prescription{
			CareToBeTaken: "Rest",
			SentAt:        &sentAt,
			CustomPDFs:    []CustomPDF{{Filename: "custom_1-2.pdf"}},
		},
	}

	clone := original.Clone()
	clone.Prescription.CareToBeTaken = "Changed"
	clone.Prescription.AddCustomPDF(CustomPDF{Filename: "custom_3-4.pdf"})
	clone.Prescription.CustomPDFs[0].Notes = "edited"
	*clone.Prescription.SentAt = sentAt.Add(time.Hour)

	assert.Equal(t, "Rest", original.Prescription.CareToBeTaken)
	assert.Len(t, original.Prescription.CustomPDFs, 1)
	assert.Empty(t, original.Prescription.CustomPDFs[0].Notes)
	assert.Equal(t, sentAt, *original.Prescription.SentAt)
}

func TestPrescription_MarkSentRefreshesTimestamp(t *testing.T) {
	p := &Prescription{CareToBeTaken: "Rest"}
	first := time.Date(2024, 1, 21, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)

	p.MarkSent(first)
	p.MarkSent(second)

	assert.True(t, p.SentToPatient)
	assert.Equal(t, second, *p.SentAt)
}
