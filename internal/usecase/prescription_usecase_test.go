package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/domain/entity"
	"go-telemedicine/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func pdfUpload(content []byte, contentType string) *dto.UploadedPDF {
	return &dto.UploadedPDF{
		OriginalName: "rx.pdf",
		ContentType:  contentType,
		Size:         int64(len(content)),
		Content:      bytes.NewReader(content),
	}
}

func TestPrescriptionUsecase_Attach(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, b, _ := f.scenario(t)

	t.Run("other doctor is forbidden", func(t *testing.T) {
		_, err := f.prescriptions.Attach(ctx, 1, b, &dto.PrescriptionRequest{CareToBeTaken: "Rest"})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("blank care is rejected", func(t *testing.T) {
		for _, care := range []string{"", "   ", "\n\t"} {
			_, err := f.prescriptions.Attach(ctx, 1, a, &dto.PrescriptionRequest{CareToBeTaken: care})
			assert.ErrorIs(t, err, ErrCareRequired)
		}
		list, err := f.consultations.ListByDoctor(ctx, a.ID)
		require.NoError(t, err)
		assert.Nil(t, list[0].Prescription)
	})

	t.Run("unknown consultation", func(t *testing.T) {
		_, err := f.prescriptions.Attach(ctx, 9, a, &dto.PrescriptionRequest{CareToBeTaken: "Rest"})
		assert.ErrorIs(t, err, ErrConsultationNotFound)
	})

	t.Run("owner attaches", func(t *testing.T) {
		resp, err := f.prescriptions.Attach(ctx, 1, a, &dto.PrescriptionRequest{CareToBeTaken: "Rest"})
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "prescription_1_1705829400000.pdf", resp.PDFFile)

		list, err := f.consultations.ListByDoctor(ctx, a.ID)
		require.NoError(t, err)
		p := list[0].Prescription
		require.NotNil(t, p)
		assert.Equal(t, "Rest", p.CareToBeTaken)
		assert.Equal(t, "Aayush Mali", p.PrescribedBy)
		assert.Equal(t, fixedNow, p.PrescribedAt)
	})

	t.Run("rejection keeps the existing prescription", func(t *testing.T) {
		_, err := f.prescriptions.Attach(ctx, 1, a, &dto.PrescriptionRequest{CareToBeTaken: " "})
		assert.ErrorIs(t, err, ErrCareRequired)

		list, err := f.consultations.ListByDoctor(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rest", list[0].Prescription.CareToBeTaken)
	})
}

func TestPrescriptionUsecase_MarkSent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, b, _ := f.scenario(t)

	_, err := f.prescriptions.MarkSent(ctx, 1, a)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)

	_, err = f.prescriptions.MarkSent(ctx, 5, a)
	assert.ErrorIs(t, err, ErrConsultationNotFound)

	_, err = f.prescriptions.Attach(ctx, 1, a, &dto.PrescriptionRequest{CareToBeTaken: "Rest"})
	require.NoError(t, err)

	_, err = f.prescriptions.MarkSent(ctx, 1, b)
	assert.ErrorIs(t, err, ErrForbidden)

	resp, err := f.prescriptions.MarkSent(ctx, 1, a)
	require.NoError(t, err)
	assert.Equal(t, "Prescription sent to Shreya Jain at shreya@demo.com", resp.Message)

	list, err := f.consultations.ListByDoctor(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, list[0].Prescription.SentAt)
	assert.True(t, list[0].Prescription.SentToPatient)
	assert.Equal(t, fixedNow, *list[0].Prescription.SentAt)

	// sending again refreshes the timestamp
	later := fixedNow.Add(time.Hour)
	f.prescriptions.now = func() time.Time { return later }
	_, err = f.prescriptions.MarkSent(ctx, 1, a)
	require.NoError(t, err)
	list, err = f.consultations.ListByDoctor(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, later, *list[0].Prescription.SentAt)

	// mail is off by default
	assert.Empty(t, f.mailer.sent)
}

func TestPrescriptionUsecase_MarkSentWithMail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _, _ := f.scenario(t)
	f.prescriptions.config.MailEnabled = true

	_, err := f.prescriptions.Attach(ctx, 1, a, &dto.PrescriptionRequest{CareToBeTaken: "Rest"})
	require.NoError(t, err)

	f.mailer.err = errors.New("smtp down")
	_, err = f.prescriptions.MarkSent(ctx, 1, a)
	require.Error(t, err)

	list, err := f.consultations.ListByDoctor(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, list[0].Prescription.SentToPatient)

	f.mailer.err = nil
	_, err = f.prescriptions.MarkSent(ctx, 1, a)
	require.NoError(t, err)
	require.Len(t, f.mailer.sent, 1)

	msg := f.mailer.sent[0]
	assert.Equal(t, "shreya@demo.com", msg.To)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "prescription_1_1705829400000.pdf", msg.Attachments[0].Filename)
	assert.True(t, bytes.HasPrefix(msg.Attachments[0].Content, []byte("%PDF-")))
}

func TestPrescriptionUsecase_AttachUploadedPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, b, _ := f.scenario(t)

	t.Run("non-PDF never reaches the ledger", func(t *testing.T) {
		_, err := f.prescriptions.AttachUploadedPDF(ctx, 1, a, pdfUpload([]byte("hello"), "text/plain"))
		assert.ErrorIs(t, err, ErrInvalidFileType)

		// declared as PDF but the content is not
		_, err = f.prescriptions.AttachUploadedPDF(ctx, 1, a, pdfUpload([]byte("plain text"), "application/pdf"))
		assert.ErrorIs(t, err, ErrInvalidFileType)

		list, err := f.consultations.ListByDoctor(ctx, a.ID)
		require.NoError(t, err)
		assert.Nil(t, list[0].Prescription)
	})

	t.Run("oversized", func(t *testing.T) {
		big := append(append([]byte{}, samplePDF...), bytes.Repeat([]byte("x"), 2048)...)
		_, err := f.prescriptions.AttachUploadedPDF(ctx, 1, a, pdfUpload(big, "application/pdf"))
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := f.prescriptions.AttachUploadedPDF(ctx, 1, a, nil)
		assert.ErrorIs(t, err, ErrNoFileUploaded)
	})

	t.Run("other doctor", func(t *testing.T) {
		_, err := f.prescriptions.AttachUploadedPDF(ctx, 1, b, pdfUpload(samplePDF, "application/pdf"))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("creates a placeholder prescription", func(t *testing.T) {
		resp, err := f.prescriptions.AttachUploadedPDF(ctx, 1, a, pdfUpload(samplePDF, "application/pdf"))
		require.NoError(t, err)
		assert.Equal(t, "custom_1705829400000-42.pdf", resp.Filename)
		assert.Equal(t, "PDF uploaded successfully", resp.Message)

		list, err := f.consultations.ListByDoctor(ctx, a.ID)
		require.NoError(t, err)
		p := list[0].Prescription
		require.NotNil(t, p)
		assert.Equal(t, entity.DefaultUploadCare, p.CareToBeTaken)
		require.Len(t, p.CustomPDFs, 1)
		assert.Equal(t, "rx.pdf", p.CustomPDFs[0].OriginalName)

		rc, err := f.prescriptions.OpenStoredPDF(ctx, resp.Filename)
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, samplePDF, data)
	})

	t.Run("notes become the care text and are kept per file", func(t *testing.T) {
		f2 := newFixture(t)
		a2, _, _ := f2.scenario(t)
		upload := pdfUpload(samplePDF, "application/pdf")
		upload.Notes = "Take with food"

		_, err := f2.prescriptions.AttachUploadedPDF(ctx, 1, a2, upload)
		require.NoError(t, err)

		list, err := f2.consultations.ListByDoctor(ctx, a2.ID)
		require.NoError(t, err)
		assert.Equal(t, "Take with food", list[0].Prescription.CareToBeTaken)
		assert.Equal(t, "Take with food", list[0].Prescription.CustomPDFs[0].Notes)
	})
}

func TestPrescriptionUsecase_GeneratePDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _, _ := f.scenario(t)

	t.Run("no prescription writes nothing", func(t *testing.T) {
		_, err := f.prescriptions.GeneratePDF(ctx, 1, a)
		assert.ErrorIs(t, err, ErrPrescriptionNotFound)

		ok, err := f.store.Exists(ctx, "prescription_1.pdf")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown consultation", func(t *testing.T) {
		_, err := f.prescriptions.GeneratePDF(ctx, 7, a)
		assert.ErrorIs(t, err, ErrPrescriptionNotFound)
	})

	_, err := f.prescriptions.Attach(ctx, 1, a, &dto.PrescriptionRequest{CareToBeTaken: "Rest"})
	require.NoError(t, err)

	doc, err := f.prescriptions.GeneratePDF(ctx, 1, a)
	require.NoError(t, err)
	assert.Equal(t, "prescription_1_1705829400000.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))

	rc, err := f.prescriptions.OpenStoredPDF(ctx, doc.Filename)
	require.NoError(t, err)
	stored, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, doc.Content, stored)

	again, err := f.prescriptions.GeneratePDF(ctx, 1, a)
	require.NoError(t, err)
	assert.Equal(t, doc.Content, again.Content)
}

type slowRenderer struct {
	service.PrescriptionRenderer
	delay time.Duration
}

func (r slowRenderer) Render(c *entity.Consultation) ([]byte, error) {
	time.Sleep(r.delay)
	return r.PrescriptionRenderer.Render(c)
}

func TestPrescriptionUsecase_RenderTimeout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _, _ := f.scenario(t)
	_, err := f.prescriptions.Attach(ctx, 1, a, &dto.PrescriptionRequest{CareToBeTaken: "Rest"})
	require.NoError(t, err)

	f.prescriptions.renderer = slowRenderer{PrescriptionRenderer: service.NewPrescriptionRenderer(), delay: 200 * time.Millisecond}
	f.prescriptions.config.RenderTimeout = 10 * time.Millisecond

	_, err = f.prescriptions.GeneratePDF(ctx, 1, a)
	assert.ErrorIs(t, err, ErrRenderTimeout)

	ok, err := f.store.Exists(ctx, "prescription_1_1705829400000.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingStore struct {
	saveErr error
}

func (s failingStore) Save(context.Context, string, io.Reader) error { return s.saveErr }
func (s failingStore) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}
func (s failingStore) Exists(context.Context, string) (bool, error) { return false, nil }
func (s failingStore) Delete(context.Context, string) error { return nil }

func TestPrescriptionUsecase_StoreFailureLeavesLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _, _ := f.scenario(t)
	_, err := f.prescriptions.Attach(ctx, 1, a, &dto.PrescriptionRequest{CareToBeTaken: "Rest"})
	require.NoError(t, err)

	before, err := f.consultations.ListByDoctor(ctx, a.ID)
	require.NoError(t, err)

	f.prescriptions.fileStore = failingStore{saveErr: errors.New("disk full")}
	_, err = f.prescriptions.GeneratePDF(ctx, 1, a)
	require.Error(t, err)

	_, err = f.prescriptions.AttachUploadedPDF(ctx, 1, a, pdfUpload(samplePDF, "application/pdf"))
	require.Error(t, err)

	after, err := f.consultations.ListByDoctor(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPrescriptionUsecase_OpenStoredPDF(t *testing.T) {
	f := newFixture(t)
	_, err := f.prescriptions.OpenStoredPDF(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = f.prescriptions.OpenStoredPDF(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, ErrFileNotFound)
}
