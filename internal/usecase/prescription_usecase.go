package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/domain/entity"
	"go-telemedicine/internal/domain/repository"
	"go-telemedicine/internal/infrastructure/mail"
	"go-telemedicine/internal/infrastructure/storage"
	"go-telemedicine/internal/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

const pdfMIME = "application/pdf"

var (
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrForbidden            = errors.New("not authorized")
	ErrCareRequired         = errors.New("care to be taken is required")
	ErrNoFileUploaded       = errors.New("no file uploaded")
	ErrInvalidFileType      = errors.New("only PDF files are allowed")
	ErrFileTooLarge         = errors.New("file exceeds the upload size limit")
	ErrFileNotFound         = errors.New("file not found")
	ErrRenderTimeout        = errors.New("prescription rendering timed out")
)

type PrescriptionConfig struct {
	RenderTimeout  time.Duration
	MaxUploadBytes int64
	// MailEnabled e-mails the rendered prescription to the patient on send.
	MailEnabled bool
}

type PrescriptionUsecase interface {
	Attach(ctx context.Context, consultationID int, doctor *dto.DoctorResponse, req *dto.PrescriptionRequest) (*dto.SubmitPrescriptionResponse, error)
	MarkSent(ctx context.Context, consultationID int, doctor *dto.DoctorResponse) (*dto.SendPrescriptionResponse, error)
	AttachUploadedPDF(ctx context.Context, consultationID int, doctor *dto.DoctorResponse, upload *dto.UploadedPDF) (*dto.UploadPrescriptionResponse, error)
	GeneratePDF(ctx context.Context, consultationID int, doctor *dto.DoctorResponse) (*dto.PrescriptionDocument, error)
	OpenStoredPDF(ctx context.Context, filename string) (io.ReadCloser, error)
}

type prescriptionUsecase struct {
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	renderer         service.PrescriptionRenderer
	fileStore        storage.FileStore
	mailer           mail.Mailer
	auditService     service.AuditService
	config           PrescriptionConfig
	now              func() time.Time
	randomSuffix     func() int64
}

func NewPrescriptionUsecase(
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	renderer service.PrescriptionRenderer,
	fileStore storage.FileStore,
	mailer mail.Mailer,
	auditService service.AuditService,
	config PrescriptionConfig,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		log:              log,
		consultationRepo: consultationRepo,
		renderer:         renderer,
		fileStore:        fileStore,
		mailer:           mailer,
		auditService:     auditService,
		config:           config,
		now:              time.Now,
		randomSuffix:     func() int64 { return rand.Int63n(1_000_000_001) },
	}
}

// Attach issues the doctor's prescription for a consultation. Issuing again
// replaces the text and resets the sent flag; uploaded documents are kept.
func (u *prescriptionUsecase) Attach(ctx context.Context, consultationID int, doctor *dto.DoctorResponse, req *dto.PrescriptionRequest) (*dto.SubmitPrescriptionResponse, error) {
	prescribedAt := u.now()
	pdfFile := fmt.Sprintf("prescription_%d_%d.pdf", consultationID, prescribedAt.UnixMilli())

	_, err := u.consultationRepo.Update(ctx, consultationID, func(c *entity.Consultation) error {
		if !c.IsOwnedBy(doctor.ID) {
			return ErrForbidden
		}
		if strings.TrimSpace(req.CareToBeTaken) == "" {
			return ErrCareRequired
		}

		var uploads []entity.CustomPDF
		if c.Prescription != nil {
			uploads = c.Prescription.CustomPDFs
		}
		c.Prescription = &entity.Prescription{
			CareToBeTaken: req.CareToBeTaken,
			Medicines:     req.Medicines,
			PrescribedAt:  prescribedAt,
			PrescribedBy:  doctor.Name,
			PDFFile:       pdfFile,
			CustomPDFs:    uploads,
		}
		return nil
	})
	if err != nil {
		return nil, u.mapLedgerError(err, "attach prescription")
	}

	u.auditService.Log(ctx, service.Actor{Kind: entity.SessionKindDoctor, ID: doctor.ID},
		entity.AuditActionPrescriptionCreate, entity.AuditEntityConsultation, consultationID,
		map[string]interface{}{"pdf_file": pdfFile})

	return &dto.SubmitPrescriptionResponse{Success: true, PDFFile: pdfFile}, nil
}

// MarkSent flags the prescription as delivered to the patient. Marking an
// already sent prescription again refreshes the timestamp.
func (u *prescriptionUsecase) MarkSent(ctx context.Context, consultationID int, doctor *dto.DoctorResponse) (*dto.SendPrescriptionResponse, error) {
	consultation, err := u.consultationRepo.FindByID(ctx, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", consultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if !consultation.IsOwnedBy(doctor.ID) {
		return nil, ErrForbidden
	}
	if !consultation.HasPrescription() {
		return nil, ErrPrescriptionNotFound
	}

	if u.config.MailEnabled {
		if err := u.deliver(ctx, consultation); err != nil {
			return nil, err
		}
	}

	updated, err := u.consultationRepo.Update(ctx, consultationID, func(c *entity.Consultation) error {
		if !c.IsOwnedBy(doctor.ID) {
			return ErrForbidden
		}
		if !c.HasPrescription() {
			return ErrPrescriptionNotFound
		}
		c.Prescription.MarkSent(u.now())
		return nil
	})
	if err != nil {
		return nil, u.mapLedgerError(err, "mark prescription sent")
	}

	u.auditService.Log(ctx, service.Actor{Kind: entity.SessionKindDoctor, ID: doctor.ID},
		entity.AuditActionPrescriptionSend, entity.AuditEntityConsultation, consultationID,
		map[string]interface{}{"email": updated.PatientEmail, "mailed": u.config.MailEnabled})

	return &dto.SendPrescriptionResponse{
		Success: true,
		Message: fmt.Sprintf("Prescription sent to %s at %s", updated.PatientName, updated.PatientEmail),
	}, nil
}

func (u *prescriptionUsecase) deliver(ctx context.Context, c *entity.Consultation) error {
	content, err := u.render(ctx, c)
	if err != nil {
		u.log.Warnf("Failed to render prescription %d for delivery: %+v", c.ID, err)
		return err
	}

	err = u.mailer.Send(ctx, mail.Message{
		To:      c.PatientEmail,
		Subject: "Your medical prescription",
		Body: fmt.Sprintf("Dear %s,\n\nPlease find attached the prescription issued by Dr. %s.\n",
			c.PatientName, c.DoctorName),
		Attachments: []mail.Attachment{{Filename: prescriptionFileName(c), Content: content}},
	})
	if err != nil {
		u.log.Warnf("Failed to mail prescription %d: %+v", c.ID, err)
		return err
	}
	return nil
}

// AttachUploadedPDF stores a doctor supplied PDF and lists it on the
// consultation's prescription, creating a placeholder prescription when
// none exists yet. Invalid files never reach the ledger.
func (u *prescriptionUsecase) AttachUploadedPDF(ctx context.Context, consultationID int, doctor *dto.DoctorResponse, upload *dto.UploadedPDF) (*dto.UploadPrescriptionResponse, error) {
	consultation, err := u.consultationRepo.FindByID(ctx, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", consultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if !consultation.IsOwnedBy(doctor.ID) {
		return nil, ErrForbidden
	}
	if upload == nil || upload.Content == nil {
		return nil, ErrNoFileUploaded
	}
	if err := u.validateUpload(upload); err != nil {
		return nil, err
	}

	uploadedAt := u.now()
	filename := fmt.Sprintf("custom_%d-%d%s", uploadedAt.UnixMilli(), u.randomSuffix(), filepath.Ext(upload.OriginalName))
	if err := u.fileStore.Save(ctx, filename, upload.Content); err != nil {
		u.log.Warnf("Failed to store uploaded prescription: %+v", err)
		return nil, err
	}

	_, err = u.consultationRepo.Update(ctx, consultationID, func(c *entity.Consultation) error {
		if !c.IsOwnedBy(doctor.ID) {
			return ErrForbidden
		}
		if c.Prescription == nil {
			care := upload.Notes
			if care == "" {
				care = entity.DefaultUploadCare
			}
			c.Prescription = &entity.Prescription{
				CareToBeTaken: care,
				PrescribedAt:  uploadedAt,
				PrescribedBy:  doctor.Name,
			}
		}
		c.Prescription.AddCustomPDF(entity.CustomPDF{
			Filename:     filename,
			OriginalName: upload.OriginalName,
			UploadedAt:   uploadedAt,
			Notes:        upload.Notes,
		})
		return nil
	})
	if err != nil {
		if delErr := u.fileStore.Delete(ctx, filename); delErr != nil {
			u.log.Warnf("Failed to remove orphaned upload %s: %+v", filename, delErr)
		}
		return nil, u.mapLedgerError(err, "attach uploaded prescription")
	}

	u.auditService.Log(ctx, service.Actor{Kind: entity.SessionKindDoctor, ID: doctor.ID},
		entity.AuditActionPrescriptionUpload, entity.AuditEntityConsultation, consultationID,
		map[string]interface{}{"filename": filename, "original_name": upload.OriginalName})

	return &dto.UploadPrescriptionResponse{
		Success:  true,
		Message:  "PDF uploaded successfully",
		Filename: filename,
	}, nil
}

// validateUpload checks the declared type, the sniffed content and the size,
// then rewinds the content for storage.
func (u *prescriptionUsecase) validateUpload(upload *dto.UploadedPDF) error {
	if u.config.MaxUploadBytes > 0 && upload.Size > u.config.MaxUploadBytes {
		return ErrFileTooLarge
	}

	declared, _, err := mime.ParseMediaType(upload.ContentType)
	if err != nil || declared != pdfMIME {
		return ErrInvalidFileType
	}

	detected, err := mimetype.DetectReader(upload.Content)
	if err != nil {
		return fmt.Errorf("sniff upload: %w", err)
	}
	if _, err := upload.Content.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind upload: %w", err)
	}
	if !detected.Is(pdfMIME) {
		return ErrInvalidFileType
	}
	return nil
}

// GeneratePDF renders the consultation's prescription, stores the document
// and returns it for streaming. Nothing is written when the consultation has
// no prescription or rendering fails.
func (u *prescriptionUsecase) GeneratePDF(ctx context.Context, consultationID int, doctor *dto.DoctorResponse) (*dto.PrescriptionDocument, error) {
	consultation, err := u.consultationRepo.FindByID(ctx, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", consultationID, err)
		return nil, err
	}
	if consultation == nil || !consultation.HasPrescription() {
		return nil, ErrPrescriptionNotFound
	}

	content, err := u.render(ctx, consultation)
	if err != nil {
		u.log.Warnf("Failed to render prescription %d: %+v", consultationID, err)
		return nil, err
	}

	filename := prescriptionFileName(consultation)
	if err := u.fileStore.Save(ctx, filename, bytes.NewReader(content)); err != nil {
		u.log.Warnf("Failed to store prescription %s: %+v", filename, err)
		return nil, err
	}
	u.log.WithField("filename", filename).Info("PDF saved")

	u.auditService.Log(ctx, service.Actor{Kind: entity.SessionKindDoctor, ID: doctor.ID},
		entity.AuditActionPrescriptionRender, entity.AuditEntityConsultation, consultationID,
		map[string]interface{}{"filename": filename})

	return &dto.PrescriptionDocument{Filename: filename, Content: content}, nil
}

func (u *prescriptionUsecase) OpenStoredPDF(ctx context.Context, filename string) (io.ReadCloser, error) {
	rc, err := u.fileStore.Open(ctx, filename)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, ErrFileNotFound
		}
		u.log.Warnf("Failed to open stored file %s: %+v", filename, err)
		return nil, err
	}
	return rc, nil
}

// render runs the renderer under the configured deadline.
func (u *prescriptionUsecase) render(ctx context.Context, c *entity.Consultation) ([]byte, error) {
	if u.config.RenderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.config.RenderTimeout)
		defer cancel()
	}

	type result struct {
		content []byte
		err     error
	}
	done := make(chan result, 1)
	go func() {
		content, err := u.renderer.Render(c)
		done <- result{content: content, err: err}
	}()

	select {
	case res := <-done:
		return res.content, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrRenderTimeout
		}
		return nil, ctx.Err()
	}
}

func (u *prescriptionUsecase) mapLedgerError(err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrConsultationNotFound
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrCareRequired),
		errors.Is(err, ErrPrescriptionNotFound):
		return err
	}
	u.log.Warnf("Failed to %s: %+v", action, err)
	return err
}

func prescriptionFileName(c *entity.Consultation) string {
	if c.Prescription != nil && c.Prescription.PDFFile != "" {
		return c.Prescription.PDFFile
	}
	return fmt.Sprintf("prescription_%d.pdf", c.ID)
}
