package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/delivery/http/middleware"
	"go-telemedicine/internal/usecase"
	"go-telemedicine/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// multipartOverhead leaves room for the boundaries and the notes field on
// top of the file size limit.
const multipartOverhead = 1 << 20

type PrescriptionHandler struct {
	log                 *logrus.Logger
	prescriptionUsecase usecase.PrescriptionUsecase
	maxUploadBytes      int64
}

func NewPrescriptionHandler(log *logrus.Logger, prescriptionUsecase usecase.PrescriptionUsecase, maxUploadBytes int64) *PrescriptionHandler {
	return &PrescriptionHandler{
		log:                 log,
		prescriptionUsecase: prescriptionUsecase,
		maxUploadBytes:      maxUploadBytes,
	}
}

func consultationID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["consultationId"])
	return id, err == nil
}

func (h *PrescriptionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := consultationID(r)
	if !ok {
		response.NotFound(w, "Consultation not found")
		return
	}

	var req dto.PrescriptionRequest
	if err := bindRequest(r, &req); err != nil {
		writeError(w, err, "")
		return
	}

	doctor, _ := middleware.GetDoctorFromContext(r.Context())
	result, err := h.prescriptionUsecase.Attach(r.Context(), id, doctor, &req)
	if err != nil {
		writeError(w, err, "Failed to submit prescription")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Generate renders the prescription and streams it as an attachment.
func (h *PrescriptionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id, ok := consultationID(r)
	if !ok {
		response.NotFound(w, "Prescription not found")
		return
	}

	doctor, _ := middleware.GetDoctorFromContext(r.Context())
	document, err := h.prescriptionUsecase.GeneratePDF(r.Context(), id, doctor)
	if err != nil {
		writeError(w, err, "Failed to generate prescription")
		return
	}

	if err := response.PDF(w, document.Filename, bytes.NewReader(document.Content)); err != nil {
		h.log.Warnf("Failed to stream prescription %s: %+v", document.Filename, err)
	}
}

func (h *PrescriptionHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, ok := consultationID(r)
	if !ok {
		response.NotFound(w, "Consultation not found")
		return
	}

	doctor, _ := middleware.GetDoctorFromContext(r.Context())
	result, err := h.prescriptionUsecase.MarkSent(r.Context(), id, doctor)
	if err != nil {
		writeError(w, err, "Failed to send prescription")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Upload accepts a PDF in the pdfFile multipart field plus optional notes.
func (h *PrescriptionHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := consultationID(r)
	if !ok {
		response.NotFound(w, "Consultation not found")
		return
	}

	upload, err := h.readUpload(w, r)
	if err != nil {
		writeError(w, err, "")
		return
	}
	if upload != nil {
		if closer, ok := upload.Content.(interface{ Close() error }); ok {
			defer closer.Close()
		}
	}

	doctor, _ := middleware.GetDoctorFromContext(r.Context())
	result, err := h.prescriptionUsecase.AttachUploadedPDF(r.Context(), id, doctor, upload)
	if err != nil {
		writeError(w, err, "Failed to upload prescription")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// readUpload returns nil without error when the request carries no file;
// the usecase decides what that means.
func (h *PrescriptionHandler) readUpload(w http.ResponseWriter, r *http.Request) (*dto.UploadedPDF, error) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, usecase.ErrFileTooLarge
		case errors.Is(err, http.ErrNotMultipart):
			return nil, nil
		default:
			return nil, errInvalidBody
		}
	}

	file, header, err := r.FormFile("pdfFile")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errInvalidBody
	}

	return &dto.UploadedPDF{
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Content:      file,
		Notes:        r.FormValue("notes"),
	}, nil
}

// Download streams a stored document by name. No session is required.
func (h *PrescriptionHandler) Download(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	rc, err := h.prescriptionUsecase.OpenStoredPDF(r.Context(), filename)
	if err != nil {
		writeError(w, err, "Failed to download file")
		return
	}
	defer rc.Close()

	if err := response.PDF(w, filename, rc); err != nil {
		h.log.Warnf("Failed to stream %s: %+v", filename, err)
	}
}
