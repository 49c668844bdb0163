package handler

import (
	"errors"
	"net/http"

	"go-telemedicine/internal/usecase"
	"go-telemedicine/pkg/response"
)

// writeError answers with the status and message the client expects for a
// usecase error. Unknown errors become a 500 carrying fallback.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "Not logged in")
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		response.BadRequest(w, "Email already exists")
	case errors.Is(err, usecase.ErrPhoneAlreadyExists):
		response.BadRequest(w, "Phone already exists")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.Unauthorized(w, "Wrong email or password")
	case errors.Is(err, usecase.ErrInvalidYears):
		response.BadRequest(w, "Years of experience must be a number")
	case errors.Is(err, usecase.ErrInvalidAge):
		response.BadRequest(w, "Age must be a number")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrConsultationNotFound):
		response.NotFound(w, "Consultation not found")
	case errors.Is(err, usecase.ErrPrescriptionNotFound):
		response.NotFound(w, "Prescription not found")
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, "Not authorized")
	case errors.Is(err, usecase.ErrCareRequired):
		response.BadRequest(w, "Care to be taken is required")
	case errors.Is(err, usecase.ErrNoFileUploaded):
		response.BadRequest(w, "No file uploaded")
	case errors.Is(err, usecase.ErrInvalidFileType):
		response.BadRequest(w, "Only PDF files are allowed!")
	case errors.Is(err, usecase.ErrFileTooLarge):
		response.BadRequest(w, "File too large")
	case errors.Is(err, usecase.ErrFileNotFound):
		response.NotFound(w, "File not found")
	case errors.Is(err, usecase.ErrRenderTimeout):
		response.Error(w, http.StatusServiceUnavailable, "Prescription rendering timed out")
	case errors.Is(err, errInvalidBody):
		response.BadRequest(w, "Invalid request body")
	default:
		response.InternalServerError(w, fallback)
	}
}
