package handler

import (
	"net/http"

	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/delivery/http/middleware"
	"go-telemedicine/internal/domain/entity"
	"go-telemedicine/internal/usecase"
	"go-telemedicine/pkg/response"
	"go-telemedicine/pkg/validator"

	"github.com/sirupsen/logrus"
)

const (
	doctorDashboardPath  = "/doctorDashboard"
	patientDashboardPath = "/patientDashboard"
)

type AuthHandler struct {
	log             *logrus.Logger
	identityUsecase usecase.IdentityUsecase
	sessionUsecase  usecase.SessionUsecase
	authMiddleware  *middleware.AuthMiddleware
	validator       *validator.CustomValidator
}

func NewAuthHandler(
	log *logrus.Logger,
	identityUsecase usecase.IdentityUsecase,
	sessionUsecase usecase.SessionUsecase,
	authMiddleware *middleware.AuthMiddleware,
	validator *validator.CustomValidator,
) *AuthHandler {
	return &AuthHandler{
		log:             log,
		identityUsecase: identityUsecase,
		sessionUsecase:  sessionUsecase,
		authMiddleware:  authMiddleware,
		validator:       validator,
	}
}

// DoctorSignCheck sends a signed-in doctor to the dashboard, everyone else
// to the signup view.
func (h *AuthHandler) DoctorSignCheck(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetDoctorFromContext(r.Context()); ok {
		http.Redirect(w, r, doctorDashboardPath, http.StatusFound)
		return
	}
	response.View(w, "doctorSignup", nil)
}

func (h *AuthHandler) DoctorSignInPage(w http.ResponseWriter, r *http.Request) {
	response.View(w, "doctorSignin", nil)
}

func (h *AuthHandler) DoctorSignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.DoctorSignupRequest
	if err := bindRequest(r, &req); err != nil {
		writeError(w, err, "")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.identityUsecase.SignupDoctor(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to sign up")
		return
	}

	h.startSession(w, r, entity.SessionKindDoctor, doctor.ID, doctorDashboardPath)
}

func (h *AuthHandler) DoctorSignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest
	if err := bindRequest(r, &req); err != nil {
		writeError(w, err, "")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.identityUsecase.SigninDoctor(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to sign in")
		return
	}

	h.startSession(w, r, entity.SessionKindDoctor, doctor.ID, doctorDashboardPath)
}

func (h *AuthHandler) DoctorLogout(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r, entity.SessionKindDoctor)
}

// CurrentDoctor renders the doctor view with the signed-in record, or null.
func (h *AuthHandler) CurrentDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, _ := middleware.GetDoctorFromContext(r.Context())
	response.View(w, "doctor", map[string]interface{}{"doctor": doctor})
}

func (h *AuthHandler) PatientSignCheck(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetPatientFromContext(r.Context()); ok {
		http.Redirect(w, r, patientDashboardPath, http.StatusFound)
		return
	}
	response.View(w, "patientSignup", nil)
}

func (h *AuthHandler) PatientSignInPage(w http.ResponseWriter, r *http.Request) {
	response.View(w, "patientSignin", nil)
}

func (h *AuthHandler) PatientSignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientSignupRequest
	if err := bindRequest(r, &req); err != nil {
		writeError(w, err, "")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.identityUsecase.SignupPatient(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to sign up")
		return
	}

	h.startSession(w, r, entity.SessionKindPatient, patient.ID, patientDashboardPath)
}

func (h *AuthHandler) PatientSignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest
	if err := bindRequest(r, &req); err != nil {
		writeError(w, err, "")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.identityUsecase.SigninPatient(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to sign in")
		return
	}

	h.startSession(w, r, entity.SessionKindPatient, patient.ID, patientDashboardPath)
}

func (h *AuthHandler) PatientLogout(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r, entity.SessionKindPatient)
}

func (h *AuthHandler) CurrentPatient(w http.ResponseWriter, r *http.Request) {
	patient, _ := middleware.GetPatientFromContext(r.Context())
	response.View(w, "patient", map[string]interface{}{"patient": patient})
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, kind entity.SessionKind, userID int, target string) {
	token, err := h.sessionUsecase.Start(r.Context(), kind, userID)
	if err != nil {
		response.InternalServerError(w, "Failed to start session")
		return
	}

	h.authMiddleware.SetSessionCookie(w, kind, token)
	http.Redirect(w, r, target, http.StatusFound)
}

// endSession clears the session even when the store is unreachable; the
// cookie is what the browser keeps.
func (h *AuthHandler) endSession(w http.ResponseWriter, r *http.Request, kind entity.SessionKind) {
	if token, ok := middleware.GetSessionTokenFromContext(r.Context(), kind); ok {
		if err := h.sessionUsecase.End(r.Context(), kind, token); err != nil {
			h.log.Warnf("Failed to end %s session: %+v", kind, err)
		}
	}

	h.authMiddleware.ClearSessionCookie(w, kind)
	http.Redirect(w, r, "/", http.StatusFound)
}
