package handler

import (
	"net/http"
	"strconv"

	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/delivery/http/middleware"
	"go-telemedicine/internal/usecase"
	"go-telemedicine/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type PatientHandler struct {
	log                 *logrus.Logger
	identityUsecase     usecase.IdentityUsecase
	consultationUsecase usecase.ConsultationUsecase
}

func NewPatientHandler(log *logrus.Logger, identityUsecase usecase.IdentityUsecase, consultationUsecase usecase.ConsultationUsecase) *PatientHandler {
	return &PatientHandler{
		log:                 log,
		identityUsecase:     identityUsecase,
		consultationUsecase: consultationUsecase,
	}
}

func (h *PatientHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	patient, _ := middleware.GetPatientFromContext(r.Context())
	response.View(w, "patientDashboard", map[string]interface{}{"patient": patient})
}

// FindDoctors lists every registered doctor in registration order
func (h *PatientHandler) FindDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.identityUsecase.ListDoctors(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load doctors")
		return
	}
	response.View(w, "doctorsList", map[string]interface{}{"doctors": doctors})
}

func (h *PatientHandler) ConsultationForm(w http.ResponseWriter, r *http.Request) {
	doctorID, err := strconv.Atoi(mux.Vars(r)["doctorId"])
	if err != nil {
		response.NotFound(w, "Doctor not found")
		return
	}

	doctor, err := h.identityUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		writeError(w, err, "Failed to load doctor")
		return
	}

	patient, _ := middleware.GetPatientFromContext(r.Context())
	response.View(w, "consultationForm", map[string]interface{}{
		"doctor":  doctor,
		"patient": patient,
	})
}

func (h *PatientHandler) SubmitConsultation(w http.ResponseWriter, r *http.Request) {
	doctorID, err := strconv.Atoi(mux.Vars(r)["doctorId"])
	if err != nil {
		response.NotFound(w, "Doctor not found")
		return
	}

	var req dto.ConsultationRequest
	if err := bindRequest(r, &req); err != nil {
		writeError(w, err, "")
		return
	}

	patient, _ := middleware.GetPatientFromContext(r.Context())
	if _, err := h.consultationUsecase.Create(r.Context(), patient.ID, doctorID, &req); err != nil {
		writeError(w, err, "Failed to submit consultation")
		return
	}

	response.JSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *PatientHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	patient, _ := middleware.GetPatientFromContext(r.Context())

	consultations, err := h.consultationUsecase.ListByPatient(r.Context(), patient.ID)
	if err != nil {
		writeError(w, err, "Failed to load consultations")
		return
	}

	response.View(w, "patientAppointments", map[string]interface{}{
		"patient":       patient,
		"consultations": consultations,
	})
}
