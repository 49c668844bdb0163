package handler

import (
	"net/http"

	"go-telemedicine/internal/delivery/http/middleware"
	"go-telemedicine/internal/usecase"
	"go-telemedicine/pkg/response"

	"github.com/sirupsen/logrus"
)

// DoctorHandler serves the pages of a signed-in doctor. Every route is
// wrapped by middleware.RequireDoctorPage.
type DoctorHandler struct {
	log                 *logrus.Logger
	consultationUsecase usecase.ConsultationUsecase
}

func NewDoctorHandler(log *logrus.Logger, consultationUsecase usecase.ConsultationUsecase) *DoctorHandler {
	return &DoctorHandler{
		log:                 log,
		consultationUsecase: consultationUsecase,
	}
}

func (h *DoctorHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	doctor, _ := middleware.GetDoctorFromContext(r.Context())
	response.View(w, "doctorDashboard", map[string]interface{}{"doctor": doctor})
}

func (h *DoctorHandler) Profile(w http.ResponseWriter, r *http.Request) {
	doctor, _ := middleware.GetDoctorFromContext(r.Context())
	response.View(w, "doctorProfile", map[string]interface{}{"doctor": doctor})
}

func (h *DoctorHandler) PrescriptionPage(w http.ResponseWriter, r *http.Request) {
	h.ledgerView(w, r, "prescriptionPage")
}

func (h *DoctorHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	h.ledgerView(w, r, "doctorAppointments")
}

// ledgerView lists the consultations addressed to the signed-in doctor,
// oldest first.
func (h *DoctorHandler) ledgerView(w http.ResponseWriter, r *http.Request, view string) {
	doctor, _ := middleware.GetDoctorFromContext(r.Context())

	consultations, err := h.consultationUsecase.ListByDoctor(r.Context(), doctor.ID)
	if err != nil {
		writeError(w, err, "Failed to load consultations")
		return
	}

	response.View(w, view, map[string]interface{}{
		"doctor":        doctor,
		"consultations": consultations,
	})
}
