package http

import (
	"net/http"

	"go-telemedicine/internal/delivery/http/handler"
	"go-telemedicine/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	prescriptionHandler *handler.PrescriptionHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	staticDir           string
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	staticDir string,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		prescriptionHandler: prescriptionHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		staticDir:           staticDir,
	}
}

func (r *Router) Setup() *mux.Router {
	get := func(path string, h http.HandlerFunc) {
		r.router.HandleFunc(path, h).Methods(http.MethodGet)
	}
	post := func(path string, h http.HandlerFunc) {
		r.router.HandleFunc(path, h).Methods(http.MethodPost)
	}

	get("/health", r.healthCheck)
	get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, middleware.PatientSignCheckPath, http.StatusFound)
	})

	// Doctor identity
	get(middleware.DoctorSignCheckPath, r.authHandler.DoctorSignCheck)
	get("/doctorSignIn", r.authHandler.DoctorSignInPage)
	post("/doctorSignUp", r.authHandler.DoctorSignUp)
	post("/doctorSignIn", r.authHandler.DoctorSignIn)
	get("/doctorLogout", r.authHandler.DoctorLogout)
	get("/doctor", r.authHandler.CurrentDoctor)

	// Patient identity
	get(middleware.PatientSignCheckPath, r.authHandler.PatientSignCheck)
	get("/patientSignIn", r.authHandler.PatientSignInPage)
	post("/patientSignUp", r.authHandler.PatientSignUp)
	post("/patientSignIn", r.authHandler.PatientSignIn)
	get("/patientLogout", r.authHandler.PatientLogout)
	get("/patient", r.authHandler.CurrentPatient)

	// Doctor pages
	get("/doctorDashboard", middleware.RequireDoctorPage(r.doctorHandler.Dashboard))
	get("/doctorProfile", middleware.RequireDoctorPage(r.doctorHandler.Profile))
	get("/prescriptionPage", middleware.RequireDoctorPage(r.doctorHandler.PrescriptionPage))
	get("/doctorAppointments", middleware.RequireDoctorPage(r.doctorHandler.Appointments))

	// Patient pages and actions
	get("/patientDashboard", middleware.RequirePatientPage(r.patientHandler.Dashboard))
	get("/findDoctors", middleware.RequirePatientPage(r.patientHandler.FindDoctors))
	get("/consultation/{doctorId}", middleware.RequirePatientPage(r.patientHandler.ConsultationForm))
	get("/patientAppointments", middleware.RequirePatientPage(r.patientHandler.Appointments))
	post("/submitConsultation/{doctorId}", middleware.RequirePatientAction(r.patientHandler.SubmitConsultation))

	// Prescriptions
	post("/submitPrescription/{consultationId}", middleware.RequireDoctorAction(r.prescriptionHandler.Submit))
	get("/generatePrescriptionPDF/{consultationId}", middleware.RequireDoctorAction(r.prescriptionHandler.Generate))
	post("/sendPrescriptionToPatient/{consultationId}", middleware.RequireDoctorAction(r.prescriptionHandler.Send))
	post("/uploadPrescriptionPDF/{consultationId}", middleware.RequireDoctorAction(r.prescriptionHandler.Upload))
	get("/downloadPDF/{filename}", r.prescriptionHandler.Download)

	get("/auditLogs", middleware.RequireDoctorAction(r.auditLogHandler.GetMyAuditLogs))

	// Static assets; registered last so it never shadows a route above.
	r.router.PathPrefix("/").
		Handler(http.FileServer(http.Dir(r.staticDir))).
		Methods(http.MethodGet, http.MethodHead)

	r.router.Use(r.authMiddleware.LoadSessions)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
