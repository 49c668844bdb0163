package middleware

import (
	"net/http"

	"go-telemedicine/internal/domain/entity"
	"go-telemedicine/pkg/response"
)

const (
	DoctorSignCheckPath  = "/doctorSignCheck"
	PatientSignCheckPath = "/patientSignCheck"
)

func hasSession(r *http.Request, kind entity.SessionKind) bool {
	if kind == entity.SessionKindDoctor {
		_, ok := GetDoctorFromContext(r.Context())
		return ok
	}
	_, ok := GetPatientFromContext(r.Context())
	return ok
}

// RequireSessionPage sends browsers without a session of the given kind to
// the sign-in flow.
func RequireSessionPage(kind entity.SessionKind, next http.HandlerFunc) http.HandlerFunc {
	target := PatientSignCheckPath
	if kind == entity.SessionKindDoctor {
		target = DoctorSignCheckPath
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !hasSession(r, kind) {
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		next(w, r)
	}
}

// RequireSessionAction answers 401 when there is no session of the given kind.
func RequireSessionAction(kind entity.SessionKind, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !hasSession(r, kind) {
			response.Unauthorized(w, "Not logged in")
			return
		}
		next(w, r)
	}
}

// RequireDoctorPage is a convenience wrapper for doctor-only pages
func RequireDoctorPage(next http.HandlerFunc) http.HandlerFunc {
	return RequireSessionPage(entity.SessionKindDoctor, next)
}

// RequireDoctorAction is a convenience wrapper for doctor-only actions
func RequireDoctorAction(next http.HandlerFunc) http.HandlerFunc {
	return RequireSessionAction(entity.SessionKindDoctor, next)
}

// RequirePatientPage is a convenience wrapper for patient-only pages
func RequirePatientPage(next http.HandlerFunc) http.HandlerFunc {
	return RequireSessionPage(entity.SessionKindPatient, next)
}

// RequirePatientAction is a convenience wrapper for patient-only actions
func RequirePatientAction(next http.HandlerFunc) http.HandlerFunc {
	return RequireSessionAction(entity.SessionKindPatient, next)
}
