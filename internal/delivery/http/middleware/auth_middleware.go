package middleware

import (
	"context"
	"errors"
	"net/http"

	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/domain/entity"
	"go-telemedicine/internal/usecase"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	DoctorKey       contextKey = "doctor"
	PatientKey      contextKey = "patient"
	DoctorTokenKey  contextKey = "doctor_token"
	PatientTokenKey contextKey = "patient_token"
)

const (
	DoctorCookieName  = "doctor_session"
	PatientCookieName = "patient_session"
)

// CookieName returns the cookie carrying sessions of the given kind
func CookieName(kind entity.SessionKind) string {
	if kind == entity.SessionKindDoctor {
		return DoctorCookieName
	}
	return PatientCookieName
}

type AuthMiddleware struct {
	log            *logrus.Logger
	sessionUsecase usecase.SessionUsecase
	cookieSecure   bool
}

func NewAuthMiddleware(log *logrus.Logger, sessionUsecase usecase.SessionUsecase, cookieSecure bool) *AuthMiddleware {
	return &AuthMiddleware{
		log:            log,
		sessionUsecase: sessionUsecase,
		cookieSecure:   cookieSecure,
	}
}

// LoadSessions resolves the doctor and patient session cookies, if any, and
// stores the signed-in records in the request context. Requests without a
// valid session pass through unauthenticated.
func (m *AuthMiddleware) LoadSessions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if token := cookieValue(r, DoctorCookieName); token != "" {
			doctor, err := m.sessionUsecase.CurrentDoctor(ctx, token)
			switch {
			case err == nil:
				ctx = context.WithValue(ctx, DoctorKey, doctor)
				ctx = context.WithValue(ctx, DoctorTokenKey, token)
			case !errors.Is(err, usecase.ErrUnauthenticated):
				m.log.Warnf("Failed to resolve doctor session: %+v", err)
			}
		}

		if token := cookieValue(r, PatientCookieName); token != "" {
			patient, err := m.sessionUsecase.CurrentPatient(ctx, token)
			switch {
			case err == nil:
				ctx = context.WithValue(ctx, PatientKey, patient)
				ctx = context.WithValue(ctx, PatientTokenKey, token)
			case !errors.Is(err, usecase.ErrUnauthenticated):
				m.log.Warnf("Failed to resolve patient session: %+v", err)
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetSessionCookie hands the client its session token
func (m *AuthMiddleware) SetSessionCookie(w http.ResponseWriter, kind entity.SessionKind, token *dto.SessionToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName(kind),
		Value:    token.Token,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie of the given kind
func (m *AuthMiddleware) ClearSessionCookie(w http.ResponseWriter, kind entity.SessionKind) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName(kind),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// GetDoctorFromContext extracts the signed-in doctor from context
func GetDoctorFromContext(ctx context.Context) (*dto.DoctorResponse, bool) {
	doctor, ok := ctx.Value(DoctorKey).(*dto.DoctorResponse)
	return doctor, ok && doctor != nil
}

// GetPatientFromContext extracts the signed-in patient from context
func GetPatientFromContext(ctx context.Context) (*dto.PatientResponse, bool) {
	patient, ok := ctx.Value(PatientKey).(*dto.PatientResponse)
	return patient, ok && patient != nil
}

// GetSessionTokenFromContext extracts the raw session token of the given kind
func GetSessionTokenFromContext(ctx context.Context, kind entity.SessionKind) (string, bool) {
	key := PatientTokenKey
	if kind == entity.SessionKindDoctor {
		key = DoctorTokenKey
	}
	token, ok := ctx.Value(key).(string)
	return token, ok
}
