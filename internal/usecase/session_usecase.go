package usecase

import (
	"context"
	"errors"

	"go-telemedicine/internal/converter"
	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/domain/entity"
	"go-telemedicine/internal/domain/repository"
	"go-telemedicine/internal/service"
	"go-telemedicine/pkg/jwt"

	"github.com/sirupsen/logrus"
)

var ErrUnauthenticated = errors.New("not logged in")

// SessionUsecase maps a client's signed session token onto the doctor or
// patient it is currently signed in as. A client holds at most one session
// of each kind.
type SessionUsecase interface {
	Start(ctx context.Context, kind entity.SessionKind, userID int) (*dto.SessionToken, error)
	End(ctx context.Context, kind entity.SessionKind, token string) error
	CurrentDoctor(ctx context.Context, token string) (*dto.DoctorResponse, error)
	CurrentPatient(ctx context.Context, token string) (*dto.PatientResponse, error)
}

type sessionUsecase struct {
	log          *logrus.Logger
	sessionRepo  repository.SessionRepository
	doctorRepo   repository.DoctorRepository
	patientRepo  repository.PatientRepository
	jwtService   *jwt.JWTService
	auditService service.AuditService
}

func NewSessionUsecase(
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	jwtService *jwt.JWTService,
	auditService service.AuditService,
) SessionUsecase {
	return &sessionUsecase{
		log:          log,
		sessionRepo:  sessionRepo,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		jwtService:   jwtService,
		auditService: auditService,
	}
}

func (u *sessionUsecase) Start(ctx context.Context, kind entity.SessionKind, userID int) (*dto.SessionToken, error) {
	token, tokenID, expiresAt, err := u.jwtService.GenerateSessionToken(string(kind), userID)
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	session := &entity.Session{
		TokenID:   tokenID,
		Kind:      kind,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	if err := u.sessionRepo.Save(ctx, session); err != nil {
		u.log.Warnf("Failed to store session: %+v", err)
		return nil, err
	}

	return &dto.SessionToken{Token: token, ExpiresAt: expiresAt}, nil
}

// End forgets the session; unknown or malformed tokens are ignored.
func (u *sessionUsecase) End(ctx context.Context, kind entity.SessionKind, token string) error {
	session, err := u.resolve(ctx, kind, token)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return nil
		}
		return err
	}

	if err := u.sessionRepo.Delete(ctx, kind, session.TokenID); err != nil {
		u.log.Warnf("Failed to delete session: %+v", err)
		return err
	}

	action := entity.AuditActionPatientLogout
	entityName := entity.AuditEntityPatient
	if kind == entity.SessionKindDoctor {
		action = entity.AuditActionDoctorLogout
		entityName = entity.AuditEntityDoctor
	}
	u.auditService.Log(ctx, service.Actor{Kind: kind, ID: session.UserID}, action, entityName, session.UserID, nil)
	return nil
}

func (u *sessionUsecase) CurrentDoctor(ctx context.Context, token string) (*dto.DoctorResponse, error) {
	session, err := u.resolve(ctx, entity.SessionKindDoctor, token)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, session.UserID)
	if err != nil {
		u.log.Warnf("Failed to load session doctor %d: %+v", session.UserID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrUnauthenticated
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *sessionUsecase) CurrentPatient(ctx context.Context, token string) (*dto.PatientResponse, error) {
	session, err := u.resolve(ctx, entity.SessionKindPatient, token)
	if err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(ctx, session.UserID)
	if err != nil {
		u.log.Warnf("Failed to load session patient %d: %+v", session.UserID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrUnauthenticated
	}
	return converter.PatientToResponse(patient), nil
}

func (u *sessionUsecase) resolve(ctx context.Context, kind entity.SessionKind, token string) (*entity.Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := u.jwtService.ValidateToken(token)
	if err != nil || claims.Kind != string(kind) {
		return nil, ErrUnauthenticated
	}

	session, err := u.sessionRepo.Find(ctx, kind, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to load session: %+v", err)
		return nil, err
	}
	if session == nil || session.UserID != claims.UserID {
		return nil, ErrUnauthenticated
	}
	return session, nil
}
