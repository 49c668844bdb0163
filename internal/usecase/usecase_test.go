package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"go-telemedicine/config"
	"go-telemedicine/internal/delivery/dto"
	"go-telemedicine/internal/infrastructure/mail"
	"go-telemedicine/internal/infrastructure/storage"
	"go-telemedicine/internal/repository"
	"go-telemedicine/internal/service"
	"go-telemedicine/pkg/hash"
	"go-telemedicine/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, 1, 21, 9, 30, 0, 0, time.UTC)

// fixture wires every usecase to fresh memory stores.
type fixture struct {
	log           *logrus.Logger
	hook          *test.Hook
	store         storage.FileStore
	mailer        *recordingMailer
	identity      *identityUsecase
	sessions      *sessionUsecase
	consultations *consultationUsecase
	prescriptions *prescriptionUsecase
	seeder        *seedUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, hook := test.NewNullLogger()
	log.SetOutput(io.Discard)

	doctorRepo := repository.NewMemoryDoctorRepository()
	patientRepo := repository.NewMemoryPatientRepository()
	consultationRepo := repository.NewMemoryConsultationRepository()
	sessionRepo := repository.NewMemorySessionRepository()
	audit := service.NewAuditService(log, repository.NewMemoryAuditLogRepository())
	hasher := hash.NewBcryptHasher(bcrypt.MinCost)

	store, err := storage.NewLocalFileStore(t.TempDir())
	require.NoError(t, err)

	mailer := &recordingMailer{}
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", SessionExpiry: time.Hour})

	f := &fixture{log: log, hook: hook, store: store, mailer: mailer}
	f.identity = NewIdentityUsecase(log, doctorRepo, patientRepo, hasher, audit).(*identityUsecase)
	f.identity.now = func() time.Time { return fixedNow }
	f.sessions = NewSessionUsecase(log, sessionRepo, doctorRepo, patientRepo, jwtService, audit).(*sessionUsecase)
	f.consultations = NewConsultationUsecase(log, consultationRepo, doctorRepo, patientRepo, audit).(*consultationUsecase)
	f.consultations.now = func() time.Time { return fixedNow }
	f.prescriptions = NewPrescriptionUsecase(log, consultationRepo, service.NewPrescriptionRenderer(), store, mailer, audit,
		PrescriptionConfig{RenderTimeout: 5 * time.Second, MaxUploadBytes: 1024}).(*prescriptionUsecase)
	f.prescriptions.now = func() time.Time { return fixedNow }
	f.prescriptions.randomSuffix = func() int64 { return 42 }
	f.seeder = NewSeedUsecase(log, doctorRepo, patientRepo, consultationRepo, hasher).(*seedUsecase)
	f.seeder.now = func() time.Time { return fixedNow }
	return f
}

func (f *fixture) signupDoctor(t *testing.T, name, email, phone string) *dto.DoctorResponse {
	t.Helper()
	doctor, err := f.identity.SignupDoctor(context.Background(), &dto.DoctorSignupRequest{
		Name:              name,
		Email:             email,
		Password:          "secret",
		Phone:             phone,
		Specialty:         "Cardiologist",
		YearsOfExperience: "7.5",
	})
	require.NoError(t, err)
	return doctor
}

func (f *fixture) signupPatient(t *testing.T, name, email, phone string) *dto.PatientResponse {
	t.Helper()
	patient, err := f.identity.SignupPatient(context.Background(), &dto.PatientSignupRequest{
		Name:     name,
		Email:    email,
		Password: "secret",
		Age:      "28",
		Phone:    phone,
	})
	require.NoError(t, err)
	return patient
}

// scenario creates doctors A (id 1) and B (id 2), one patient and a
// consultation from the patient to doctor A (id 1).
func (f *fixture) scenario(t *testing.T) (a, b *dto.DoctorResponse, p *dto.PatientResponse) {
	t.Helper()
	a = f.signupDoctor(t, "Aayush Mali", "a@demo.com", "+911")
	b = f.signupDoctor(t, "Bina Rao", "b@demo.com", "+912")
	p = f.signupPatient(t, "Shreya Jain", "shreya@demo.com", "+919988776655")

	_, err := f.consultations.Create(context.Background(), p.ID, a.ID, &dto.ConsultationRequest{
		CurrentIllness:  "Chest pain",
		RecentSurgery:   "None",
		DiabetesHistory: "non-diabetic",
		TransactionID:   "TXN1",
	})
	require.NoError(t, err)
	return a, b, p
}

type recordingMailer struct {
	sent []mail.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
