package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-telemedicine/internal/domain/entity"
	domainRepo "go-telemedicine/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDoctorRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDoctorRepository()

	first := &entity.Doctor{Name: "A", Email: "a@x.com", Phone: "1"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, 1, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &entity.Doctor{Name: "B", Email: "b@x.com", Phone: "2"}
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, 2, second.ID)

	err := repo.Create(ctx, &entity.Doctor{Email: "a@x.com", Phone: "3"})
	assert.ErrorIs(t, err, domainRepo.ErrDuplicateEmail)

	err = repo.Create(ctx, &entity.Doctor{Email: "c@x.com", Phone: "2"})
	assert.ErrorIs(t, err, domainRepo.ErrDuplicatePhone)

	// email is checked before phone
	err = repo.Create(ctx, &entity.Doctor{Email: "b@x.com", Phone: "1"})
	assert.ErrorIs(t, err, domainRepo.ErrDuplicateEmail)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, "B", all[1].Name)
}

func TestMemoryDoctorRepository_Find(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDoctorRepository()
	require.NoError(t, repo.Create(ctx, &entity.Doctor{Name: "A", Email: "a@x.com", Phone: "1"}))

	doctor, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, doctor)
	assert.Equal(t, 1, doctor.ID)

	doctor, err = repo.FindByEmail(ctx, "A@X.COM")
	require.NoError(t, err)
	assert.Nil(t, doctor)

	doctor, err = repo.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, doctor)
}

func TestMemoryPatientRepository_CloneOnRead(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPatientRepository()

	patient := &entity.Patient{Name: "P", Email: "p@x.com", Phone: "9", SurgeryHistory: []string{"knee"}}
	require.NoError(t, repo.Create(ctx, patient))
	patient.SurgeryHistory[0] = "changed"

	stored, err := repo.FindByID(ctx, patient.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []string{"knee"}, stored.SurgeryHistory)

	err = repo.Create(ctx, &entity.Patient{Email: "q@x.com", Phone: "9"})
	assert.ErrorIs(t, err, domainRepo.ErrDuplicatePhone)
}

func TestMemoryConsultationRepository_ListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryConsultationRepository()

	for _, doctorID := range []int{1, 2, 1} {
		require.NoError(t, repo.Create(ctx, &entity.Consultation{DoctorID: doctorID, PatientID: 5}))
	}

	mine, err := repo.FindByDoctorID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, 1, mine[0].ID)
	assert.Equal(t, 3, mine[1].ID)

	none, err := repo.FindByDoctorID(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	byPatient, err := repo.FindByPatientID(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, byPatient, 3)
}

func TestMemoryConsultationRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryConsultationRepository()
	require.NoError(t, repo.Create(ctx, &entity.Consultation{DoctorID: 1, PatientID: 2}))

	t.Run("stores the result of fn", func(t *testing.T) {
		updated, err := repo.Update(ctx, 1, func(c *entity.Consultation) error {
			c.Prescription = &entity.Prescription{CareToBeTaken: "rest"}
			c.DoctorID = 99
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, updated.DoctorID)

		stored, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, stored.Prescription)
		assert.Equal(t, "rest", stored.Prescription.CareToBeTaken)
		assert.Equal(t, 1, stored.DoctorID)
	})

	t.Run("discards changes when fn fails", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := repo.Update(ctx, 1, func(c *entity.Consultation) error {
			c.Prescription.CareToBeTaken = "overwritten"
			return boom
		})
		assert.ErrorIs(t, err, boom)

		stored, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "rest", stored.Prescription.CareToBeTaken)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.Update(ctx, 404, func(c *entity.Consultation) error { return nil })
		assert.ErrorIs(t, err, domainRepo.ErrNotFound)
	})
}

func TestMemoryConsultationRepository_ConcurrentUploads(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryConsultationRepository()
	require.NoError(t, repo.Create(ctx, &entity.Consultation{DoctorID: 1, PatientID: 2}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, 1, func(c *entity.Consultation) error {
				if c.Prescription == nil {
					c.Prescription = &entity.Prescription{}
				}
				c.Prescription.AddCustomPDF(entity.CustomPDF{Filename: "f.pdf"})
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, stored.Prescription.CustomPDFs, 20)
}

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	session := &entity.Session{
		TokenID:   "tid",
		Kind:      entity.SessionKindDoctor,
		UserID:    3,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Save(ctx, session))

	found, err := repo.Find(ctx, entity.SessionKindDoctor, "tid")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 3, found.UserID)

	// doctor and patient pointers never collide
	found, err = repo.Find(ctx, entity.SessionKindPatient, "tid")
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, repo.Delete(ctx, entity.SessionKindDoctor, "tid"))
	found, err = repo.Find(ctx, entity.SessionKindDoctor, "tid")
	require.NoError(t, err)
	assert.Nil(t, found)

	expired := &entity.Session{TokenID: "old", Kind: entity.SessionKindPatient, UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, repo.Save(ctx, expired))
	found, err = repo.Find(ctx, entity.SessionKindPatient, "old")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "doctor_session:abc", sessionKey(entity.SessionKindDoctor, "abc"))
	assert.Equal(t, "patient_session:abc", sessionKey(entity.SessionKindPatient, "abc"))
}
