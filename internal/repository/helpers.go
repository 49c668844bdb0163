package repository

import (
	"errors"
	"strings"

	domainRepo "go-telemedicine/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// checkUnique looks for an existing row in model's table with the same email,
// then the same phone, and reports the first collision.
func checkUnique(tx *gorm.DB, model interface{}, email, phone string) error {
	var count int64
	if err := tx.Model(model).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domainRepo.ErrDuplicateEmail
	}

	if err := tx.Model(model).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domainRepo.ErrDuplicatePhone
	}
	return nil
}

// translateUniqueError maps a unique violation raced past checkUnique onto
// the matching domain error.
func translateUniqueError(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicateKeyError(err, "email") {
		return domainRepo.ErrDuplicateEmail
	}
	if isDuplicateKeyError(err, "phone") {
		return domainRepo.ErrDuplicatePhone
	}
	return err
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation
// (23505) on a constraint mentioning field.
func isDuplicateKeyError(err error, field string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), field)
	}
	return false
}
