package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Names of the unique indexes created in pkg/database. Services map these
// back to the conflict kind the caller violated.
const (
	ConstraintEventUser  = "uq_event_telegram_user"
	ConstraintEventEmail = "uq_event_email"
	ConstraintEventPhone = "uq_event_phone"
	ConstraintQRToken    = "uq_registrations_qr_token"
	ConstraintCheckin    = "uq_checkins_registration"
)

var knownConstraints = []string{
	ConstraintEventUser,
	ConstraintEventEmail,
	ConstraintEventPhone,
	ConstraintQRToken,
	ConstraintCheckin,
}

// DuplicateConstraint reports whether err is a unique-constraint violation
// and, when it is, which constraint was hit. Commit-time races surface here
// as SQLSTATE 23505; the constraint name tells the service which conflict to
// report instead of a generic storage failure.
func DuplicateConstraint(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
		msg := err.Error()
		for _, name := range knownConstraints {
			if strings.Contains(msg, name) {
				return name, true
			}
		}
		return "", true
	}

	return "", false
}
