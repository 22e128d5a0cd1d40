// Package repository holds the gorm-backed stores. Every method takes the
// request context and returns errors from the apperr taxonomy.
package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/foreman-dev/foreman/internal/apperr"
)

const (
	msgNoFields        = "No fields to update"
	msgProjectNotFound = "Project not found"
	msgUserConflict    = "Username or email already exists"
)

// translate maps a gorm error onto the taxonomy. internal is the generic
// message used when the failure is not a known constraint or lookup miss.
func translate(err error, notFound, internal string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(notFound)
	case isDuplicate(err):
		return apperr.Conflict(msgUserConflict)
	case isForeignKey(err):
		return apperr.Validation(msgProjectNotFound)
	default:
		return apperr.Internal(internal, err)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Drivers without an error translator still name the constraint.
	msg := strings.ToUpper(err.Error())
	return strings.Contains(msg, "UNIQUE CONSTRAINT") || strings.Contains(msg, "DUPLICATE ENTRY")
}

func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToUpper(err.Error()), "FOREIGN KEY CONSTRAINT")
}

func requireChanges(changes map[string]any) error {
	if len(changes) == 0 {
		return apperr.Validation(msgNoFields)
	}
	return nil
}
