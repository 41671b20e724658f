// file: internals/helpers/errs/errs.go
package errs

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

/* =========================================================
   ERROR KINDS
   Business-rule failures carry a Kind so controllers can map
   them to a status code without string matching.
========================================================= */

type Kind string

const (
	Unauthenticated        Kind = "UNAUTHENTICATED"
	Forbidden              Kind = "FORBIDDEN"
	NotFoundInOrganization Kind = "NOT_FOUND_IN_ORGANIZATION"
	AlreadySubmitted       Kind = "ALREADY_SUBMITTED"
	AttemptExpired         Kind = "ATTEMPT_EXPIRED"
	NoActiveAttempt        Kind = "NO_ACTIVE_ATTEMPT"
	DuplicateEntry         Kind = "DUPLICATE_ENTRY"
	ScheduleConflict       Kind = "SCHEDULE_CONFLICT"
	ValidationError        Kind = "VALIDATION_ERROR"
	ConfigurationError     Kind = "CONFIGURATION_ERROR"
	IncompleteProfile      Kind = "INCOMPLETE_PROFILE"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or "" when err is not an *Error
// (infrastructure errors stay kind-less and surface as 500).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

/* =========================================================
   HTTP MAPPING
========================================================= */

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Unauthenticated:
		return fiber.StatusUnauthorized
	case Forbidden:
		return fiber.StatusForbidden
	case NotFoundInOrganization:
		return fiber.StatusNotFound
	case AlreadySubmitted, DuplicateEntry, ScheduleConflict:
		return fiber.StatusConflict
	case AttemptExpired:
		return fiber.StatusGone
	case NoActiveAttempt, ValidationError, IncompleteProfile:
		return fiber.StatusBadRequest
	case ConfigurationError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
