package custom_error

import (
	"strings"

	"github.com/google/uuid"
)

// Kind classifies an internal error for the user-facing boundary.
type Kind string

const (
	KindDatabase   Kind = "database"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindValidation Kind = "validation"
	KindDefault    Kind = "default"
)

// userSafeMessages hides technical detail from end users. Full detail goes
// to the server log together with the reference id.
var userSafeMessages = map[Kind]string{
	KindDatabase:   "Unable to reach the database. Please try again later or contact support.",
	KindNotFound:   "The requested resource was not found.",
	KindConflict:   "This operation conflicts with existing data.",
	KindValidation: "The data provided is invalid. Please check your input.",
	KindDefault:    "An unexpected error occurred. Please try again or contact support.",
}

// NewReferenceID generates a short correlation id surfaced to the user so
// support can find the matching server-side log line.
func NewReferenceID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// Classify maps an internal error to a Kind for user-safe messaging.
func Classify(err error) Kind {
	if err == nil {
		return KindDefault
	}
	if IsUniqueViolation(err) || IsForeignKeyViolation(err) {
		return KindConflict
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not found"), strings.Contains(msg, "no rows"):
		return KindNotFound
	case strings.Contains(msg, "connection"), strings.Contains(msg, "database"), strings.Contains(msg, "sql"):
		return KindDatabase
	case strings.Contains(msg, "invalid"), strings.Contains(msg, "required"):
		return KindValidation
	default:
		return KindDefault
	}
}

// SafeMessage returns the user-facing message for an error kind, suffixed
// with the reference id.
func SafeMessage(kind Kind, referenceID string) string {
	msg, ok := userSafeMessages[kind]
	if !ok {
		msg = userSafeMessages[KindDefault]
	}
	return msg + " (Ref: " + referenceID + ")"
}
