package custom_error

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

type CustomError interface {
	Error() string
}

type UniqueViolationError struct {
	message string
	code    string
}

type ForeignKeyViolationError struct {
	message string
	code    string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

func (f *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", f.message, f.code)
}

// WrapDBError classifies a driver error code into a constraint violation
// type. Postgres uses SQLSTATE strings, MySQL numeric error codes.
func WrapDBError(message, code string) CustomError {
	switch code {
	case "23505", "1062": // unique_violation / ER_DUP_ENTRY
		return &UniqueViolationError{message: message, code: code}
	case "23503", "1452": // foreign_key_violation / ER_NO_REFERENCED_ROW_2
		return &ForeignKeyViolationError{message: message, code: code}
	default:
		return fmt.Errorf("uncategorized error occurred with code %s: %s", code, message)
	}
}

// WrapDriverError inspects err for a known driver constraint violation and
// wraps it; any other error passes through unchanged.
func WrapDriverError(message string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return WrapDBError(message, string(pqErr.Code))
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return WrapDBError(message, fmt.Sprintf("%d", myErr.Number))
	}

	return err
}

func IsUniqueViolation(err error) bool {
	var target *UniqueViolationError
	return errors.As(err, &target)
}

func IsForeignKeyViolation(err error) bool {
	var target *ForeignKeyViolationError
	return errors.As(err, &target)
}
