package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Record store errors
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrStoreConflict   = errors.New("record store conflict")
	ErrStoreNetwork    = errors.New("record store unreachable")
	ErrStoreQuery      = errors.New("record store query failed")
	ErrStoreReadOnly   = errors.New("record store is read-only")
	ErrStoreConnection = errors.New("record store connection failed")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

func NewAlreadyExists(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
	}
}

// NewReadOnlyStoreError is returned by the static snapshot backend for any
// mutating operation.
func NewReadOnlyStoreError(operation string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrStoreReadOnly,
		Details:    fmt.Sprintf("Cannot %s against the static snapshot backend", operation),
	}
}

// NewStoreError wraps a backend failure with context about the operation.
// Common driver failures are mapped onto sentinel errors so callers can use
// errors.Is instead of string matching.
func NewStoreError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if cause != nil {
		errStr := cause.Error()
		switch {
		case strings.Contains(errStr, "duplicate key"):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				err:        ErrStoreConflict,
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "record not found"):
			return &ApiErr{
				StatusCode: http.StatusNotFound,
				err:        fmt.Errorf("%s %w", entity, ErrNotFound),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "connection"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrStoreNetwork,
				Details:    details,
				Cause:      cause,
			}
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStoreQuery,
		Details:    details,
		Cause:      cause,
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsStoreConflict(err error) bool {
	return errors.Is(err, ErrStoreConflict)
}

func IsStoreReadOnly(err error) bool {
	return errors.Is(err, ErrStoreReadOnly)
}

func IsStoreNetwork(err error) bool {
	return errors.Is(err, ErrStoreNetwork)
}
