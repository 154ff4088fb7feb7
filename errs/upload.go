package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Blob store errors
var (
	ErrUploadRejected = errors.New("upload rejected by blob store")
	ErrUploadNetwork  = errors.New("blob store unreachable")
	ErrUploadUnknown  = errors.New("upload failed")
)

func NewUploadRejectedError(path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrUploadRejected,
		Details:    fmt.Sprintf("Blob store rejected '%s'", path),
		Cause:      cause,
	}
}

// NewUploadNetworkError covers both transport failures and per-call timeouts.
func NewUploadNetworkError(path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUploadNetwork,
		Details:    fmt.Sprintf("Could not reach blob store for '%s'", path),
		Cause:      cause,
	}
}

func NewUploadUnknownError(path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrUploadUnknown,
		Details:    fmt.Sprintf("Upload of '%s' failed", path),
		Cause:      cause,
	}
}

func IsUploadRejected(err error) bool {
	return errors.Is(err, ErrUploadRejected)
}

func IsUploadNetwork(err error) bool {
	return errors.Is(err, ErrUploadNetwork)
}
