package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Validation errors, raised at the API boundary before any store call is made
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidCategory      = errors.New("invalid category selection")
	ErrInvalidURL           = errors.New("invalid url")
)

func NewMissingRequiredFieldError(fieldName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMissingRequiredField,
		Details:    fmt.Sprintf("Missing required field: %s", fieldName),
		Field:      fieldName,
	}
}

func NewInvalidCategoryError(category string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidCategory,
		Details:    fmt.Sprintf("'%s' is not a known project category", category),
		Field:      "category",
	}
}

func NewInvalidURLError(field, url string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidURL,
		Details:    fmt.Sprintf("'%s' is not an absolute http(s) address", url),
		Field:      field,
	}
}

func IsMissingRequiredField(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsInvalidCategory(err error) bool {
	return errors.Is(err, ErrInvalidCategory)
}

func IsInvalidURL(err error) bool {
	return errors.Is(err, ErrInvalidURL)
}
