package rates

import (
	"fmt"

	errs "github.com/NastyaGoryachaya/edge-rates-service/internal/errors"
)

// ValidationError - ошибка нормализации запроса; всегда 400
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap - цепочка всегда заканчивается на ErrBadRequest, плюс исходная причина (например ErrInvalidKey)
func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{errs.ErrBadRequest, e.Err}
	}
	return []error{errs.ErrBadRequest}
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
