package httptransport

import (
	"errors"

	errs "github.com/NastyaGoryachaya/edge-rates-service/internal/errors"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/ports/errcode"
)

func FromServiceError(err error) errcode.Code {
	switch {
	case errors.Is(err, errs.ErrInvalidKey):
		return errcode.InvalidKey
	case errors.Is(err, errs.ErrBadRequest):
		return errcode.BadRequest
	case errors.Is(err, errs.ErrStoreUnavailable):
		return errcode.StoreUnavailable
	default:
		return errcode.Internal
	}
}
