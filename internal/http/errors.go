package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/viewinvoices/server/internal/service"
	"github.com/viewinvoices/server/pkg/httpx"
)

// apiError is an HTTP error response body. The detail strings are part of
// the API contract with the frontend; auth failures keep a single uniform
// message per status so responses can't be used to probe account existence.
type apiError struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
}

func (e *apiError) Error() string { return e.Detail }

// WriteError writes this error to an HTTP response writer.
func (e *apiError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, map[string]string{"detail": e.Detail})
}

var (
	errBadRequest = &apiError{
		StatusCode: http.StatusBadRequest,
		Detail:     "malformed request body",
	}
	errAlreadyExists = &apiError{
		StatusCode: http.StatusConflict,
		Detail:     "username or email already exists",
	}
	errInvalidCredentials = &apiError{
		StatusCode: http.StatusUnauthorized,
		Detail:     "invalid credentials",
	}
	errUnauthenticated = &apiError{
		StatusCode: http.StatusUnauthorized,
		Detail:     "invalid authentication credentials",
	}
	errForbidden = &apiError{
		StatusCode: http.StatusForbidden,
		Detail:     "admin access required",
	}
	errUserNotFound = &apiError{
		StatusCode: http.StatusNotFound,
		Detail:     "user not found",
	}
	errInvoiceNotFound = &apiError{
		StatusCode: http.StatusNotFound,
		Detail:     "invoice not found",
	}
	errSelfDelete = &apiError{
		StatusCode: http.StatusBadRequest,
		Detail:     "cannot delete yourself",
	}
	errDatabaseUnavailable = &apiError{
		StatusCode: http.StatusServiceUnavailable,
		Detail:     "database not configured",
	}
	errInternal = &apiError{
		StatusCode: http.StatusInternalServerError,
		Detail:     "internal server error",
	}
)

// validationError builds a 400 carrying the specific shape problem.
func validationError(reason string) *apiError {
	return &apiError{StatusCode: http.StatusBadRequest, Detail: reason}
}

// writeServiceError maps service-layer errors onto the API error contract.
// Anything unrecognised is logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		validationError(verr.Reason).WriteError(w)
	case errors.Is(err, service.ErrAlreadyExists):
		errAlreadyExists.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		errInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrUnauthenticated):
		errUnauthenticated.WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		errForbidden.WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		errUserNotFound.WriteError(w)
	default:
		log.Error("request failed", "err", err)
		errInternal.WriteError(w)
	}
}
