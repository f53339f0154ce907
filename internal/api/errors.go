package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/chazu/foilworks/pkg/airfoil"
	"github.com/chazu/foilworks/pkg/engine"
	"github.com/chazu/foilworks/pkg/export"
	"github.com/chazu/foilworks/pkg/reynolds"
)

// Kind classifies a failed request.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindUnavailable Kind = "unavailable"
	KindInternal    Kind = "internal"
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Error is the JSON body of every failed request.
type Error struct {
	Message string `json:"error"`
	Kind    Kind   `json:"kind"`

	code int // overrides Kind.Status when non-zero
	err  error
}

func (e *Error) Error() string { return e.Message }

// StatusCode returns the HTTP status written for e.
func (e *Error) StatusCode() int {
	if e.code != 0 {
		return e.code
	}
	return e.Kind.Status()
}

func (e *Error) Unwrap() error { return e.err }

func validation(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Kind: KindValidation}
}

// classify maps domain errors onto an API error kind.
func classify(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	kind := KindInternal
	switch {
	case airfoil.IsValidation(err),
		errors.Is(err, reynolds.ErrMissingViscosity),
		errors.Is(err, reynolds.ErrZeroViscosity),
		errors.Is(err, export.ErrUnknownFormat),
		errors.Is(err, engine.ErrTimeout):
		kind = KindValidation
	case errors.Is(err, airfoil.ErrBaseShapeMissing):
		kind = KindNotFound
	case errors.Is(err, engine.ErrBusy):
		kind = KindUnavailable
	}

	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		return &Error{Message: fmt.Sprintf("%v: %s", bindErr.Message, bindErr.Field), Kind: KindValidation, err: err}
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := fmt.Sprint(httpErr.Message)
		switch {
		case httpErr.Code == http.StatusNotFound:
			return &Error{Message: msg, Kind: KindNotFound, code: httpErr.Code, err: err}
		case httpErr.Code < http.StatusInternalServerError:
			return &Error{Message: msg, Kind: KindValidation, code: httpErr.Code, err: err}
		}
	}

	return &Error{Message: err.Error(), Kind: kind, err: err}
}

// errorHandler replaces echo's default handler so every failure carries a
// kind alongside its message.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	apiErr := classify(err)
	status := apiErr.StatusCode()
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, apiErr)
	}
	if err != nil {
		s.log.Warn("failed to write error response", zap.Error(err))
	}
}
