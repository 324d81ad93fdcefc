package http

import (
	"errors"
	"net/http"

	"printshop/internal/core/application/quoting"
	"printshop/internal/core/domain/model/decoration"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorStatus maps domain and adapter errors to an HTTP status and whether
// the client may retry the same request.
func errorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, false
	case errors.Is(err, order.ErrUnknownStatus),
		errors.Is(err, decoration.ErrMalformedInput),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, false
	case errors.Is(err, services.ErrTransitionNotAllowed),
		errors.Is(err, quoting.ErrSessionClosed):
		return http.StatusConflict, false
	case errors.Is(err, errs.ErrPersistence):
		return http.StatusBadGateway, true
	case errors.Is(err, errs.ErrNetwork), errors.Is(err, errs.ErrInvalidResponse):
		return http.StatusBadGateway, true
	default:
		return http.StatusInternalServerError, false
	}
}

func (s *Server) fail(c echo.Context, err error, o *order.Order) error {
	code, retryable := errorStatus(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed", "path", c.Path(), "error", err)
		message = http.StatusText(code)
	}
	return c.JSON(code, ErrorResponse{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Order:     toOrderResponse(o),
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: message})
}
