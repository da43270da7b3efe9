package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	echo "github.com/labstack/echo/v5"

	"github.com/sreops/runbook-synthesizer/pkg/apperror"
)

// statusForKind maps an apperror.Kind to the HTTP status it surfaces as.
func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindUpstreamUnavailable:
		return http.StatusBadGateway
	case apperror.KindTimeout:
		return http.StatusGatewayTimeout
	case apperror.KindParseError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError centralizes error-body construction so handlers never build an
// ErrorResponse by hand. Every error response carries a fresh correlation id
// unless correlationID is already known (e.g. propagated from the request).
func writeError(c *echo.Context, correlationID string, err error) error {
	kind := apperror.KindOf(err)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	var details map[string]any
	var ae *apperror.AppError
	if errors.As(err, &ae) {
		details = ae.Details
	}

	return c.JSON(statusForKind(kind), &ErrorResponse{
		CorrelationID: correlationID,
		ErrorCode:     string(kind),
		Message:       err.Error(),
		Timestamp:     time.Now().UTC(),
		Details:       details,
	})
}
