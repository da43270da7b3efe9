package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	echo "github.com/labstack/echo/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sreops/runbook-synthesizer/pkg/apperror"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

var requestValidator = validator.New()

// submitAlertHandler handles POST /api/v1/alerts: validate, normalize, run
// the pipeline, dispatch, and return the generated checklist.
func (s *Server) submitAlertHandler(c *echo.Context) error {
	correlationID := uuid.NewString()

	var req AlertRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, correlationID, apperror.Wrap(apperror.KindValidation, "malformed request body", err))
	}

	if err := requestValidator.Struct(&req); err != nil {
		return writeError(c, correlationID, apperror.NewValidation("title", "title is required").WithDetails(map[string]any{"validationError": err.Error()}))
	}

	severity := domain.Severity(req.Severity)
	if !severity.IsValid() {
		return writeError(c, correlationID, apperror.NewValidation("severity", "unknown severity").WithDetails(map[string]any{"allowed": domain.AllSeverities()}))
	}

	alert := domain.NewAlert(
		uuid.NewString(),
		req.Title,
		req.Message,
		severity,
		req.SourceService,
		req.Dimensions,
		req.Labels,
		time.Now().UTC(),
		nil,
	)

	ctx := c.Request().Context()

	checklist, err := s.pipeline.Run(ctx, alert)
	if err != nil {
		return writeError(c, correlationID, apperror.Wrap(apperror.KindInternal, "checklist generation failed", err))
	}

	s.dispatcher.Dispatch(ctx, checklist, alert)

	return c.JSON(http.StatusOK, checklist)
}
