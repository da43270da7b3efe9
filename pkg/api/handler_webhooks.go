package api

import (
	"errors"
	"net/http"
	"os"
	"time"

	echo "github.com/labstack/echo/v5"

	"github.com/google/uuid"
	"github.com/sreops/runbook-synthesizer/pkg/apperror"
	"github.com/sreops/runbook-synthesizer/pkg/config"
	"github.com/sreops/runbook-synthesizer/pkg/dispatch"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// listWebhooksHandler handles GET /api/v1/webhooks.
func (s *Server) listWebhooksHandler(c *echo.Context) error {
	return c.JSON(http.StatusOK, s.dispatcher.List())
}

// createWebhookHandler handles POST /api/v1/webhooks: registers a new
// destination at runtime. Returns 409 when the name is already taken.
func (s *Server) createWebhookHandler(c *echo.Context) error {
	var req WebhookRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, "", apperror.Wrap(apperror.KindValidation, "malformed request body", err))
	}
	if err := requestValidator.Struct(&req); err != nil {
		return writeError(c, "", apperror.NewValidation("name", err.Error()))
	}

	cfg := domain.WebhookConfig{
		Name:    req.Name,
		Type:    req.Type,
		URL:     req.URL,
		Enabled: req.Enabled,
		Headers: req.Headers,
		Filter:  req.Filter,
	}

	var slackToken string
	if req.Type == "slack" {
		slackToken = slackTokenFromEnv()
	}

	dest, err := dispatch.NewDestination(cfg, slackToken)
	if err != nil {
		return writeError(c, "", apperror.Wrap(apperror.KindValidation, "cannot build destination", err))
	}

	if err := s.dispatcher.Register(cfg, dest); err != nil {
		if errors.Is(err, dispatch.ErrDuplicateName) {
			return c.JSON(http.StatusConflict, &ErrorResponse{
				CorrelationID: uuid.NewString(),
				ErrorCode:     string(apperror.KindValidation),
				Message:       err.Error(),
				Timestamp:     time.Now().UTC(),
				Details:       map[string]any{"name": req.Name},
			})
		}
		return writeError(c, "", apperror.Wrap(apperror.KindInternal, "register destination", err))
	}

	return c.JSON(http.StatusCreated, cfg)
}

func slackTokenFromEnv() string {
	return os.Getenv(config.SlackTokenEnv)
}
