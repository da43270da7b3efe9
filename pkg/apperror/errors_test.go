package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sreops/runbook-synthesizer/pkg/apperror"
)

func TestKindOf_ExtractsKindThroughWrapping(t *testing.T) {
	base := apperror.New(apperror.KindNotFound, "alert not found")
	wrapped := fmt.Errorf("lookup failed: %w", base)

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(wrapped))
}

func TestKindOf_DefaultsToInternalForPlainErrors(t *testing.T) {
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(errors.New("boom")))
}

func TestWrap_PreservesCauseInErrorsIsChain(t *testing.T) {
	cause := errors.New("upstream timeout")
	err := apperror.Wrap(apperror.KindTimeout, "fetch runbook", cause)

	assert.ErrorIs(t, err, cause)
}

func TestNewValidation_IsBothValidationErrorAndAppError(t *testing.T) {
	err := apperror.NewValidation("severity", "unknown severity")

	var ve *apperror.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "severity", ve.Field)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestWithDetails_AttachesDetailsToSameError(t *testing.T) {
	err := apperror.New(apperror.KindValidation, "bad severity").WithDetails(map[string]any{"allowed": []string{"CRITICAL"}})
	assert.Equal(t, map[string]any{"allowed": []string{"CRITICAL"}}, err.Details)
}
