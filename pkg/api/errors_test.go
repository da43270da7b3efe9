package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sreops/runbook-synthesizer/pkg/apperror"
)

func TestStatusForKind_MapsEveryKnownKind(t *testing.T) {
	cases := map[apperror.Kind]int{
		apperror.KindValidation:         http.StatusBadRequest,
		apperror.KindNotFound:           http.StatusNotFound,
		apperror.KindUpstreamUnavailable: http.StatusBadGateway,
		apperror.KindTimeout:            http.StatusGatewayTimeout,
		apperror.KindParseError:         http.StatusUnprocessableEntity,
		apperror.KindInternal:           http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, statusForKind(kind), "kind %s", kind)
	}
}

func TestStatusForKind_UnknownKindDefaultsToInternalError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusForKind(apperror.Kind("SOMETHING_NEW")))
}
