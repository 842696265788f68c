//go:build unit

package infra_test

import (
	"errors"
	"net/http"
	"testing"

	"fleet-console/internal/infra"
	"fleet-console/internal/pkg/errs"
	"fleet-console/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestWrapGatewayErr(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	t.Run("transport errors are transient", func(t *testing.T) {
		err := infra.WrapGatewayErr(logger.Discard(), infra.KindTransport, 0, "init fuel service", cause)
		assert.True(t, infra.IsKind(err, infra.KindTransport))
		assert.True(t, errs.Is(err, errs.ErrTransientNetwork))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "TRANSPORT: init fuel service")
	})

	t.Run("rejections are not transient", func(t *testing.T) {
		err := infra.WrapGatewayErr(logger.Discard(), infra.KindRejected, http.StatusUnprocessableEntity, "insufficient balance", nil)
		assert.True(t, infra.IsKind(err, infra.KindRejected))
		assert.False(t, infra.IsKind(err, infra.KindNotFound))
		assert.False(t, errs.Is(err, errs.ErrTransientNetwork))

		var ge infra.GatewayError
		assert.True(t, errors.As(err, &ge))
		assert.Equal(t, http.StatusUnprocessableEntity, ge.Status)
		assert.Equal(t, "insufficient balance", ge.Message())
	})
}
