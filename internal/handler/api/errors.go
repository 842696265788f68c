package api

import (
	"context"
	"errors"
	"net/http"

	"fleet-console/internal/handler/httperr"
	"fleet-console/internal/infra"
	"fleet-console/internal/pkg/errs"
	"fleet-console/internal/usecase/checkout"
	"fleet-console/internal/usecase/composer"
	"fleet-console/internal/usecase/validation"

	"github.com/gin-gonic/gin"
)

var (
	errMissingStartHour     = errors.New("startHour is required for a scheduled slot")
	errUnknownLocationField = errors.New("unknown location field")
)

// abortWithUsecaseError maps the composer error taxonomy to a status code.
// Field errors are returned as the detail so the console can show them inline.
func abortWithUsecaseError(c *gin.Context, err error, msg string) {
	var fe *validation.FieldError
	switch {
	case errs.Is(err, composer.ErrSessionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Composer session not found", nil)
	case errors.As(err, &fe):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", gin.H{"fieldErrors": fieldErrorMap(fe)})
	case errs.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errs.Is(err, checkout.ErrStaleResponse):
		httperr.AbortWithError(c, http.StatusConflict, err, "Superseded by a newer request", nil)
	case errs.Is(err, checkout.ErrConfirmInFlight), errs.Is(err, checkout.ErrVerifyInFlight):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request is currently being processed", nil)
	case errs.Is(err, checkout.ErrNotInitialized):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request has not been priced", nil)
	case errs.Is(err, checkout.ErrAlreadyConfirmed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request already confirmed", nil)
	case errs.Is(err, checkout.ErrClosed):
		httperr.AbortWithError(c, http.StatusGone, err, "Composer session closed", nil)
	case errs.Is(err, checkout.ErrSessionMismatch), errs.Is(err, checkout.ErrNoPaymentSession):
		httperr.AbortWithError(c, http.StatusConflict, err, "Payment reference is not the current session", nil)
	case errs.Is(err, errs.ErrPayment):
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Payment could not be verified", nil)
	case errs.Is(err, errs.ErrFatalSubmission):
		if infra.IsKind(err, infra.KindRejected) || infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, rejectionMessage(err, msg), nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadGateway, err, msg, nil)
	case errs.Is(err, errs.ErrTransientNetwork):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Upstream service unavailable", nil)
	case errors.Is(err, context.DeadlineExceeded):
		httperr.AbortWithError(c, http.StatusGatewayTimeout, err, "Upstream timeout", nil)
	case infra.IsKind(err, infra.KindRejected), infra.IsKind(err, infra.KindNotFound):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, rejectionMessage(err, msg), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// rejectionMessage surfaces the backend's own explanation when it gave one.
func rejectionMessage(err error, fallback string) string {
	var ge infra.GatewayError
	if errors.As(err, &ge) && ge.Message() != "" {
		return ge.Message()
	}
	return fallback
}

func fieldErrorMap(fe *validation.FieldError) map[string]string {
	out := make(map[string]string, len(fe.Fields))
	for k, v := range fe.Fields {
		out[string(k)] = v
	}
	return out
}
