package errs

import "errors"

// Error taxonomy shared by the composer components. Concrete errors are
// marked with one of these so callers can branch with errs.Is.
var (
	// Field-level, recoverable, surfaced inline.
	ErrValidation = errors.New("validation error")

	// Prediction, geocode and pricing failures; the last known-good value is kept.
	ErrTransientNetwork = errors.New("transient network error")

	// Payment verification failure; the payment surface stays available for retry.
	ErrPayment = errors.New("payment error")

	// Backend rejected confirm/place; the draft is preserved for resubmission.
	ErrFatalSubmission = errors.New("fatal submission error")
)
