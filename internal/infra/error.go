package infra

import (
	"errors"
	"log/slog"

	"fleet-console/internal/pkg/errs"
)

type GatewayErrorKind string

type GatewayError struct {
	Kind   GatewayErrorKind
	Status int
	msg    string
	err    error // wrapped low-level error
}

func (e GatewayError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e GatewayError) Unwrap() error {
	return e.err
}

// Message is the human-readable part without the kind prefix.
func (e GatewayError) Message() string {
	return e.msg
}

// WrapGatewayErr logs and classifies a failed outbound call. Kinds the caller
// may retry later are marked with errs.ErrTransientNetwork.
func WrapGatewayErr(slogger *slog.Logger, kind GatewayErrorKind, status int, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if status != 0 {
		logArgs = append(logArgs, slog.Int("status", status))
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
		err = errs.Wrap(err, msg)
	}

	if kind.Transient() {
		slogger.Warn("Gateway error: "+msg, logArgs...)
	} else {
		slogger.Info("Gateway rejected: "+msg, logArgs...)
	}

	var out error = GatewayError{Kind: kind, Status: status, msg: msg, err: err}
	if kind.Transient() {
		out = errs.Mark(out, errs.ErrTransientNetwork)
	}
	return out
}

func IsKind(err error, kind GatewayErrorKind) bool {
	var e GatewayError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Gateway error kinds
const (
	KindTransport   GatewayErrorKind = "TRANSPORT"
	KindUnavailable GatewayErrorKind = "UNAVAILABLE"
	KindCircuitOpen GatewayErrorKind = "CIRCUIT_OPEN"
	KindRateLimited GatewayErrorKind = "RATE_LIMITED"
	KindDecode      GatewayErrorKind = "DECODE"
	KindRejected    GatewayErrorKind = "REJECTED"
	KindNotFound    GatewayErrorKind = "NOT_FOUND"
)

func (k GatewayErrorKind) Transient() bool {
	switch k {
	case KindTransport, KindUnavailable, KindCircuitOpen, KindRateLimited, KindDecode:
		return true
	default:
		return false
	}
}
