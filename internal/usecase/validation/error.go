package validation

import (
	"sort"
	"strings"

	"fleet-console/internal/domain/request"
	"fleet-console/internal/pkg/errs"
)

// FieldError carries a non-empty FieldErrors map as an error marked with
// errs.ErrValidation.
type FieldError struct {
	Fields request.FieldErrors
}

func (e *FieldError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return "invalid fields: " + strings.Join(keys, ", ")
}

// AsError returns nil for an empty map.
func AsError(fe request.FieldErrors) error {
	if fe.IsEmpty() {
		return nil
	}
	return errs.Mark(&FieldError{Fields: fe.Clone()}, errs.ErrValidation)
}
