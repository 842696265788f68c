// Package patch holds helpers for applying partial updates where nil means
// "not sent".
package patch

import "strings"

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// CoalesceTrim is Coalesce for free-text inputs. A sent value is trimmed.
func CoalesceTrim(ptr *string, fallback string) string {
	if ptr != nil {
		return strings.TrimSpace(*ptr)
	}
	return fallback
}

// Ref returns a pointer to a copy of v.
func Ref[T any](v T) *T {
	return &v
}
