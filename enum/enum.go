// Package enum holds the lookup shared by the closed string enumerations
// of the message model.
package enum

import (
	"fmt"
	"strings"
)

// Lookup returns the first of values whose String form equals s, ignoring case.
func Lookup[T fmt.Stringer](values []T, s string) (T, bool) {
	for _, v := range values {
		if strings.EqualFold(v.String(), s) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Names joins the String forms of values with sep, for error messages.
func Names[T fmt.Stringer](values []T, sep string) string {
	names := make([]string, 0, len(values))
	for _, v := range values {
		names = append(names, v.String())
	}
	return strings.Join(names, sep)
}
