package common

import (
	"strings"

	"github.com/ribtoks/checkmail"
)

// CleanEmail strips an RFC "Display Name <address>" value down to the
// bracketed address. Values without angle brackets pass through unchanged.
func CleanEmail(value string) string {
	start := strings.Index(value, "<")
	end := strings.LastIndex(value, ">")
	if start == -1 || end == -1 || end < start {
		return value
	}
	return value[start+1 : end]
}

// ValidateEmail checks the address format only, no MX or host lookups
func ValidateEmail(email string) error {
	return checkmail.ValidateFormat(email)
}
