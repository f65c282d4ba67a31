// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are stored and
// compared in this normalized form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username trims a handle. Case is preserved for display; the folded
// username_ci shadow field backs case-insensitive uniqueness.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Status lowercases and trims an account status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role lowercases and trims a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
