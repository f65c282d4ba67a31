// internal/app/system/inputval/inputval.go
package inputval

import (
	"strings"
	"unicode/utf8"
)

// Field length limits enforced at the operation boundary. Invalid input
// always fails fast; nothing is silently coerced.
const (
	UsernameMin = 3
	UsernameMax = 30
	NameMax     = 50
	BioMax      = 500
	PostTextMax = 1000
	CommentMax  = 500
)

// IsValidEmail reports whether s is a plausible email address.
// Stricter than a bare "contains @" check: rejects display-name forms,
// embedded whitespace, and leading/trailing/consecutive dots.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t<>") {
		return false
	}
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if local == "" || domain == "" {
		return false
	}
	for _, part := range []string{local, domain} {
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
			return false
		}
	}
	return true
}

// IsValidUsername reports whether s is an acceptable handle:
// 3-30 characters, letters/digits/underscore only.
func IsValidUsername(s string) bool {
	if len(s) < UsernameMin || len(s) > UsernameMax {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		ok := (c >= 'a' && c <= 'z') ||
			(c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') ||
			c == '_'
		if !ok {
			return false
		}
	}
	return true
}

// PostText validates post body text: non-empty after trimming, at most
// PostTextMax runes. Returns the trimmed text and whether it is valid.
func PostText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > PostTextMax {
		return "", false
	}
	return s, true
}

// CommentText validates comment text: non-empty after trimming, at most
// CommentMax runes. Returns the trimmed text and whether it is valid.
func CommentText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > CommentMax {
		return "", false
	}
	return s, true
}

// IsValidName reports whether a first or last name is acceptable:
// non-empty after trimming and at most NameMax runes.
func IsValidName(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && utf8.RuneCountInString(s) <= NameMax
}

// IsValidBio reports whether a bio is acceptable (empty allowed).
func IsValidBio(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= BioMax
}
