package inputval

import (
	"strings"
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		// Valid emails
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},
		{"user123@example.co.uk", true},
		{"a@b.co", true},
		{"user@localhost", true}, // useful for dev/test environments

		// Invalid emails - empty/whitespace
		{"", false},
		{"   ", false},

		// Invalid emails - missing parts
		{"user", false},
		{"user@", false},
		{"@example.com", false},

		// Invalid emails - bad dot placement
		{".user@example.com", false},
		{"user.@example.com", false},
		{"user..name@example.com", false},
		{"user@.example.com", false},
		{"user@example..com", false},

		// Invalid emails - display name format (should be rejected)
		{"User Name <user@example.com>", false},

		// Invalid emails - other malformed
		{"user @example.com", false},
		{"user@ example.com", false},
		{"user@exam ple.com", false},
		{"user@@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got := IsValidEmail(tt.email)
			if got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"jdoe", true},
		{"JDoe_99", true},
		{"abc", true},                          // exactly min length
		{strings.Repeat("a", 30), true},        // exactly max length
		{"", false},
		{"ab", false},                          // too short
		{strings.Repeat("a", 31), false},       // too long
		{"with space", false},
		{"with-dash", false},
		{"with.dot", false},
		{"émile", false}, // non-ASCII
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			got := IsValidUsername(tt.username)
			if got != tt.want {
				t.Errorf("IsValidUsername(%q) = %v, want %v", tt.username, got, tt.want)
			}
		})
	}
}

func TestPostText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "hello world", "hello world", true},
		{"trimmed", "  hello  ", "hello", true},
		{"empty", "", "", false},
		{"whitespace only", "   \t\n ", "", false},
		{"max length", strings.Repeat("x", 1000), strings.Repeat("x", 1000), true},
		{"too long", strings.Repeat("x", 1001), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PostText(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("PostText(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCommentText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"plain", "nice post", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"max length", strings.Repeat("x", 500), true},
		{"too long", strings.Repeat("x", 501), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := CommentText(tt.input)
			if ok != tt.ok {
				t.Errorf("CommentText(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
		})
	}
}

func TestIsValidName(t *testing.T) {
	if !IsValidName("Ada") {
		t.Error("expected short name to be valid")
	}
	if IsValidName("") || IsValidName("   ") {
		t.Error("expected empty name to be invalid")
	}
	if IsValidName(strings.Repeat("n", 51)) {
		t.Error("expected 51-rune name to be invalid")
	}
}

func TestIsValidBio(t *testing.T) {
	if !IsValidBio("") {
		t.Error("expected empty bio to be valid")
	}
	if !IsValidBio(strings.Repeat("b", 500)) {
		t.Error("expected 500-rune bio to be valid")
	}
	if IsValidBio(strings.Repeat("b", 501)) {
		t.Error("expected 501-rune bio to be invalid")
	}
}
