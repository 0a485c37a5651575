package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxEmailLength    = 254
	minPasswordLength = 8
	maxPasswordLength = 128
	maxTextLength     = 2000
)

// NormalizeEmail trims, lowercases, and shape-checks an email address.
// Normalizing here keeps lockout keys and uniqueness checks case-stable.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(email) > maxEmailLength {
		return "", fmt.Errorf("%w: email is required and must be <= %d characters", ErrInvalidInput, maxEmailLength)
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return "", fmt.Errorf("%w: malformed email address", ErrInvalidInput)
	}
	if strings.ContainsAny(email, " \t\r\n") {
		return "", fmt.Errorf("%w: malformed email address", ErrInvalidInput)
	}
	return email, nil
}

// ValidatePassword enforces the baseline password policy for admin accounts.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be <= %d characters", ErrInvalidInput, maxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("%w: password must include upper, lower, and digit", ErrInvalidInput)
	}
	return nil
}

// SanitizeText trims free-form user text and strips angle brackets so stored
// content can never smuggle markup into the storefront or admin console.
func SanitizeText(s string, maxLen int) string {
	if maxLen <= 0 || maxLen > maxTextLength {
		maxLen = maxTextLength
	}
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	if len(s) > maxLen {
		// Back off to a rune boundary so the cut never leaves invalid UTF-8.
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}

// RequireText validates a mandatory sanitized field.
func RequireText(name, s string, maxLen int) (string, error) {
	out := SanitizeText(s, maxLen)
	if out == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}
	return out, nil
}
