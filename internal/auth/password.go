package auth

import (
	"strings"
	"unicode"
)

// specialChars is the fixed symbol set a password must draw from.
const specialChars = `!@#$%^&*(),.?":{}|<>`

// ValidatePassword checks a candidate password against the composition
// rules and returns it unchanged on success. Rules are evaluated in a
// fixed order (length, uppercase, lowercase, digit, special character)
// and the first failing rule is reported as a *PolicyError. The
// candidate is never normalized.
func ValidatePassword(candidate string) (string, error) {
	if len(candidate) < 8 {
		return "", &PolicyError{Rule: "length", Message: "Password must be at least 8 characters"}
	}
	if !containsClass(candidate, unicode.IsUpper) {
		return "", &PolicyError{Rule: "uppercase", Message: "Password must contain at least one uppercase letter"}
	}
	if !containsClass(candidate, unicode.IsLower) {
		return "", &PolicyError{Rule: "lowercase", Message: "Password must contain at least one lowercase letter"}
	}
	if !containsClass(candidate, unicode.IsDigit) {
		return "", &PolicyError{Rule: "digit", Message: "Password must contain at least one number"}
	}
	if !strings.ContainsAny(candidate, specialChars) {
		return "", &PolicyError{Rule: "special", Message: "Password must contain at least one special character"}
	}
	return candidate, nil
}

func containsClass(s string, class func(rune) bool) bool {
	for _, r := range s {
		if class(r) {
			return true
		}
	}
	return false
}
