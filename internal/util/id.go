package util

import (
	"crypto/rand"
	"strings"
	"unicode"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateShortID returns a 6-character alphanumeric string using cryptographic randomness.
func GenerateShortID() (string, error) {
	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	for i := range bytes {
		bytes[i] = alphanumeric[int(bytes[i])%len(alphanumeric)]
	}

	return string(bytes), nil
}

// ToKebabCase turns a lesson title into a slug: lowercase letters and digits
// joined by single hyphens.
func ToKebabCase(s string) string {
	var result strings.Builder

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			result.WriteRune(unicode.ToLower(r))
		case r == ' ' || r == '_' || r == '-':
			result.WriteRune('-')
		}
	}

	str := result.String()
	for strings.Contains(str, "--") {
		str = strings.ReplaceAll(str, "--", "-")
	}

	return strings.Trim(str, "-")
}
