package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Validation rule patterns
var (
	// PhonePattern allows an optional leading + followed by 10 to 15 digits
	PhonePattern = `^\+?\d{10,15}$`

	// GhanaCardPattern is the national ID format, e.g. GHA-123456789-0
	GhanaCardPattern = `^GHA-\d{9}-\d$`

	// HexColorPattern is a #RRGGBB colour
	HexColorPattern = `^#[0-9A-Fa-f]{6}$`

	// PasswordMinLength applies to user-chosen passwords
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Phone     *regexp.Regexp
	GhanaCard *regexp.Regexp
	HexColor  *regexp.Regexp
}{
	Phone:     regexp.MustCompile(PhonePattern),
	GhanaCard: regexp.MustCompile(GhanaCardPattern),
	HexColor:  regexp.MustCompile(HexColorPattern),
}

// IsValidPhone reports whether s is an acceptable phone number
func IsValidPhone(s string) bool {
	return CompiledPatterns.Phone.MatchString(s)
}

// IsValidGhanaCard reports whether s is a well-formed Ghana card number
func IsValidGhanaCard(s string) bool {
	return CompiledPatterns.GhanaCard.MatchString(s)
}

// IsValidName checks the length bounds of a person name
func IsValidName(s string) bool {
	n := len([]rune(strings.TrimSpace(s)))
	return n >= NameMinLength && n <= NameMaxLength
}

// IsStrongPassword requires the minimum length plus at least one letter and one digit
func IsStrongPassword(s string) bool {
	if len(s) < PasswordMinLength {
		return false
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

// NormalizePhone strips spaces and dashes people type into phone numbers
func NormalizePhone(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
}
