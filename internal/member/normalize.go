package member

import (
	"errors"
	"strings"
	"unicode"
)

var ErrInvalidPhone = errors.New("phone must contain exactly 10 digits")

// TitleCase normalizes name-like fields: each word capitalized, the rest
// lowered. Applied server-side so records stay consistent regardless of the
// client that created them.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// NormalizePhone strips every non-digit character and requires exactly 10
// digits. Empty input is allowed (phone is optional).
func NormalizePhone(s string) (string, error) {
	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 && strings.TrimSpace(s) == "" {
		return "", nil
	}
	if digits.Len() != 10 {
		return "", ErrInvalidPhone
	}
	return digits.String(), nil
}
