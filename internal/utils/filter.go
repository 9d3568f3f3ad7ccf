package utils

import (
	"strings"
)

// IsLowerAlpha reports whether s is non-empty and made only of a-z.
func IsLowerAlpha(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// IsSeparator checks if a rune separates letters in user input
func IsSeparator(r rune) bool {
	return r == ' ' || r == ',' || r == '-' || r == '/'
}

// Letters lower-cases s and returns its a-z bytes in order, dropping
// separators. ok is false if s holds anything else.
func Letters(s string) (letters []byte, ok bool) {
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z':
			letters = append(letters, byte(r))
		case IsSeparator(r):
		default:
			return nil, false
		}
	}
	return letters, true
}
