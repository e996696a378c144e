package draft

import (
	"fmt"
	"unicode"
)

const (
	MinPickLength = 2
	MaxPickLength = 255
)

// ValidatePickName checks length and the character allow-list: letters,
// digits, whitespace, hyphen, period, apostrophe. The name is assumed
// already trimmed.
func ValidatePickName(name string) error {
	runes := []rune(name)
	if len(runes) < MinPickLength || len(runes) > MaxPickLength {
		return &ValidationError{
			Reason: fmt.Sprintf("name must be between %d and %d characters", MinPickLength, MaxPickLength),
		}
	}

	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		switch r {
		case '-', '.', '\'':
			continue
		}
		return &ValidationError{
			Reason: "only letters, numbers, spaces, hyphens, periods, and apostrophes are allowed",
		}
	}
	return nil
}
