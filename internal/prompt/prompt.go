package prompt

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"

	apperrors "codeberg.org/codeweaver/server/internal/errors"
)

const (
	MinLength = 10
	MaxLength = 5000
)

// patterns every validator rejects, operators may add more
var DefaultPatterns = []string{
	`(?i)ignore\s+previous\s+instructions`,
	`(?i)system\s+prompt`,
	`(?i)<script[^>]*>`,
}

var (
	ErrInvalidInput = apperrors.New(apperrors.KindValidation, apperrors.ReasonInvalidInput,
		"Prompt must be a valid string")
	ErrTooShort = apperrors.New(apperrors.KindValidation, apperrors.ReasonTooShort,
		fmt.Sprintf("Prompt must be at least %d characters", MinLength))
	ErrTooLong = apperrors.New(apperrors.KindValidation, apperrors.ReasonTooLong,
		fmt.Sprintf("Prompt exceeds maximum length of %d characters", MaxLength))
	ErrSuspiciousContent = apperrors.New(apperrors.KindValidation, apperrors.ReasonSuspiciousContent,
		"Invalid prompt content detected")
)

// screens prompts before they reach the gateway
type Validator struct {
	patterns []*regexp.Regexp
}

// compiles the default patterns plus extra ones
func NewValidator(extra ...string) (*Validator, error) {
	sources := append(append([]string{}, DefaultPatterns...), extra...)
	patterns := make([]*regexp.Regexp, 0, len(sources))

	for _, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("invalid prompt pattern %q: %w", src, err)
		}

		patterns = append(patterns, re)
	}

	return &Validator{patterns: patterns}, nil
}

// counts UTF-16 code units, so characters outside the BMP count twice
func Length(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// returns the trimmed prompt or a validation error
func (v *Validator) Validate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidInput
	}

	length := Length(trimmed)

	if length < MinLength {
		return "", ErrTooShort
	}

	if length > MaxLength {
		return "", ErrTooLong
	}

	for _, re := range v.patterns {
		if re.MatchString(trimmed) {
			return "", ErrSuspiciousContent
		}
	}

	return trimmed, nil
}
