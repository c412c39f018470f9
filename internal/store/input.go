package store

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

func newValidator() *validator.Validate {
	return validator.New()
}

// check validates a payload, reporting failures as ErrInvalidInput.
func (s *Store) check(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// clean trims surrounding whitespace and NFC-normalizes user text so the
// same word typed on different keyboards compares equal.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func cleanPtr(s *string) *string {
	if s == nil {
		return nil
	}
	c := clean(*s)
	return &c
}

func lowerPtr(s *string) *string {
	if s == nil {
		return nil
	}
	c := strings.ToLower(strings.TrimSpace(*s))
	return &c
}

func (s *Store) colorOrDefault(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		return s.defaultColor
	}
	return c
}
