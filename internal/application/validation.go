package application

import (
	"fmt"
	"strings"

	"inkwell/internal/domain"
)

// ValidateCapture rejects empty or whitespace-only captures before they
// reach the classifier.
func ValidateCapture(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyCapture
	}
	return nil
}

// ParseCategoryArg resolves user text to a category or reports
// ErrInvalidCategory with the accepted names.
func ParseCategoryArg(text string) (domain.Category, error) {
	cat, ok := domain.ParseCategory(text)
	if !ok {
		return "", fmt.Errorf("%w: %q (use People, Projects, Ideas or Admin)", ErrInvalidCategory, strings.TrimSpace(text))
	}
	return cat, nil
}
