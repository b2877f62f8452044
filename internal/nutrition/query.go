package nutrition

import (
	"errors"
	"strings"
	"unicode"
)

var (
	// ErrEmptyQuery is returned when the food name is blank.
	ErrEmptyQuery = errors.New("food item cannot be empty")
	// ErrInvalidQuery is returned when the food name contains anything but letters and spaces.
	ErrInvalidQuery = errors.New("food item must contain only letters and spaces")
)

// FoodQuery is a validated free-text food description.
type FoodQuery struct {
	text string
}

// ParseFoodQuery trims raw and validates it as a food name.
func ParseFoodQuery(raw string) (FoodQuery, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return FoodQuery{}, ErrEmptyQuery
	}
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return FoodQuery{}, ErrInvalidQuery
		}
	}
	return FoodQuery{text: text}, nil
}

// String returns the query text.
func (q FoodQuery) String() string {
	return q.text
}

// IsZero reports whether q was never validated.
func (q FoodQuery) IsZero() bool {
	return q.text == ""
}
