package report

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"apple":             "apple",
		"chicken breast":    "chicken_breast",
		"Chicken Breast!!":  "Chicken_Breast",
		"mac & cheese":      "mac__cheese",
		"already_snake":     "already_snake",
		"../../etc/passwd":  "etcpasswd",
		"tab\tseparated":    "tabseparated",
		"crème brûlée 2024": "crème_brûlée_2024",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeName(in), in)
	}
}

func TestSanitizeName_OnlySafeCharacters(t *testing.T) {
	safe := regexp.MustCompile(`^[\p{L}\p{N}_]*$`)
	inputs := []string{"a b c", " leading", "trailing ", "!@#$%^&*()", "x/y\\z", "new\nline", "semi;colon"}
	for _, in := range inputs {
		out := SanitizeName(in)
		assert.Regexp(t, safe, out, in)
		assert.NotContains(t, out, " ")
	}
}

func TestFileName(t *testing.T) {
	day := time.Date(2025, time.July, 30, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "nutrition_data_apple_2025-07-30.txt", FileName("apple", day))
	assert.Equal(t, "nutrition_data_chicken_breast_2025-07-30.txt", FileName("chicken breast", day))

	// Same query, same day: same name.
	assert.Equal(t, FileName("apple", day), FileName("apple", day.Add(-time.Hour)))
}
