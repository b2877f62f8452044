package report

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Report file names are <FilePrefix>_<sanitized query>_<date>.<FileExt>.
const (
	// FilePrefix starts every report file name.
	FilePrefix = "nutrition_data"
	// FileExt is the report file extension, without the dot.
	FileExt = "txt"
	// DateLayout formats the run date in the file name.
	DateLayout = "2006-01-02"
)

// SanitizeName keeps letters, digits, spaces and underscores from query and
// turns the spaces into underscores.
func SanitizeName(query string) string {
	var sb strings.Builder
	for _, r := range query {
		switch {
		case r == ' ':
			sb.WriteRune('_')
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// FileName returns the artifact name for query on the day of now.
// The same query on the same day always maps to the same name.
func FileName(query string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.%s", FilePrefix, SanitizeName(query), now.Format(DateLayout), FileExt)
}
