// Package report renders nutrition results as text and names the files they are saved to.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"nutrition-tracker/internal/nutrition"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Header opens every report.
	Header = "--- Nutritional Information ---\n"
	// NoData is rendered in place of a report when a result has no records.
	NoData = "No nutritional data available."

	separatorWidth = 30
)

var separator = strings.Repeat("-", separatorWidth) + "\n"

type nutrientLine struct {
	label string
	unit  string
	value func(nutrition.Record) *float64
}

// Field order and units are fixed.
var nutrientLines = []nutrientLine{
	{"Calories", "kcal", func(r nutrition.Record) *float64 { return r.Calories }},
	{"Protein", "g", func(r nutrition.Record) *float64 { return r.Protein }},
	{"Total Fat", "g", func(r nutrition.Record) *float64 { return r.TotalFat }},
	{"Total Carbohydrates", "g", func(r nutrition.Record) *float64 { return r.TotalCarbohydrate }},
	{"Dietary Fiber", "g", func(r nutrition.Record) *float64 { return r.DietaryFiber }},
	{"Sugars", "g", func(r nutrition.Record) *float64 { return r.Sugars }},
	{"Sodium", "mg", func(r nutrition.Record) *float64 { return r.Sodium }},
}

// Format renders result as a human-readable report. The output depends only on result.
func Format(result *nutrition.Result) string {
	if result.Empty() {
		return NoData
	}

	title := cases.Title(language.Und)

	var sb strings.Builder
	sb.WriteString(Header)
	for _, rec := range result.Foods {
		fmt.Fprintf(&sb, "\nFood: %s (%s %s)\n", title.String(rec.Name), formatQuantity(rec.ServingQty), rec.ServingUnit)
		for _, line := range nutrientLines {
			sb.WriteString(formatNutrient(line.label, line.value(rec), line.unit))
		}
		sb.WriteString(separator)
	}
	return sb.String()
}

func formatNutrient(label string, v *float64, unit string) string {
	if !nutrition.Present(v) {
		return fmt.Sprintf("  %s: N/A\n", label)
	}
	return fmt.Sprintf("  %s: %.2f %s\n", label, *v, unit)
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
