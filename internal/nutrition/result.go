package nutrition

import "math"

// Record holds the nutrients of a single food item matched by the lookup service.
// Nutrient fields are nil when the service did not report a value.
type Record struct {
	Name        string
	ServingQty  float64
	ServingUnit string

	Calories          *float64 // kcal
	Protein           *float64 // g
	TotalFat          *float64 // g
	TotalCarbohydrate *float64 // g
	DietaryFiber      *float64 // g
	Sugars            *float64 // g
	Sodium            *float64 // mg
}

// Result is the set of food records returned for one query.
type Result struct {
	Foods []Record
}

// Empty reports whether the result carries no records.
func (r *Result) Empty() bool {
	return r == nil || len(r.Foods) == 0
}

// Present reports whether v holds a finite number.
func Present(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// Value returns a pointer to v, handy for building records in code.
func Value(v float64) *float64 {
	return &v
}
