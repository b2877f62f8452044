package nutritionix

import (
	"bytes"
	"encoding/json"

	"nutrition-tracker/internal/nutrition"
)

// nutrientsResponse is the top-level structure of the natural/nutrients response.
type nutrientsResponse struct {
	Foods []food `json:"foods"`
}

type food struct {
	FoodName    *string `json:"food_name"`
	ServingQty  number  `json:"serving_qty"`
	ServingUnit *string `json:"serving_unit"`

	Calories          number `json:"nf_calories"`
	Protein           number `json:"nf_protein"`
	TotalFat          number `json:"nf_total_fat"`
	TotalCarbohydrate number `json:"nf_total_carbohydrate"`
	DietaryFiber      number `json:"nf_dietary_fiber"`
	Sugars            number `json:"nf_sugars"`
	Sodium            number `json:"nf_sodium"`
}

// number decodes a JSON number and treats null, strings and any other value as absent.
type number struct {
	v *float64
}

func (n *number) UnmarshalJSON(data []byte) error {
	n.v = nil
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	n.v = &f
	return nil
}

func (r nutrientsResponse) toResult() *nutrition.Result {
	result := &nutrition.Result{Foods: make([]nutrition.Record, 0, len(r.Foods))}
	for _, f := range r.Foods {
		rec := nutrition.Record{
			Name:        "N/A",
			ServingQty:  1,
			ServingUnit: "serving",

			Calories:          f.Calories.v,
			Protein:           f.Protein.v,
			TotalFat:          f.TotalFat.v,
			TotalCarbohydrate: f.TotalCarbohydrate.v,
			DietaryFiber:      f.DietaryFiber.v,
			Sugars:            f.Sugars.v,
			Sodium:            f.Sodium.v,
		}
		if f.FoodName != nil {
			rec.Name = *f.FoodName
		}
		if f.ServingQty.v != nil {
			rec.ServingQty = *f.ServingQty.v
		}
		if f.ServingUnit != nil {
			rec.ServingUnit = *f.ServingUnit
		}
		result.Foods = append(result.Foods, rec)
	}
	return result
}
