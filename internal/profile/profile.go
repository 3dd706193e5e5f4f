// Package profile holds user attributes and the daily calorie target derived
// from them.
package profile

// Profile captures the attributes the plan prompt is built from.
type Profile struct {
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	WeightKg  int    `json:"weight_kg"`
	Lifestyle string `json:"lifestyle"`
	Goal      string `json:"goal"`
	Allergies string `json:"allergies"`
	DietType  string `json:"diet_type"`
	Dislikes  string `json:"dislikes"`
}

// lifestyleMultipliers scale maintenance calories by activity level.
var lifestyleMultipliers = map[string]float64{
	"Sedentary":      1.2,
	"Lightly Active": 1.375,
	"Active":         1.55,
	"Athlete":        1.725,
}

// TargetCalories computes the daily kcal target: maintenance calories
// (24 kcal/kg for male, 22 otherwise, scaled by lifestyle) adjusted for the
// goal (-500 to lose fat, +300 to build muscle). Unknown lifestyles fall back
// to sedentary.
func (p Profile) TargetCalories() int {
	base := 22
	if p.Gender == "Male" {
		base = 24
	}

	mult, ok := lifestyleMultipliers[p.Lifestyle]
	if !ok {
		mult = 1.2
	}
	maintenance := int(float64(base*p.WeightKg) * mult)

	switch p.Goal {
	case "Lose fat":
		return maintenance - 500
	case "Build muscle":
		return maintenance + 300
	default:
		return maintenance
	}
}
