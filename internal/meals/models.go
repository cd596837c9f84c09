package meals

import (
	"fmt"
	"time"

	"nutrition-diary-api/internal/nutrients"
)

// MealType is one of the four fixed meal slots of a day.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists the slots in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// Labels maps meal types to their display names.
var Labels = map[MealType]string{
	Breakfast: "Завтрак",
	Lunch:     "Обед",
	Dinner:    "Ужин",
	Snack:     "Перекус",
}

// ParseMealType validates a raw meal type string.
func ParseMealType(raw string) (MealType, error) {
	switch MealType(raw) {
	case Breakfast, Lunch, Dinner, Snack:
		return MealType(raw), nil
	}
	return "", fmt.Errorf("unknown meal type %q", raw)
}

// MealItem is one logged serving of a product. Calories and Nutrients
// are absolute values derived from the product's per-100g profile and
// recomputed whenever Amount changes. ProductID is a non-owning
// reference; ProductName is a snapshot taken at add time.
type MealItem struct {
	ID          string            `json:"id"`
	ProductID   string            `json:"productId"`
	ProductName string            `json:"productName"`
	Amount      float64           `json:"amount"` // grams
	Calories    int               `json:"calories"`
	Nutrients   nutrients.Profile `json:"nutrients"`
}

// Meal is one slot of a day with its ordered items and cached totals.
// Invariant after every mutation: TotalCalories equals the sum of the
// item calories, and TotalNutrients the component-wise item sum.
type Meal struct {
	ID             string            `json:"id"`
	Type           MealType          `json:"type"`
	Date           time.Time         `json:"date"`
	Items          []MealItem        `json:"items"`
	TotalCalories  int               `json:"totalCalories"`
	TotalNutrients nutrients.Profile `json:"totalNutrients"`
}

// DailyMeals holds the four meals of one calendar day plus day totals,
// which always equal the sum over the four meals.
type DailyMeals struct {
	Date           time.Time         `json:"date"`
	Breakfast      Meal              `json:"breakfast"`
	Lunch          Meal              `json:"lunch"`
	Dinner         Meal              `json:"dinner"`
	Snack          Meal              `json:"snack"`
	TotalCalories  int               `json:"totalCalories"`
	TotalNutrients nutrients.Profile `json:"totalNutrients"`
}

// Meal returns the slot for the given type; the boolean is false for a
// type outside the enum.
func (d *DailyMeals) Meal(t MealType) (*Meal, bool) {
	switch t {
	case Breakfast:
		return &d.Breakfast, true
	case Lunch:
		return &d.Lunch, true
	case Dinner:
		return &d.Dinner, true
	case Snack:
		return &d.Snack, true
	}
	return nil, false
}

// CreateMealItemData is the payload for adding a product to a meal.
type CreateMealItemData struct {
	ProductID string  `json:"productId"`
	Amount    float64 `json:"amount"` // grams, must be positive
}
