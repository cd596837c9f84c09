package meals

import (
	"context"
	"math"
	"testing"
	"time"

	"nutrition-diary-api/internal/nutrients"
	"nutrition-diary-api/internal/products"
)

func newTestLedger(t *testing.T) (*Ledger, *products.Store) {
	t.Helper()
	store := products.NewStore(products.NewSeededMemoryCatalog(0))
	if !store.Fetch(context.Background()) {
		t.Fatalf("failed to fetch seed products: %s", store.Err())
	}
	return NewLedger(store), store
}

func assertMealInvariant(t *testing.T, meal Meal) {
	t.Helper()

	total := 0
	var sum nutrients.Profile
	for _, item := range meal.Items {
		total += item.Calories
		sum.Proteins += item.Nutrients.Proteins
		sum.Fats += item.Nutrients.Fats
		sum.Carbohydrates += item.Nutrients.Carbohydrates
		sum.Fiber += item.Nutrients.Fiber
	}

	if meal.TotalCalories != total {
		t.Errorf("%s: totalCalories=%d, sum of items=%d", meal.Type, meal.TotalCalories, total)
	}
	if !profilesEqual(meal.TotalNutrients, sum) {
		t.Errorf("%s: totalNutrients=%+v, sum of items=%+v", meal.Type, meal.TotalNutrients, sum)
	}
}

func assertDayInvariant(t *testing.T, day DailyMeals) {
	t.Helper()

	all := []Meal{day.Breakfast, day.Lunch, day.Dinner, day.Snack}
	total := 0
	for _, meal := range all {
		assertMealInvariant(t, meal)
		total += meal.TotalCalories
	}
	if day.TotalCalories != total {
		t.Errorf("day: totalCalories=%d, sum of meals=%d", day.TotalCalories, total)
	}
}

func profilesEqual(a, b nutrients.Profile) bool {
	const eps = 1e-9
	return math.Abs(a.Proteins-b.Proteins) < eps &&
		math.Abs(a.Fats-b.Fats) < eps &&
		math.Abs(a.Carbohydrates-b.Carbohydrates) < eps &&
		math.Abs(a.Fiber-b.Fiber) < eps
}

func TestAddMealItemChickenBreast(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	// 150 g of chicken breast (165 kcal, 31 g protein per 100 g).
	if !ledger.AddMealItem(ctx, Breakfast, CreateMealItemData{ProductID: "1", Amount: 150}) {
		t.Fatalf("add failed: %s", ledger.Err())
	}

	day := ledger.CurrentDayMeals()
	if len(day.Breakfast.Items) != 1 {
		t.Fatalf("expected 1 breakfast item, got %d", len(day.Breakfast.Items))
	}

	item := day.Breakfast.Items[0]
	if item.Calories != 248 {
		t.Errorf("expected 248 kcal, got %d", item.Calories)
	}
	if item.Nutrients.Proteins != 46.5 {
		t.Errorf("expected 46.5 g proteins, got %v", item.Nutrients.Proteins)
	}
	if item.ProductName != "Куриная грудка" {
		t.Errorf("expected product name snapshot, got %q", item.ProductName)
	}
	if day.Breakfast.TotalCalories != 248 || day.TotalCalories != 248 {
		t.Errorf("totals not propagated: meal=%d day=%d", day.Breakfast.TotalCalories, day.TotalCalories)
	}
	assertDayInvariant(t, day)
}

func TestAddMealItemUnknownProduct(t *testing.T) {
	ledger, _ := newTestLedger(t)

	if ledger.AddMealItem(context.Background(), Lunch, CreateMealItemData{ProductID: "nope", Amount: 100}) {
		t.Fatal("expected add to fail for unknown product")
	}
	if ledger.Err() == "" {
		t.Error("expected an error message to be recorded")
	}
	if ledger.DayCount() != 0 {
		t.Error("failed add must not materialize a day")
	}

	ledger.ClearError()
	if ledger.Err() != "" {
		t.Error("ClearError did not reset the message")
	}
}

func TestAddMealItemRejectsNonPositiveAmount(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	for _, amount := range []float64{0, -50} {
		if ledger.AddMealItem(ctx, Dinner, CreateMealItemData{ProductID: "1", Amount: amount}) {
			t.Errorf("expected add with amount=%v to fail", amount)
		}
	}
	if ledger.DayCount() != 0 {
		t.Error("rejected add must not materialize a day")
	}
}

func TestAddMealItemRejectsUnknownMealType(t *testing.T) {
	ledger, _ := newTestLedger(t)

	if ledger.AddMealItem(context.Background(), MealType("brunch"), CreateMealItemData{ProductID: "1", Amount: 100}) {
		t.Fatal("expected add to fail for a meal type outside the enum")
	}
}

func TestRemoveMealItem(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	ledger.AddMealItem(ctx, Breakfast, CreateMealItemData{ProductID: "1", Amount: 150})
	ledger.AddMealItem(ctx, Breakfast, CreateMealItemData{ProductID: "2", Amount: 200})

	day := ledger.CurrentDayMeals()
	first := day.Breakfast.Items[0].ID

	if !ledger.RemoveMealItem(Breakfast, first) {
		t.Fatal("expected remove to succeed")
	}

	day = ledger.CurrentDayMeals()
	if len(day.Breakfast.Items) != 1 {
		t.Fatalf("expected 1 item left, got %d", len(day.Breakfast.Items))
	}
	if day.Breakfast.Items[0].ProductID != "2" {
		t.Error("wrong item removed")
	}
	assertDayInvariant(t, day)

	// Removing the last item keeps the day persisted with zero totals.
	if !ledger.RemoveMealItem(Breakfast, day.Breakfast.Items[0].ID) {
		t.Fatal("expected second remove to succeed")
	}
	if ledger.DayCount() != 1 {
		t.Error("emptied day must stay persisted")
	}
	day = ledger.CurrentDayMeals()
	if day.TotalCalories != 0 {
		t.Errorf("expected zero totals, got %d", day.TotalCalories)
	}
}

func TestRemoveMealItemNotFound(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	// No persisted day at all.
	if ledger.RemoveMealItem(Lunch, "missing") {
		t.Fatal("expected remove to fail without a persisted day")
	}

	ledger.AddMealItem(ctx, Lunch, CreateMealItemData{ProductID: "3", Amount: 100})
	before := ledger.CurrentDayMeals()

	if ledger.RemoveMealItem(Lunch, "missing") {
		t.Fatal("expected remove to fail for unknown item id")
	}

	after := ledger.CurrentDayMeals()
	if after.TotalCalories != before.TotalCalories || len(after.Lunch.Items) != len(before.Lunch.Items) {
		t.Error("failed remove must leave totals unchanged")
	}
}

func TestUpdateMealItemAmount(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	ledger.AddMealItem(ctx, Dinner, CreateMealItemData{ProductID: "2", Amount: 100})
	ledger.AddMealItem(ctx, Dinner, CreateMealItemData{ProductID: "3", Amount: 100})

	day := ledger.CurrentDayMeals()
	item := day.Dinner.Items[0]

	if !ledger.UpdateMealItemAmount(ctx, Dinner, item.ID, 250) {
		t.Fatalf("update failed: %s", ledger.Err())
	}

	day = ledger.CurrentDayMeals()
	updated := day.Dinner.Items[0]
	if updated.ID != item.ID {
		t.Error("item identity must be preserved")
	}
	if updated.Amount != 250 {
		t.Errorf("expected amount 250, got %v", updated.Amount)
	}
	// 130 kcal * 2.5 = 325
	if updated.Calories != 325 {
		t.Errorf("expected 325 kcal, got %d", updated.Calories)
	}
	assertDayInvariant(t, day)
}

func TestUpdateMealItemAmountIdempotent(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	ledger.AddMealItem(ctx, Snack, CreateMealItemData{ProductID: "4", Amount: 70})
	before := ledger.CurrentDayMeals()
	itemID := before.Snack.Items[0].ID

	if !ledger.UpdateMealItemAmount(ctx, Snack, itemID, 70) {
		t.Fatal("expected idempotent update to succeed")
	}

	after := ledger.CurrentDayMeals()
	if after.TotalCalories != before.TotalCalories || !profilesEqual(after.TotalNutrients, before.TotalNutrients) {
		t.Error("updating an amount to its current value must leave totals unchanged")
	}
}

func TestUpdateMealItemAmountDeletedProduct(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()

	ledger.AddMealItem(ctx, Breakfast, CreateMealItemData{ProductID: "5", Amount: 50})
	before := ledger.CurrentDayMeals()
	itemID := before.Breakfast.Items[0].ID

	if !store.Remove(ctx, "5") {
		t.Fatal("expected product delete to succeed")
	}

	if ledger.UpdateMealItemAmount(ctx, Breakfast, itemID, 100) {
		t.Fatal("expected update to fail after product deletion")
	}

	after := ledger.CurrentDayMeals()
	if after.Breakfast.Items[0].Amount != 50 || after.TotalCalories != before.TotalCalories {
		t.Error("failed update must leave the item unchanged")
	}
}

func TestUpdateMealItemAmountRejectsNonPositive(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	ledger.AddMealItem(ctx, Lunch, CreateMealItemData{ProductID: "1", Amount: 100})
	before := ledger.CurrentDayMeals()
	itemID := before.Lunch.Items[0].ID

	if ledger.UpdateMealItemAmount(ctx, Lunch, itemID, 0) {
		t.Fatal("expected update with amount=0 to fail")
	}
	after := ledger.CurrentDayMeals()
	if after.Lunch.Items[0].Amount != 100 {
		t.Error("rejected update must leave the amount unchanged")
	}
}

func TestUpdateMealItemNotFoundResetsError(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	// A rejected add records a validation message that would otherwise
	// persist until cleared.
	if ledger.AddMealItem(ctx, Breakfast, CreateMealItemData{ProductID: "1", Amount: -5}) {
		t.Fatal("expected add with negative amount to fail")
	}
	if ledger.Err() != MsgInvalidAmount {
		t.Fatalf("expected %q recorded, got %q", MsgInvalidAmount, ledger.Err())
	}

	// A not-found resize is not an error: the stale message must not
	// leak into its outcome.
	if ledger.UpdateMealItemAmount(ctx, Breakfast, "no-such-item", 50) {
		t.Fatal("expected resize of unknown item to fail")
	}
	if ledger.Err() != "" {
		t.Errorf("not-found must leave the error channel empty, got %q", ledger.Err())
	}
}

func TestCurrentDayMealsIsReadOnlyView(t *testing.T) {
	ledger, _ := newTestLedger(t)

	day := ledger.CurrentDayMeals()
	if day.TotalCalories != 0 || len(day.Breakfast.Items) != 0 {
		t.Fatal("expected an empty view for an unwritten day")
	}
	if ledger.DayCount() != 0 {
		t.Error("reading must not persist the day")
	}

	// Mutating the returned view must not leak into the ledger.
	ledger.AddMealItem(context.Background(), Breakfast, CreateMealItemData{ProductID: "1", Amount: 100})
	view := ledger.CurrentDayMeals()
	view.Breakfast.Items[0].Calories = 9999

	if ledger.CurrentDayMeals().Breakfast.Items[0].Calories == 9999 {
		t.Error("view aliases ledger state")
	}
}

func TestSelectedDateCursor(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	day1 := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 22, 0, 0, 0, time.UTC)

	ledger.SetSelectedDate(day1)
	ledger.AddMealItem(ctx, Breakfast, CreateMealItemData{ProductID: "1", Amount: 100})

	ledger.SetSelectedDate(day2)
	if got := ledger.CurrentDayMeals().TotalCalories; got != 0 {
		t.Errorf("expected day2 to be empty, got %d kcal", got)
	}

	ledger.SetSelectedDate(day1)
	if got := ledger.CurrentDayMeals().TotalCalories; got != 165 {
		t.Errorf("expected day1 totals back, got %d kcal", got)
	}

	// Same calendar day at a different time of day maps to the same key,
	// while the stored date keeps the value used at creation.
	ledger.SetSelectedDate(time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC))
	day := ledger.CurrentDayMeals()
	if day.TotalCalories != 165 {
		t.Errorf("time of day must be discarded for the key, got %d kcal", day.TotalCalories)
	}
	if !day.Date.Equal(day1) {
		t.Errorf("stored date must keep its creation value, got %v", day.Date)
	}
}

func TestMealsByDateRange(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	// Three consecutive empty days: all-zero views, no persisted side effect.
	result := ledger.MealsByDateRange(start, start.AddDate(0, 0, 2))
	if len(result) != 3 {
		t.Fatalf("expected 3 days, got %d", len(result))
	}
	for _, day := range result {
		if day.TotalCalories != 0 {
			t.Errorf("expected zero totals, got %d", day.TotalCalories)
		}
	}
	if ledger.DayCount() != 0 {
		t.Error("range query must not persist days")
	}

	// Populate the middle day and query again.
	ledger.SetSelectedDate(start.AddDate(0, 0, 1))
	ledger.AddMealItem(ctx, Lunch, CreateMealItemData{ProductID: "2", Amount: 100})

	result = ledger.MealsByDateRange(start, start.AddDate(0, 0, 2))
	if result[0].TotalCalories != 0 || result[2].TotalCalories != 0 {
		t.Error("expected surrounding days to stay empty")
	}
	if result[1].TotalCalories != 130 {
		t.Errorf("expected 130 kcal on the middle day, got %d", result[1].TotalCalories)
	}

	// Inverted range yields nothing.
	if got := ledger.MealsByDateRange(start.AddDate(0, 0, 2), start); len(got) != 0 {
		t.Errorf("expected empty result for inverted range, got %d", len(got))
	}
}

func TestAccumulatedRoundingDriftIsKept(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	// 3 x 33 g of chicken breast: per-item rounding gives 54 kcal each
	// (165*0.33=54.45 -> 54), so the meal total is 162, not
	// round(165*0.99)=163. The drift is specified behavior.
	for range 3 {
		ledger.AddMealItem(ctx, Breakfast, CreateMealItemData{ProductID: "1", Amount: 33})
	}

	day := ledger.CurrentDayMeals()
	if day.Breakfast.TotalCalories != 162 {
		t.Errorf("expected per-item rounding to accumulate to 162, got %d", day.Breakfast.TotalCalories)
	}
	assertDayInvariant(t, day)
}

func TestParseMealType(t *testing.T) {
	for _, valid := range []string{"breakfast", "lunch", "dinner", "snack"} {
		if _, err := ParseMealType(valid); err != nil {
			t.Errorf("expected %q to parse, got %v", valid, err)
		}
	}
	if _, err := ParseMealType("brunch"); err == nil {
		t.Error("expected an error for a type outside the enum")
	}
}
