package meals

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"nutrition-diary-api/internal/nutrients"
	"nutrition-diary-api/internal/products"
)

// User-facing messages recorded in the error side channel.
const (
	MsgProductNotFound = "Продукт не найден"
	MsgInvalidAmount   = "Количество должно быть положительным"
	MsgUnknownMealType = "Неизвестный прием пищи"
	MsgAddFailed       = "Ошибка при добавлении продукта в прием пищи"
	MsgUpdateFailed    = "Ошибка при обновлении приема пищи"
)

// ProductResolver resolves product ids for the ledger. (nil, nil) means
// the product does not exist; a non-nil error is an infrastructure
// failure. *products.Store satisfies it with local-read-through.
type ProductResolver interface {
	GetByID(ctx context.Context, id string) (*products.Product, error)
}

// Ledger is the date-keyed collection of daily meal records plus the
// selected-date cursor. Days are keyed by UTC calendar day; reading a
// day that was never written yields a fresh empty view without
// persisting anything, while AddMealItem materializes the day. A day,
// once persisted, never disappears: removing its last item leaves an
// empty record behind.
//
// Like the product store, the ledger keeps process-wide loading/error
// flags as a side channel for its boolean operations.
type Ledger struct {
	resolver ProductResolver

	mu           sync.Mutex
	days         map[string]*DailyMeals
	selectedDate time.Time
	loading      bool
	lastError    string
}

// NewLedger creates an empty ledger with the cursor on the current day.
func NewLedger(resolver ProductResolver) *Ledger {
	return &Ledger{
		resolver:     resolver,
		days:         make(map[string]*DailyMeals),
		selectedDate: time.Now(),
	}
}

// dateKey discards the time-of-day component: all operations addressing
// a date are keyed by its UTC calendar day.
func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func newEmptyMeal(mealType MealType, date time.Time) Meal {
	return Meal{
		ID:    uuid.NewString(),
		Type:  mealType,
		Date:  date,
		Items: []MealItem{},
	}
}

func newEmptyDay(date time.Time) *DailyMeals {
	return &DailyMeals{
		Date:      date,
		Breakfast: newEmptyMeal(Breakfast, date),
		Lunch:     newEmptyMeal(Lunch, date),
		Dinner:    newEmptyMeal(Dinner, date),
		Snack:     newEmptyMeal(Snack, date),
	}
}

// SetSelectedDate moves the cursor. The ledger itself is untouched.
func (l *Ledger) SetSelectedDate(date time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selectedDate = date
}

// SelectedDate returns the cursor date.
func (l *Ledger) SelectedDate() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selectedDate
}

// CurrentDayMeals returns a read-only view of the cursor day.
func (l *Ledger) CurrentDayMeals() DailyMeals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dayViewLocked(l.selectedDate)
}

// DayMeals returns a read-only view of the given day. A day that was
// never written yields an empty record; the ledger is not mutated.
func (l *Ledger) DayMeals(date time.Time) DailyMeals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dayViewLocked(date)
}

// dayViewLocked is the pure accessor: it never inserts into the map and
// deep-copies item slices so callers cannot reach ledger internals.
func (l *Ledger) dayViewLocked(date time.Time) DailyMeals {
	if day, ok := l.days[dateKey(date)]; ok {
		return copyDay(day)
	}
	return copyDay(newEmptyDay(date))
}

// ensureDayLocked is the mutating accessor: only write paths use it.
func (l *Ledger) ensureDayLocked(date time.Time) *DailyMeals {
	key := dateKey(date)
	if day, ok := l.days[key]; ok {
		return day
	}
	day := newEmptyDay(date)
	l.days[key] = day
	return day
}

func copyDay(day *DailyMeals) DailyMeals {
	out := *day
	out.Breakfast = copyMeal(day.Breakfast)
	out.Lunch = copyMeal(day.Lunch)
	out.Dinner = copyMeal(day.Dinner)
	out.Snack = copyMeal(day.Snack)
	return out
}

func copyMeal(meal Meal) Meal {
	items := make([]MealItem, len(meal.Items))
	copy(items, meal.Items)
	meal.Items = items
	return meal
}

// AddMealItem adds a serving of a product to the given meal of the
// cursor day, materializing the day if needed, and recomputes meal and
// day totals. Returns false (with a recorded error message) when the
// product cannot be resolved, the amount is not positive or the meal
// type is outside the enum.
func (l *Ledger) AddMealItem(ctx context.Context, mealType MealType, data CreateMealItemData) bool {
	l.begin()

	if _, err := ParseMealType(string(mealType)); err != nil {
		l.finish(MsgUnknownMealType)
		return false
	}

	product, err := l.resolver.GetByID(ctx, data.ProductID)
	if err != nil {
		log.Printf("meals: resolving product %s failed: %v", data.ProductID, err)
		l.finish(MsgAddFailed)
		return false
	}
	if product == nil {
		l.finish(MsgProductNotFound)
		return false
	}

	if data.Amount <= 0 {
		l.finish(MsgInvalidAmount)
		return false
	}

	calories, scaled := nutrients.Scale(product.Nutrients, product.Calories, data.Amount)

	item := MealItem{
		ID:          uuid.NewString(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Amount:      data.Amount,
		Calories:    calories,
		Nutrients:   scaled,
	}

	l.mu.Lock()
	day := l.ensureDayLocked(l.selectedDate)
	meal, _ := day.Meal(mealType)
	meal.Items = append(meal.Items, item)
	recalcMealTotals(meal)
	recalcDayTotals(day)
	l.mu.Unlock()

	l.finish("")
	return true
}

// RemoveMealItem removes an item from the given meal of the cursor day.
// Returns false when the day was never written or the item id is not
// present; totals are recomputed only on success.
func (l *Ledger) RemoveMealItem(mealType MealType, itemID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	day, ok := l.days[dateKey(l.selectedDate)]
	if !ok {
		return false
	}
	meal, ok := day.Meal(mealType)
	if !ok {
		return false
	}

	for i, item := range meal.Items {
		if item.ID == itemID {
			meal.Items = append(meal.Items[:i], meal.Items[i+1:]...)
			recalcMealTotals(meal)
			recalcDayTotals(day)
			return true
		}
	}
	return false
}

// UpdateMealItemAmount rescales an existing item to a new serving size,
// preserving its identity and position, then recomputes totals. The
// backing product is re-resolved; if it was deleted in the meantime the
// operation fails and the item is left unchanged. A plain not-found
// failure leaves no message in Err, like the store's absent paths.
func (l *Ledger) UpdateMealItemAmount(ctx context.Context, mealType MealType, itemID string, newAmount float64) bool {
	l.begin()

	l.mu.Lock()
	day, ok := l.days[dateKey(l.selectedDate)]
	if !ok {
		l.mu.Unlock()
		l.finish("")
		return false
	}
	meal, ok := day.Meal(mealType)
	if !ok {
		l.mu.Unlock()
		l.finish("")
		return false
	}

	idx := -1
	for i, item := range meal.Items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		l.mu.Unlock()
		l.finish("")
		return false
	}
	productID := meal.Items[idx].ProductID
	l.mu.Unlock()

	if newAmount <= 0 {
		l.finish(MsgInvalidAmount)
		return false
	}

	product, err := l.resolver.GetByID(ctx, productID)
	if err != nil {
		log.Printf("meals: resolving product %s failed: %v", productID, err)
		l.finish(MsgUpdateFailed)
		return false
	}
	if product == nil {
		l.finish(MsgProductNotFound)
		return false
	}

	calories, scaled := nutrients.Scale(product.Nutrients, product.Calories, newAmount)

	l.mu.Lock()
	// Re-find the item: the single-caller model makes this a formality,
	// but ids stay authoritative over indexes across the resolver call.
	for i := range meal.Items {
		if meal.Items[i].ID == itemID {
			meal.Items[i].Amount = newAmount
			meal.Items[i].Calories = calories
			meal.Items[i].Nutrients = scaled
			recalcMealTotals(meal)
			recalcDayTotals(day)
			l.mu.Unlock()
			l.finish("")
			return true
		}
	}
	l.mu.Unlock()
	l.finish("")
	return false
}

// MealsByDateRange returns one record per calendar day from start to
// end inclusive, in order. Days that were never written come back as
// empty views; the ledger is not mutated.
func (l *Ledger) MealsByDateRange(start, end time.Time) []DailyMeals {
	l.mu.Lock()
	defer l.mu.Unlock()

	var result []DailyMeals
	endKey := dateKey(end)
	// ISO date keys compare correctly as strings, so an inverted range
	// naturally yields an empty result.
	for current := start; dateKey(current) <= endKey; current = current.AddDate(0, 0, 1) {
		result = append(result, l.dayViewLocked(current))
	}
	return result
}

// DayCount returns the number of persisted days.
func (l *Ledger) DayCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.days)
}

// Loading reports whether an operation is in flight.
func (l *Ledger) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the message recorded by the last failed operation.
func (l *Ledger) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastError
}

// ClearError resets the error message.
func (l *Ledger) ClearError() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastError = ""
}

func (l *Ledger) begin() {
	l.mu.Lock()
	l.loading = true
	l.lastError = ""
	l.mu.Unlock()
}

func (l *Ledger) finish(errMsg string) {
	l.mu.Lock()
	l.loading = false
	l.lastError = errMsg
	l.mu.Unlock()
}

func recalcMealTotals(meal *Meal) {
	total := 0
	profiles := make([]nutrients.Profile, len(meal.Items))
	for i, item := range meal.Items {
		total += item.Calories
		profiles[i] = item.Nutrients
	}
	meal.TotalCalories = total
	meal.TotalNutrients = nutrients.Sum(profiles)
}

func recalcDayTotals(day *DailyMeals) {
	all := []Meal{day.Breakfast, day.Lunch, day.Dinner, day.Snack}

	total := 0
	profiles := make([]nutrients.Profile, len(all))
	for i, meal := range all {
		total += meal.TotalCalories
		profiles[i] = meal.TotalNutrients
	}
	day.TotalCalories = total
	day.TotalNutrients = nutrients.Sum(profiles)
}
