package meals

import (
	"encoding/json"
	"net/http"
	"time"
)

// Handler содержит HTTP обработчики для дневника приемов пищи
type Handler struct {
	ledger *Ledger
}

// NewHandler создаёт новый handler
func NewHandler(ledger *Ledger) *Handler {
	return &Handler{ledger: ledger}
}

// parseDate accepts YYYY-MM-DD or RFC3339.
func parseDate(raw string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// moveCursor applies an optional date query param before an operation.
// Single-caller execution (one logical user per process) makes the
// set-then-operate sequence safe.
func (h *Handler) moveCursor(w http.ResponseWriter, r *http.Request) bool {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return true
	}
	date, ok := parseDate(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_date", "Invalid date format, expected YYYY-MM-DD")
		return false
	}
	h.ledger.SetSelectedDate(date)
	return true
}

func (h *Handler) mealType(w http.ResponseWriter, r *http.Request) (MealType, bool) {
	mealType, err := ParseMealType(r.PathValue("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_meal_type", "Meal type must be breakfast, lunch, dinner or snack")
		return "", false
	}
	return mealType, true
}

// HandleGetTypes обрабатывает GET /meals/types
func (h *Handler) HandleGetTypes(w http.ResponseWriter, r *http.Request) {
	type slot struct {
		Type  MealType `json:"type"`
		Label string   `json:"label"`
	}
	slots := make([]slot, len(MealTypes))
	for i, t := range MealTypes {
		slots[i] = slot{Type: t, Label: Labels[t]}
	}
	writeJSON(w, http.StatusOK, slots)
}

// HandleGetDaily обрабатывает GET /meals/daily?date=
func (h *Handler) HandleGetDaily(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		writeJSON(w, http.StatusOK, h.ledger.CurrentDayMeals())
		return
	}

	date, ok := parseDate(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_date", "Invalid date format, expected YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, h.ledger.DayMeals(date))
}

// HandleGetRange обрабатывает GET /meals/range?from=&to=
func (h *Handler) HandleGetRange(w http.ResponseWriter, r *http.Request) {
	from, okFrom := parseDate(r.URL.Query().Get("from"))
	to, okTo := parseDate(r.URL.Query().Get("to"))
	if !okFrom || !okTo {
		writeError(w, http.StatusBadRequest, "invalid_range", "Both from and to are required as YYYY-MM-DD")
		return
	}

	days := h.ledger.MealsByDateRange(from, to)
	if days == nil {
		days = []DailyMeals{}
	}
	writeJSON(w, http.StatusOK, days)
}

// HandleGetSelectedDate обрабатывает GET /meals/selected-date
func (h *Handler) HandleGetSelectedDate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"selectedDate": h.ledger.SelectedDate().UTC().Format("2006-01-02"),
	})
}

// HandleSetSelectedDate обрабатывает PUT /meals/selected-date
func (h *Handler) HandleSetSelectedDate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_date", "Invalid date format, expected YYYY-MM-DD")
		return
	}

	h.ledger.SetSelectedDate(date)
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddItem обрабатывает POST /meals/{type}/items?date=
func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	mealType, ok := h.mealType(w, r)
	if !ok {
		return
	}
	if !h.moveCursor(w, r) {
		return
	}

	var data CreateMealItemData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	if !h.ledger.AddMealItem(r.Context(), mealType, data) {
		h.writeLedgerFailure(w)
		return
	}
	writeJSON(w, http.StatusCreated, h.ledger.CurrentDayMeals())
}

// HandleUpdateItem обрабатывает PATCH /meals/{type}/items/{id}?date=
func (h *Handler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	mealType, ok := h.mealType(w, r)
	if !ok {
		return
	}
	if !h.moveCursor(w, r) {
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	if !h.ledger.UpdateMealItemAmount(r.Context(), mealType, r.PathValue("id"), req.Amount) {
		h.writeLedgerFailure(w)
		return
	}
	writeJSON(w, http.StatusOK, h.ledger.CurrentDayMeals())
}

// HandleRemoveItem обрабатывает DELETE /meals/{type}/items/{id}?date=
func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	mealType, ok := h.mealType(w, r)
	if !ok {
		return
	}
	if !h.moveCursor(w, r) {
		return
	}

	if !h.ledger.RemoveMealItem(mealType, r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "item_not_found", "Meal item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeLedgerFailure maps the ledger's recorded message to a status.
// "Not found" style failures have an empty message and answer 404.
func (h *Handler) writeLedgerFailure(w http.ResponseWriter) {
	msg := h.ledger.Err()
	switch msg {
	case "":
		writeError(w, http.StatusNotFound, "item_not_found", "Meal item not found")
	case MsgProductNotFound:
		writeError(w, http.StatusNotFound, "product_not_found", msg)
	case MsgInvalidAmount:
		writeError(w, http.StatusBadRequest, "invalid_amount", msg)
	case MsgUnknownMealType:
		writeError(w, http.StatusBadRequest, "invalid_meal_type", msg)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", msg)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
