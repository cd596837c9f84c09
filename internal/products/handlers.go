package products

import (
	"encoding/json"
	"net/http"
)

// Handler содержит HTTP обработчики для каталога продуктов
type Handler struct {
	store *Store
}

// NewHandler создаёт новый handler
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// HandleList обрабатывает GET /products
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !h.store.Fetch(r.Context()) {
		writeError(w, http.StatusInternalServerError, "internal_error", h.store.Err())
		return
	}
	writeJSON(w, http.StatusOK, h.store.Products())
}

// HandleGet обрабатывает GET /products/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	product, err := h.store.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", h.store.Err())
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "product_not_found", "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// HandleCreate обрабатывает POST /products
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var data CreateProductData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}
	if err := data.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if !h.store.Add(r.Context(), data) {
		writeError(w, http.StatusInternalServerError, "internal_error", h.store.Err())
		return
	}

	// The freshly created product is the last cache entry.
	list := h.store.Products()
	writeJSON(w, http.StatusCreated, list[len(list)-1])
}

// HandleUpdate обрабатывает PUT /products/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var data UpdateProductData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}
	if err := data.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	id := r.PathValue("id")
	if !h.store.Update(r.Context(), id, data) {
		if h.store.Err() != "" {
			writeError(w, http.StatusInternalServerError, "internal_error", h.store.Err())
			return
		}
		writeError(w, http.StatusNotFound, "product_not_found", "Product not found")
		return
	}

	// Update has already refreshed the cached record.
	writeJSON(w, http.StatusOK, h.store.cached(id))
}

// HandleDelete обрабатывает DELETE /products/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !h.store.Remove(r.Context(), r.PathValue("id")) {
		if h.store.Err() != "" {
			writeError(w, http.StatusInternalServerError, "internal_error", h.store.Err())
			return
		}
		writeError(w, http.StatusNotFound, "product_not_found", "Product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSearch обрабатывает GET /products/search?q=&sort_by=&order=
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if !h.store.Initialize(r.Context()) {
		writeError(w, http.StatusInternalServerError, "internal_error", h.store.Err())
		return
	}

	q := Query{
		Search: r.URL.Query().Get("q"),
		SortBy: r.URL.Query().Get("sort_by"),
		Order:  r.URL.Query().Get("order"),
	}
	writeJSON(w, http.StatusOK, Filter(h.store.Products(), q))
}

// HandleStats обрабатывает GET /products/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if !h.store.Initialize(r.Context()) {
		writeError(w, http.StatusInternalServerError, "internal_error", h.store.Err())
		return
	}
	writeJSON(w, http.StatusOK, Stats(h.store.Products()))
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
