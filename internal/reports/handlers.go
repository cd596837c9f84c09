package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Handler содержит HTTP обработчики для отчётов
type Handler struct {
	service *Service
}

// NewHandler создаёт новый handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleRange обрабатывает GET /reports/range?from=&to=&format=
func (h *Handler) HandleRange(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_range", "from is required as YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_range", "to is required as YYYY-MM-DD")
		return
	}
	format, ok := ParseFormat(r.URL.Query().Get("format"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_format", "Format must be pdf or csv")
		return
	}

	report, err := h.service.BuildRange(from, to)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRange):
			writeError(w, http.StatusBadRequest, "invalid_range", "from must not be after to")
		case errors.Is(err, ErrRangeTooLong):
			writeError(w, http.StatusBadRequest, "range_too_long", "Date range is too long for a report")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to build report")
		}
		return
	}

	data, err := Generate(report, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to generate report")
		return
	}

	filename := fmt.Sprintf("nutrition-report-%s-%s.%s", report.From, report.To, format)
	switch format {
	case FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
	default:
		w.Header().Set("Content-Type", "application/pdf")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
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
