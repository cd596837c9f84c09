package httpserver

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"nutrition-diary-api/internal/config"
	"nutrition-diary-api/internal/meals"
	"nutrition-diary-api/internal/products"
	"nutrition-diary-api/internal/reports"
)

// Server представляет HTTP сервер
type Server struct {
	config *config.Config
	mux    *http.ServeMux
	store  *products.Store
	ledger *meals.Ledger
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) *Server {
	catalog := products.New(cfg)
	store := products.NewStore(catalog)

	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
		store:  store,
		ledger: meals.NewLedger(store),
	}

	s.routes()
	return s
}

// routes регистрирует маршруты
func (s *Server) routes() {
	// Health check
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	// Products API
	productsHandler := products.NewHandler(s.store)

	// GET /products - list products
	s.mux.HandleFunc("GET /products", productsHandler.HandleList)

	// GET /products/search - search and sort
	s.mux.HandleFunc("GET /products/search", productsHandler.HandleSearch)

	// GET /products/stats - catalog aggregates
	s.mux.HandleFunc("GET /products/stats", productsHandler.HandleStats)

	// GET /products/{id} - get product
	s.mux.HandleFunc("GET /products/{id}", productsHandler.HandleGet)

	// POST /products - create product
	s.mux.HandleFunc("POST /products", productsHandler.HandleCreate)

	// PUT /products/{id} - update product
	s.mux.HandleFunc("PUT /products/{id}", productsHandler.HandleUpdate)

	// DELETE /products/{id} - delete product
	s.mux.HandleFunc("DELETE /products/{id}", productsHandler.HandleDelete)

	// Meals API
	mealsHandler := meals.NewHandler(s.ledger)

	// GET /meals/types - meal slots with display labels
	s.mux.HandleFunc("GET /meals/types", mealsHandler.HandleGetTypes)

	// GET /meals/daily - meals for the selected or given day
	s.mux.HandleFunc("GET /meals/daily", mealsHandler.HandleGetDaily)

	// GET /meals/range - meals for an inclusive date range
	s.mux.HandleFunc("GET /meals/range", mealsHandler.HandleGetRange)

	// GET /meals/selected-date - cursor date
	s.mux.HandleFunc("GET /meals/selected-date", mealsHandler.HandleGetSelectedDate)

	// PUT /meals/selected-date - move cursor
	s.mux.HandleFunc("PUT /meals/selected-date", mealsHandler.HandleSetSelectedDate)

	// POST /meals/{type}/items - add product to a meal
	s.mux.HandleFunc("POST /meals/{type}/items", mealsHandler.HandleAddItem)

	// PATCH /meals/{type}/items/{id} - change serving size
	s.mux.HandleFunc("PATCH /meals/{type}/items/{id}", mealsHandler.HandleUpdateItem)

	// DELETE /meals/{type}/items/{id} - remove item
	s.mux.HandleFunc("DELETE /meals/{type}/items/{id}", mealsHandler.HandleRemoveItem)

	// Reports API
	reportsHandler := reports.NewHandler(reports.NewService(s.ledger, s.config.ReportsMaxRangeDays))

	// GET /reports/range - PDF report for a date range
	s.mux.HandleFunc("GET /reports/range", reportsHandler.HandleRange)
}

// handleHealthz возвращает статус сервера
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Handler собирает полную цепочку middleware: CORS → Rate Limit → Logging → Router
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	handler = loggingMiddleware(handler)
	handler = RateLimitMiddleware(s.config, handler)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: s.config.CORSAllowCredentials,
		MaxAge:           300,
	})
	return c.Handler(handler)
}

// loggingMiddleware логирует каждый запрос с методом, путём, статусом и длительностью
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	log.Printf("Сервер запущен на http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)
	log.Printf("Products API: http://localhost%s/products\n", addr)

	return http.ListenAndServe(addr, s.Handler())
}
