package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marmos91/upcalld/internal/logger"
	"github.com/marmos91/upcalld/pkg/fridge"
)

// NewRouter creates the chi router for the management surface.
//
// Routes:
//   - GET /health       - Liveness probe
//   - GET /health/ready - Readiness probe (fridge accepting work)
//   - GET /health/pool  - Pool counters
//   - GET /metrics      - Prometheus metrics
func NewRouter(fr *fridge.Fridge, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/health", func(r chi.Router) {
		r.Get("/", liveness)
		r.Get("/ready", readiness(fr))
		r.Get("/pool", poolStats(fr))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	return r
}

func liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func readiness(fr *fridge.Fridge) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if fr == nil || !fr.Running() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func poolStats(fr *fridge.Fridge) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if fr == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "no pool"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{
			"pending":   fr.Pending(),
			"completed": fr.Completed(),
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs requests using the internal logger: start at DEBUG,
// completion at DEBUG with status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.Debug("API request",
			"method", r.Method,
			"path", r.URL.Path,
			logger.KeyStatus, ww.Status(),
			logger.KeyDurationMs, logger.Duration(start))
	})
}
