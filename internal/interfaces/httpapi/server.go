package httpapi

import (
	"net/http"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/id"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	// Metrics serves /metrics when non-nil.
	Metrics         http.Handler
	MetricsRecorder httpRecorder
	IDGenerator     id.Generator
}

func NewRouter(handler *Handler, cfg RouterConfig, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	gen := cfg.IDGenerator
	if gen == nil {
		gen = id.NewUUIDGenerator()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled, cfg.Metrics)
	registerCatalogRoutes(mux, handler)
	registerTeamRoutes(mux, handler)
	registerTacticsRoutes(mux, handler)

	return RequestTracing(RequestID(gen, RequestLogging(logger, cfg.MetricsRecorder, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux)))))
}

// recoverPanic keeps the request value intact so the mux can record the matched pattern on it.
func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "http_path", r.URL.Path)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
