package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"
	"github.com/boddenberg/northwind-bfa-go/internal/infra/observability"
	"github.com/boddenberg/northwind-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// RouterOption customizes NewRouter.
type RouterOption func(*routerConfig)

type routerConfig struct {
	corsOrigins []string
}

// WithCORS allows browser requests from the given origins.
func WithCORS(origins []string) RouterOption {
	return func(c *routerConfig) { c.corsOrigins = origins }
}

// NewRouter creates the HTTP router with all routes and middleware.
// A nil service leaves only the operational endpoints meaningful.
func NewRouter(bankSvc *service.BankingService, dashSvc *service.DashboardService, metrics *observability.Metrics, logger *zap.Logger, opts ...RouterOption) http.Handler {
	var cfg routerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(middleware.RequestSize(maxBodyBytes))
	if len(cfg.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(bankSvc))
	r.Get("/readyz", readyzHandler(bankSvc))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Dashboard (single page)
		// =============================================
		r.Get("/dashboard", dashboardHandler(dashSvc))
		r.Post("/transfers", submitTransferHandler(dashSvc, logger))
		r.Get("/mock/transactions", mockTransactionsHandler(dashSvc))

		// =============================================
		// Accounts
		// =============================================
		r.Get("/accounts", listAccountsHandler(bankSvc, logger))
		r.Post("/accounts/validate", validateAccountHandler(bankSvc, logger))
		r.Get("/accounts/{accountNumber}/balance", getBalanceHandler(bankSvc, logger))

		// =============================================
		// Transfers
		// =============================================
		r.Get("/transfers/history", listTransfersHandler(bankSvc, logger))
		r.Post("/transfers/validate", validateTransferHandler(bankSvc, logger))
		r.Post("/transfers/batch", batchTransfersHandler(bankSvc, logger))
		r.Get("/transfers/{transferId}", getTransferHandler(bankSvc, logger))
		r.Post("/transfers/{transferId}/cancel", cancelTransferHandler(bankSvc, logger))
		r.Post("/transfers/{transferId}/reverse", reverseTransferHandler(bankSvc, logger))

		// =============================================
		// Reference data & upstream
		// =============================================
		r.Get("/bank", bankInfoHandler(bankSvc, logger))
		r.Get("/domains", domainsHandler(bankSvc, logger))
		r.Get("/upstream/health", upstreamHealthHandler(bankSvc, logger))
		r.Get("/metrics/upstream", upstreamMetricsHandler(metrics, logger))

		// =============================================
		// Dev tools
		// =============================================
		r.Post("/dev/reset", resetHandler(bankSvc, logger))
	})

	return r
}

// ============================================================
// Operational
// ============================================================

func healthzHandler(bankSvc *service.BankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "bfa-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}
		if bankSvc != nil {
			services = append(services, bankSvc.CheckUpstream(r.Context()))
		}

		// Upstream problems degrade the report but never fail liveness.
		overallStatus := "healthy"
		for _, s := range services {
			if s.Status != "healthy" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

// readyzHandler reports not ready while Northwind cannot be reached.
func readyzHandler(bankSvc *service.BankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if bankSvc != nil {
			if h := bankSvc.CheckUpstream(r.Context()); h.Status == "unhealthy" {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "detail": h.Detail})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func upstreamMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := metrics.UpstreamSnapshot()
		if err != nil {
			logger.Error("failed to gather metrics", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to gather metrics")
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	}
}
