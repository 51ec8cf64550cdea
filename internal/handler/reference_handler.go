package handler

import (
	"net/http"

	"github.com/boddenberg/northwind-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Reference data & Dev Tools
// ============================================================

func bankInfoHandler(svc *service.BankingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/bank")
		defer span.End()

		bank, err := svc.GetBank(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, bank)
	}
}

func domainsHandler(svc *service.BankingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/domains")
		defer span.End()

		domains, err := svc.GetDomains(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domains)
	}
}

func upstreamHealthHandler(svc *service.BankingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/upstream/health")
		defer span.End()

		health, err := svc.UpstreamHealth(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, health)
	}
}

// resetHandler restores Northwind's demo data. Dev only.
func resetHandler(svc *service.BankingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/dev/reset")
		defer span.End()

		out, err := svc.Reset(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		logger.Warn("dev: northwind data reset", zap.String("remote_addr", r.RemoteAddr))
		writeJSON(w, http.StatusOK, out)
	}
}
