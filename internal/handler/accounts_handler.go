package handler

import (
	"net/http"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"
	"github.com/boddenberg/northwind-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Accounts Handlers
// ============================================================

func listAccountsHandler(svc *service.BankingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts")
		defer span.End()

		limit, err := queryInt(r, "limit")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		offset, err := queryInt(r, "offset")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		accounts, err := svc.ListAccounts(ctx, &domain.AccountFilter{
			Limit:  limit,
			Offset: offset,
			Type:   queryString(r, "type"),
			Status: queryString(r, "status"),
		})
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, accounts)
	}
}

func validateAccountHandler(svc *service.BankingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/accounts/validate")
		defer span.End()

		var req domain.AccountValidationRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		resp, err := svc.ValidateAccount(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getBalanceHandler(svc *service.BankingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts/{accountNumber}/balance")
		defer span.End()

		accountNumber := chi.URLParam(r, "accountNumber")
		span.SetAttributes(attribute.String("account.number", accountNumber))

		balance, err := svc.GetBalance(ctx, accountNumber)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, balance)
	}
}
