package handler

import (
	"mime"
	"net/http"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"
	"github.com/boddenberg/northwind-bfa-go/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Dashboard Handlers
// ============================================================

// dashboardHandler always answers 200; load failures travel in loadError.
func dashboardHandler(svc *service.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.Load(ctx))
	}
}

// submitTransferHandler accepts the transfer form as JSON or as a regular
// form post.
func submitTransferHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transfers")
		defer span.End()

		form, err := parseTransferForm(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		span.SetAttributes(
			attribute.String("transfer.from", form.FromAccountNumber),
			attribute.String("transfer.to", form.ToAccountNumber),
		)

		result, err := svc.SubmitTransfer(ctx, form)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func parseTransferForm(r *http.Request) (domain.TransferForm, error) {
	var form domain.TransferForm

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := decodeJSON(r, &form)
		return form, err
	}

	if err := r.ParseForm(); err != nil {
		return form, &domain.ErrValidation{Field: "body", Message: "invalid form body"}
	}
	form = domain.TransferForm{
		FromAccountNumber: r.PostForm.Get("fromAccountNumber"),
		FromRoutingNumber: r.PostForm.Get("fromRoutingNumber"),
		FromAccountHolder: r.PostForm.Get("fromAccountHolder"),
		ToAccountNumber:   r.PostForm.Get("toAccountNumber"),
		ToRoutingNumber:   r.PostForm.Get("toRoutingNumber"),
		ToAccountHolder:   r.PostForm.Get("toAccountHolder"),
		Amount:            r.PostForm.Get("amount"),
		Description:       r.PostForm.Get("description"),
	}
	return form, nil
}

func mockTransactionsHandler(svc *service.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.RecentTransactions())
	}
}
