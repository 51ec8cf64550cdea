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
// Transfers Handlers
// ============================================================

func listTransfersHandler(svc *service.BankingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/transfers/history")
		defer span.End()

		page, err := queryInt(r, "page")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		perPage, err := queryInt(r, "per_page")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		transfers, err := svc.ListTransfers(ctx, &domain.TransferFilter{
			Page:         page,
			PerPage:      perPage,
			Status:       queryString(r, "status"),
			Direction:    queryString(r, "direction"),
			DateFrom:     queryString(r, "date_from"),
			DateTo:       queryString(r, "date_to"),
			TransferType: queryString(r, "transfer_type"),
		})
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, transfers)
	}
}

func getTransferHandler(svc *service.BankingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/transfers/{transferId}")
		defer span.End()

		transferID := chi.URLParam(r, "transferId")
		span.SetAttributes(attribute.String("transfer.id", transferID))

		transfer, err := svc.GetTransfer(ctx, transferID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, transfer)
	}
}

func validateTransferHandler(svc *service.BankingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transfers/validate")
		defer span.End()

		var req domain.TransferRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		resp, err := svc.ValidateTransfer(ctx, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func batchTransfersHandler(svc *service.BankingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transfers/batch")
		defer span.End()

		var req domain.BatchTransferRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		resp, err := svc.BatchTransfers(ctx, req.Transfers)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func cancelTransferHandler(svc *service.BankingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transfers/{transferId}/cancel")
		defer span.End()

		transferID := chi.URLParam(r, "transferId")
		span.SetAttributes(attribute.String("transfer.id", transferID))

		var req domain.TransferCancelRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		resp, err := svc.CancelTransfer(ctx, transferID, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func reverseTransferHandler(svc *service.BankingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transfers/{transferId}/reverse")
		defer span.End()

		transferID := chi.URLParam(r, "transferId")
		span.SetAttributes(attribute.String("transfer.id", transferID))

		var req domain.TransferReverseRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		resp, err := svc.ReverseTransfer(ctx, transferID, req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
