package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/paylinkhq/paylink/internal/domain/gateway"
	"github.com/paylinkhq/paylink/internal/http/dto"
	"github.com/paylinkhq/paylink/internal/service"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	paymentService *service.PaymentService,
	validator *validator.Validate,
	logger *slog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validator:      validator,
		logger:         logger,
	}
}

// Generate handles POST /api/payment/generate
func (h *PaymentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.GeneratePaymentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", formatValidationErrors(validationErrors))
		return
	}

	url, err := h.paymentService.GeneratePaymentURL(r.Context(), gateway.Type(req.Gateway), gateway.PaymentRequest{
		Name:         req.Name,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Amount:       req.Amount,
		Description:  req.Description,
	})
	if err != nil || url == "" {
		respondJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Payment URL creation failed",
			Message: "failed to create payment URL.",
		})
		return
	}

	respondJSON(w, http.StatusOK, dto.GeneratePaymentResponse{
		Data:    url,
		Message: "Payment Url created successfully",
	})
}

// BillplzCallback handles POST /api/payment/callback/billplz.
// The provider retries on non-2xx responses, so the acknowledgement is
// always 200 regardless of what the reconciler decided.
func (h *PaymentHandler) BillplzCallback(w http.ResponseWriter, r *http.Request) {
	cb, err := parseBillplzCallback(r)
	if err != nil {
		h.logger.Warn("malformed billplz callback", "error", err)
		respondJSON(w, http.StatusOK, dto.CallbackResponse{Message: "Payment successful"})
		return
	}

	outcome, err := h.paymentService.ProcessBillplzCallback(r.Context(), cb)
	if err != nil {
		h.logger.Error("billplz callback processing failed", "bill_id", cb.ID, "error", err)
	}

	h.logger.Info("billplz callback handled", "bill_id", cb.ID, "outcome", outcome)

	respondJSON(w, http.StatusOK, dto.CallbackResponse{Message: "Payment successful"})
}

// parseBillplzCallback reads the callback body as form-encoded (the Billplz
// wire format) or JSON
func parseBillplzCallback(r *http.Request) (service.BillplzCallback, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.Contains(contentType, "application/json") {
		var req dto.BillplzCallbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return service.BillplzCallback{}, err
		}
		return callbackFromDTO(req), nil
	}

	if err := r.ParseForm(); err != nil {
		return service.BillplzCallback{}, err
	}

	return service.BillplzCallback{
		ID:                r.PostFormValue("id"),
		CollectionID:      r.PostFormValue("collection_id"),
		Paid:              r.PostFormValue("paid") == "true",
		State:             r.PostFormValue("state"),
		Amount:            r.PostFormValue("amount"),
		PaidAmount:        r.PostFormValue("paid_amount"),
		DueAt:             r.PostFormValue("due_at"),
		Email:             r.PostFormValue("email"),
		Mobile:            r.PostFormValue("mobile"),
		Name:              r.PostFormValue("name"),
		URL:               r.PostFormValue("url"),
		PaidAt:            r.PostFormValue("paid_at"),
		TransactionID:     r.PostFormValue("transaction_id"),
		TransactionStatus: r.PostFormValue("transaction_status"),
		XSignature:        r.PostFormValue("x_signature"),
	}, nil
}

func callbackFromDTO(req dto.BillplzCallbackRequest) service.BillplzCallback {
	return service.BillplzCallback{
		ID:                req.ID,
		CollectionID:      req.CollectionID,
		Paid:              req.Paid,
		State:             req.State,
		Amount:            req.Amount,
		PaidAmount:        req.PaidAmount,
		DueAt:             req.DueAt,
		Email:             req.Email,
		Mobile:            req.Mobile,
		Name:              req.Name,
		URL:               req.URL,
		PaidAt:            req.PaidAt,
		TransactionID:     req.TransactionID,
		TransactionStatus: req.TransactionStatus,
		XSignature:        req.XSignature,
	}
}
