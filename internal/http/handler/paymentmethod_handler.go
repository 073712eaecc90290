package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/paylinkhq/paylink/internal/domain/paymentmethod"
	"github.com/paylinkhq/paylink/internal/http/dto"
	"github.com/paylinkhq/paylink/internal/http/middleware"
	"github.com/paylinkhq/paylink/internal/service"
)

// PaymentMethodHandler handles payment method HTTP requests
type PaymentMethodHandler struct {
	methodService *service.PaymentMethodService
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewPaymentMethodHandler creates a new payment method handler
func NewPaymentMethodHandler(
	methodService *service.PaymentMethodService,
	validator *validator.Validate,
	logger *slog.Logger,
) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		methodService: methodService,
		validator:     validator,
		logger:        logger,
	}
}

// Create handles POST /api/payment-method
func (h *PaymentMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentMethodRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", formatValidationErrors(validationErrors))
		return
	}

	pm := &paymentmethod.PaymentMethod{
		Name:        req.Name,
		Description: req.Description,
		MerchantID:  req.MerchantID,
		SecretKey:   req.SecretKey,
		HashTypeID:  req.HashTypeID,
		Activated:   req.Activated,
		CreatedBy:   userIDFromContext(r),
	}

	if err := h.methodService.Create(r.Context(), pm); err != nil {
		if errors.Is(err, paymentmethod.ErrMerchantIDInUse) {
			respondError(w, http.StatusUnprocessableEntity, "MERCHANT_ID_IN_USE", "merchant_id in use")
			return
		}
		h.logger.Error("failed to create payment method", "error", err)
		respondError(w, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create payment method")
		return
	}

	respondJSON(w, http.StatusCreated, pm)
}

// List handles GET /api/payment-method. Pagination params switch to
// paginated mode, filter params to filtered mode, otherwise a plain list.
func (h *PaymentMethodHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("per_page") != "" || query.Get("current_page") != "" {
		params := paymentmethod.PaginateParams{
			PerPage:     parseInt(query.Get("per_page"), 10),
			CurrentPage: parseInt(query.Get("current_page"), 1),
		}

		page, err := h.methodService.GetAllPaginate(r.Context(), params)
		if err != nil {
			h.logger.Error("failed to paginate payment methods", "error", err)
			respondError(w, http.StatusInternalServerError, "LIST_FAILED", "Failed to list payment methods")
			return
		}

		respondJSON(w, http.StatusOK, page)
		return
	}

	filter := paymentmethod.Filter{
		Name:        query.Get("name"),
		Description: query.Get("description"),
		MerchantID:  query.Get("merchant_id"),
	}

	var (
		methods []*paymentmethod.PaymentMethod
		err     error
	)
	if filter.IsZero() {
		methods, err = h.methodService.GetAll(r.Context())
	} else {
		methods, err = h.methodService.GetBy(r.Context(), filter)
	}
	if err != nil {
		h.logger.Error("failed to list payment methods", "error", err)
		respondError(w, http.StatusInternalServerError, "LIST_FAILED", "Failed to list payment methods")
		return
	}

	respondJSON(w, http.StatusOK, methods)
}

// GetByID handles GET /api/payment-method/{id}
func (h *PaymentMethodHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid payment method ID")
		return
	}

	pm, err := h.methodService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, paymentmethod.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Payment method not found")
			return
		}
		h.logger.Error("failed to get payment method", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "GET_FAILED", "Failed to get payment method")
		return
	}

	respondJSON(w, http.StatusOK, pm)
}

// Update handles PATCH /api/payment-method/{id}
func (h *PaymentMethodHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid payment method ID")
		return
	}

	var req dto.UpdatePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", formatValidationErrors(validationErrors))
		return
	}

	pm, err := h.methodService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, paymentmethod.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Payment method not found")
			return
		}
		h.logger.Error("failed to get payment method", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update payment method")
		return
	}

	applyUpdate(pm, req)
	pm.UpdatedBy = userIDFromContext(r)

	updated, err := h.methodService.Update(r.Context(), pm)
	if err != nil {
		h.logger.Error("failed to update payment method", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update payment method")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/payment-method/{id}
func (h *PaymentMethodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid payment method ID")
		return
	}

	if err := h.methodService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, paymentmethod.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Payment method not found")
			return
		}
		h.logger.Error("failed to delete payment method", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete payment method")
		return
	}

	respondJSON(w, http.StatusOK, dto.MessageResponse{Message: "Payment method deleted successfully"})
}

// BulkCreate handles POST /api/bulk/payment-method
func (h *PaymentMethodHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkCreatePaymentMethodRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", formatValidationErrors(validationErrors))
		return
	}

	methods := make([]*paymentmethod.PaymentMethod, len(req.Records))
	for i, rec := range req.Records {
		methods[i] = &paymentmethod.PaymentMethod{
			Name:        rec.Name,
			Description: rec.Description,
			MerchantID:  rec.MerchantID,
			SecretKey:   rec.SecretKey,
			HashTypeID:  rec.HashTypeID,
			Activated:   rec.Activated,
		}
	}

	count, err := h.methodService.BulkCreate(r.Context(), methods, userIDFromContext(r))
	if err != nil {
		h.logger.Error("failed to bulk create payment methods", "error", err)
		respondError(w, http.StatusInternalServerError, "BULK_CREATE_FAILED", "Failed to bulk create payment methods")
		return
	}

	respondJSON(w, http.StatusCreated, dto.BulkResultResponse{
		Count:   count,
		Message: "Payment methods created successfully",
	})
}

// BulkDelete handles DELETE /api/bulk/payment-method
func (h *PaymentMethodHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkDeletePaymentMethodRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", formatValidationErrors(validationErrors))
		return
	}

	count, err := h.methodService.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		h.logger.Error("failed to bulk delete payment methods", "error", err)
		respondError(w, http.StatusInternalServerError, "BULK_DELETE_FAILED", "Failed to bulk delete payment methods")
		return
	}

	respondJSON(w, http.StatusOK, dto.BulkResultResponse{
		Count:   count,
		Message: "Payment methods deleted successfully",
	})
}

// parseIDParam parses the {id} URL parameter
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// userIDFromContext returns the authenticated user id, nil when the route
// is unauthenticated
func userIDFromContext(r *http.Request) *int64 {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return nil
	}
	return &claims.UserID
}

// applyUpdate copies set fields from the request onto the record
func applyUpdate(pm *paymentmethod.PaymentMethod, req dto.UpdatePaymentMethodRequest) {
	if req.Name != nil {
		pm.Name = *req.Name
	}
	if req.Description != nil {
		pm.Description = *req.Description
	}
	if req.MerchantID != nil {
		pm.MerchantID = *req.MerchantID
	}
	if req.SecretKey != nil {
		pm.SecretKey = *req.SecretKey
	}
	if req.HashTypeID != nil {
		pm.HashTypeID = *req.HashTypeID
	}
	if req.Activated != nil {
		pm.Activated = *req.Activated
	}
}
