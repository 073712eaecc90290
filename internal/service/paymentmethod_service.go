package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/paylinkhq/paylink/internal/domain/paymentmethod"
)

// PaymentMethodService handles payment method business logic
type PaymentMethodService struct {
	repo   paymentmethod.Repository
	logger *slog.Logger
}

// NewPaymentMethodService creates a new payment method service
func NewPaymentMethodService(repo paymentmethod.Repository, logger *slog.Logger) *PaymentMethodService {
	return &PaymentMethodService{
		repo:   repo,
		logger: logger,
	}
}

// Create creates a payment method, enforcing merchant_id uniqueness
func (s *PaymentMethodService) Create(ctx context.Context, pm *paymentmethod.PaymentMethod) error {
	exists, err := s.repo.ExistsByMerchantID(ctx, pm.MerchantID)
	if err != nil {
		return fmt.Errorf("failed to check merchant id: %w", err)
	}
	if exists {
		return paymentmethod.ErrMerchantIDInUse
	}

	pm.CreatedAt = time.Now()
	if err := s.repo.Create(ctx, pm); err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}

	s.logger.Info("payment method created",
		"id", pm.ID,
		"name", pm.Name,
		"merchant_id", pm.MerchantID,
	)

	return nil
}

// BulkCreate creates multiple payment methods, stamping created_by on each
func (s *PaymentMethodService) BulkCreate(ctx context.Context, pms []*paymentmethod.PaymentMethod, createdBy *int64) (int64, error) {
	now := time.Now()
	for _, pm := range pms {
		pm.CreatedBy = createdBy
		pm.CreatedAt = now
	}

	count, err := s.repo.BulkCreate(ctx, pms)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk create payment methods: %w", err)
	}

	s.logger.Info("payment methods bulk created", "count", count)
	return count, nil
}

// GetByID gets a payment method by ID
func (s *PaymentMethodService) GetByID(ctx context.Context, id int64) (*paymentmethod.PaymentMethod, error) {
	return s.repo.GetByID(ctx, id)
}

// GetAll lists all payment methods
func (s *PaymentMethodService) GetAll(ctx context.Context) ([]*paymentmethod.PaymentMethod, error) {
	return s.repo.GetAll(ctx)
}

// GetBy lists payment methods matching a filter
func (s *PaymentMethodService) GetBy(ctx context.Context, filter paymentmethod.Filter) ([]*paymentmethod.PaymentMethod, error) {
	return s.repo.GetBy(ctx, filter)
}

// GetAllPaginate lists payment methods one page at a time
func (s *PaymentMethodService) GetAllPaginate(ctx context.Context, params paymentmethod.PaginateParams) (*paymentmethod.Page, error) {
	if params.PerPage < 1 {
		params.PerPage = 10
	}
	if params.CurrentPage < 1 {
		params.CurrentPage = 1
	}
	return s.repo.GetAllPaginate(ctx, params)
}

// Update updates a payment method and returns the stored record
func (s *PaymentMethodService) Update(ctx context.Context, pm *paymentmethod.PaymentMethod) (*paymentmethod.PaymentMethod, error) {
	now := time.Now()
	pm.UpdatedAt = &now

	if err := s.repo.Update(ctx, pm); err != nil {
		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}

	return s.repo.GetByID(ctx, pm.ID)
}

// Delete deletes a payment method
func (s *PaymentMethodService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}

	s.logger.Info("payment method deleted", "id", id)
	return nil
}

// BulkDelete deletes payment methods by id
func (s *PaymentMethodService) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	count, err := s.repo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete payment methods: %w", err)
	}

	s.logger.Info("payment methods bulk deleted", "count", count)
	return count, nil
}
