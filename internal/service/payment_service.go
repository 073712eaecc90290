package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paylinkhq/paylink/internal/domain/collection"
	"github.com/paylinkhq/paylink/internal/domain/gateway"
	"github.com/paylinkhq/paylink/internal/gateway/billplz"
	redisRepo "github.com/paylinkhq/paylink/internal/repository/redis"
)

// EventPublisher publishes completed-payment events for realtime consumers
type EventPublisher interface {
	PublishPaymentEvent(ctx context.Context, event *redisRepo.PaymentEvent) error
}

// PaymentService dispatches payment URL generation to gateway adapters and
// reconciles provider callbacks into the financial-collection ledger
type PaymentService struct {
	registry      *gateway.Registry
	collections   collection.Repository
	events        EventPublisher
	xSignatureKey string
	logger        *slog.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	registry *gateway.Registry,
	collections collection.Repository,
	events EventPublisher,
	xSignatureKey string,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		registry:      registry,
		collections:   collections,
		events:        events,
		xSignatureKey: xSignatureKey,
		logger:        logger,
	}
}

// GeneratePaymentURL selects the adapter for the gateway type and invokes it.
// Adapter failures are logged and surfaced as an error; callers apply one
// uniform failure response regardless of cause.
func (s *PaymentService) GeneratePaymentURL(ctx context.Context, gatewayType gateway.Type, req gateway.PaymentRequest) (string, error) {
	adapter, ok := s.registry.Get(gatewayType)
	if !ok {
		s.logger.Warn("unknown gateway type", "gateway", gatewayType)
		return "", gateway.ErrUnknownGateway
	}

	url, err := adapter.GenerateURL(ctx, req)
	if err != nil {
		s.logger.Error("failed to generate payment url",
			"gateway", gatewayType,
			"error", err,
		)
		return "", err
	}

	s.logger.Info("payment url generated",
		"gateway", gatewayType,
		"amount", req.Amount,
	)

	return url, nil
}

// BillplzCallback holds an inbound Billplz bill notification
type BillplzCallback struct {
	ID                string
	CollectionID      string
	Paid              bool
	State             string
	Amount            string
	PaidAmount        string
	DueAt             string
	Email             string
	Mobile            string
	Name              string
	URL               string
	PaidAt            string
	TransactionID     string
	TransactionStatus string
	XSignature        string
}

// signaturePayload returns the callback fields keyed by their wire names,
// the shape the x_signature is computed over
func (cb BillplzCallback) signaturePayload() map[string]string {
	return map[string]string{
		"id":                 cb.ID,
		"collection_id":      cb.CollectionID,
		"paid":               strconv.FormatBool(cb.Paid),
		"state":              cb.State,
		"amount":             cb.Amount,
		"paid_amount":        cb.PaidAmount,
		"due_at":             cb.DueAt,
		"email":              cb.Email,
		"mobile":             cb.Mobile,
		"name":               cb.Name,
		"url":                cb.URL,
		"paid_at":            cb.PaidAt,
		"transaction_id":     cb.TransactionID,
		"transaction_status": cb.TransactionStatus,
	}
}

// CallbackOutcome describes what the reconciler did with a callback.
// The HTTP response to the provider is always success; the outcome exists
// for logging and observability only.
type CallbackOutcome string

const (
	OutcomeRecorded         CallbackOutcome = "recorded"
	OutcomeSkipped          CallbackOutcome = "skipped"
	OutcomeInvalidSignature CallbackOutcome = "invalid_signature"
	OutcomeError            CallbackOutcome = "error"
)

// ProcessBillplzCallback records a financial-collection entry for a paid
// bill. Unpaid notifications are skipped. Duplicate deliveries create
// duplicate entries; deduplication is the ledger consumer's concern for now.
func (s *PaymentService) ProcessBillplzCallback(ctx context.Context, cb BillplzCallback) (CallbackOutcome, error) {
	if s.xSignatureKey != "" {
		if !billplz.VerifySignature(cb.signaturePayload(), cb.XSignature, s.xSignatureKey) {
			s.logger.Warn("invalid billplz callback signature", "bill_id", cb.ID)
			return OutcomeInvalidSignature, nil
		}
	}

	if !cb.Paid || cb.State != "paid" {
		s.logger.Info("billplz callback skipped",
			"bill_id", cb.ID,
			"paid", cb.Paid,
			"state", cb.State,
		)
		return OutcomeSkipped, nil
	}

	paidAmount, err := decimal.NewFromString(cb.PaidAmount)
	if err != nil {
		s.logger.Error("invalid paid_amount in billplz callback",
			"bill_id", cb.ID,
			"paid_amount", cb.PaidAmount,
			"error", err,
		)
		return OutcomeError, err
	}

	// Provider reports minor units; the ledger keeps major units
	amount := paidAmount.Div(decimal.NewFromInt(100))

	entry := &collection.FinancialCollection{
		FullName:        cb.Name,
		RefNo:           cb.ID,
		PaymentEmail:    cb.Email,
		ContactNumber:   cb.Mobile,
		TransactionDate: parsePaidAt(cb.PaidAt),
		InvoiceNumber:   cb.ID,
		BillID:          cb.ID,
		AmountPaid:      amount,
		AmountReceived:  amount,
		TransactionFee:  decimal.Zero,
		Payout:          decimal.Zero,
		PaymentMethodID: 1,
		OrderID:         0,
		CreatedAt:       time.Now(),
	}

	if err := s.collections.Create(ctx, entry); err != nil {
		s.logger.Error("failed to record financial collection",
			"bill_id", cb.ID,
			"error", err,
		)
		return OutcomeError, err
	}

	s.logger.Info("payment recorded",
		"bill_id", cb.ID,
		"amount_paid", amount,
	)

	if s.events != nil {
		event := redisRepo.NewPaymentEvent(cb.TransactionID, cb.ID, cb.Name, amount.StringFixed(2), cb.PaidAt)
		if err := s.events.PublishPaymentEvent(ctx, event); err != nil {
			// Entry is already recorded; the event feed is best effort
			s.logger.Error("failed to publish payment event", "bill_id", cb.ID, "error", err)
		}
	}

	return OutcomeRecorded, nil
}

// parsePaidAt parses the provider's paid_at timestamp, falling back to the
// receipt time when the format is unrecognized
func parsePaidAt(value string) time.Time {
	layouts := []string{
		"2006-01-02 15:04:05 -0700",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now()
}
