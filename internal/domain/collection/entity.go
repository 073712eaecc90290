package collection

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// FinancialCollection is a reconciled ledger row for a completed payment.
// Amounts are in major currency units.
type FinancialCollection struct {
	ID              int64           `json:"id"`
	FullName        string          `json:"full_name"`
	RefNo           string          `json:"ref_no"`
	PaymentEmail    string          `json:"payment_email"`
	ContactNumber   string          `json:"contact_number"`
	Code            string          `json:"code"`
	TransactionDate time.Time       `json:"transaction_date"`
	InvoiceNumber   string          `json:"invoice_number"`
	BillID          string          `json:"bill_id"`
	Processor       string          `json:"processor"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	AmountReceived  decimal.Decimal `json:"amount_received"`
	TransactionFee  decimal.Decimal `json:"transaction_fee"`
	Payout          decimal.Decimal `json:"payout"`
	PaymentMethodID int64           `json:"payment_method_id"`
	OrderID         int64           `json:"order_id"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Repository defines the financial collection repository interface
type Repository interface {
	Create(ctx context.Context, fc *FinancialCollection) error
}
