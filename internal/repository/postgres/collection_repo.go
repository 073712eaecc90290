package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paylinkhq/paylink/internal/domain/collection"
)

// CollectionRepository implements collection.Repository using PostgreSQL
type CollectionRepository struct {
	pool *pgxpool.Pool
}

// NewCollectionRepository creates a new financial collection repository
func NewCollectionRepository(pool *pgxpool.Pool) *CollectionRepository {
	return &CollectionRepository{pool: pool}
}

// Create creates a new financial collection entry
func (r *CollectionRepository) Create(ctx context.Context, fc *collection.FinancialCollection) error {
	query := `
		INSERT INTO financial_collections (
			full_name, ref_no, payment_email, contact_number, code,
			transaction_date, invoice_number, bill_id, processor,
			amount_paid, amount_received, transaction_fee, payout,
			payment_method_id, order_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		fc.FullName,
		fc.RefNo,
		fc.PaymentEmail,
		fc.ContactNumber,
		fc.Code,
		fc.TransactionDate,
		fc.InvoiceNumber,
		fc.BillID,
		fc.Processor,
		fc.AmountPaid,
		fc.AmountReceived,
		fc.TransactionFee,
		fc.Payout,
		fc.PaymentMethodID,
		fc.OrderID,
		fc.CreatedAt,
	).Scan(&fc.ID)

	if err != nil {
		return fmt.Errorf("failed to create financial collection: %w", err)
	}

	return nil
}
