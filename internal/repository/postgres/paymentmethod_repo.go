package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paylinkhq/paylink/internal/domain/paymentmethod"
)

// PaymentMethodRepository implements paymentmethod.Repository using PostgreSQL
type PaymentMethodRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentMethodRepository creates a new payment method repository
func NewPaymentMethodRepository(pool *pgxpool.Pool) *PaymentMethodRepository {
	return &PaymentMethodRepository{pool: pool}
}

const paymentMethodColumns = `id, name, description, merchant_id, secret_key, hash_type_id,
       activated, created_by, updated_by, created_at, updated_at`

// Create creates a new payment method
func (r *PaymentMethodRepository) Create(ctx context.Context, pm *paymentmethod.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (
			name, description, merchant_id, secret_key, hash_type_id,
			activated, created_by, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		pm.Name,
		pm.Description,
		pm.MerchantID,
		pm.SecretKey,
		pm.HashTypeID,
		pm.Activated,
		pm.CreatedBy,
		pm.CreatedAt,
	).Scan(&pm.ID)

	if err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}

	return nil
}

// BulkCreate creates multiple payment methods in one transaction
func (r *PaymentMethodRepository) BulkCreate(ctx context.Context, pms []*paymentmethod.PaymentMethod) (int64, error) {
	if len(pms) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO payment_methods (
			name, description, merchant_id, secret_key, hash_type_id,
			activated, created_by, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var count int64
	for _, pm := range pms {
		err := tx.QueryRow(ctx, query,
			pm.Name,
			pm.Description,
			pm.MerchantID,
			pm.SecretKey,
			pm.HashTypeID,
			pm.Activated,
			pm.CreatedBy,
			pm.CreatedAt,
		).Scan(&pm.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to create payment method: %w", err)
		}
		count++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return count, nil
}

// GetByID gets a payment method by ID
func (r *PaymentMethodRepository) GetByID(ctx context.Context, id int64) (*paymentmethod.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	return r.scanPaymentMethod(row)
}

// GetAll lists all payment methods
func (r *PaymentMethodRepository) GetAll(ctx context.Context) ([]*paymentmethod.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	return r.collectPaymentMethods(rows)
}

// GetBy lists payment methods matching the filter with case-insensitive
// contains semantics
func (r *PaymentMethodRepository) GetBy(ctx context.Context, filter paymentmethod.Filter) ([]*paymentmethod.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filter.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argCount)
		args = append(args, "%"+filter.Name+"%")
		argCount++
	}

	if filter.Description != "" {
		query += fmt.Sprintf(" AND description ILIKE $%d", argCount)
		args = append(args, "%"+filter.Description+"%")
		argCount++
	}

	if filter.MerchantID != "" {
		query += fmt.Sprintf(" AND merchant_id ILIKE $%d", argCount)
		args = append(args, "%"+filter.MerchantID+"%")
		argCount++
	}

	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter payment methods: %w", err)
	}
	defer rows.Close()

	return r.collectPaymentMethods(rows)
}

// GetAllPaginate lists payment methods one page at a time
func (r *PaymentMethodRepository) GetAllPaginate(ctx context.Context, params paymentmethod.PaginateParams) (*paymentmethod.Page, error) {
	if params.CurrentPage < 1 {
		params.CurrentPage = 1
	}
	if params.PerPage < 1 {
		params.PerPage = 10
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payment_methods`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count payment methods: %w", err)
	}

	offset := (params.CurrentPage - 1) * params.PerPage

	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, params.PerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to paginate payment methods: %w", err)
	}
	defer rows.Close()

	data, err := r.collectPaymentMethods(rows)
	if err != nil {
		return nil, err
	}

	lastPage := int(total) / params.PerPage
	if int(total)%params.PerPage > 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}

	from := 0
	to := 0
	if len(data) > 0 {
		from = offset + 1
		to = offset + len(data)
	}

	return &paymentmethod.Page{
		Data: data,
		Meta: paymentmethod.PaginationMeta{
			Total:       total,
			LastPage:    lastPage,
			CurrentPage: params.CurrentPage,
			PerPage:     params.PerPage,
			From:        from,
			To:          to,
		},
	}, nil
}

// ExistsByMerchantID reports whether a payment method with the merchant_id exists
func (r *PaymentMethodRepository) ExistsByMerchantID(ctx context.Context, merchantID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM payment_methods WHERE merchant_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, merchantID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check merchant id: %w", err)
	}

	return exists, nil
}

// Update updates a payment method
func (r *PaymentMethodRepository) Update(ctx context.Context, pm *paymentmethod.PaymentMethod) error {
	query := `
		UPDATE payment_methods
		SET name = $2, description = $3, merchant_id = $4, secret_key = $5,
		    hash_type_id = $6, activated = $7, updated_by = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		pm.ID,
		pm.Name,
		pm.Description,
		pm.MerchantID,
		pm.SecretKey,
		pm.HashTypeID,
		pm.Activated,
		pm.UpdatedBy,
		pm.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}

	if result.RowsAffected() == 0 {
		return paymentmethod.ErrNotFound
	}

	return nil
}

// Delete deletes a payment method
func (r *PaymentMethodRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}

	if result.RowsAffected() == 0 {
		return paymentmethod.ErrNotFound
	}

	return nil
}

// BulkDelete deletes payment methods by id
func (r *PaymentMethodRepository) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := r.pool.Exec(ctx, `DELETE FROM payment_methods WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete payment methods: %w", err)
	}

	return result.RowsAffected(), nil
}

// Helper function to scan a payment method from a row
func (r *PaymentMethodRepository) scanPaymentMethod(row pgx.Row) (*paymentmethod.PaymentMethod, error) {
	var pm paymentmethod.PaymentMethod

	err := row.Scan(
		&pm.ID,
		&pm.Name,
		&pm.Description,
		&pm.MerchantID,
		&pm.SecretKey,
		&pm.HashTypeID,
		&pm.Activated,
		&pm.CreatedBy,
		&pm.UpdatedBy,
		&pm.CreatedAt,
		&pm.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, paymentmethod.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan payment method: %w", err)
	}

	return &pm, nil
}

// Helper function to collect payment methods from rows
func (r *PaymentMethodRepository) collectPaymentMethods(rows pgx.Rows) ([]*paymentmethod.PaymentMethod, error) {
	methods := make([]*paymentmethod.PaymentMethod, 0)
	for rows.Next() {
		var pm paymentmethod.PaymentMethod
		err := rows.Scan(
			&pm.ID,
			&pm.Name,
			&pm.Description,
			&pm.MerchantID,
			&pm.SecretKey,
			&pm.HashTypeID,
			&pm.Activated,
			&pm.CreatedBy,
			&pm.UpdatedBy,
			&pm.CreatedAt,
			&pm.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		methods = append(methods, &pm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment methods: %w", err)
	}

	return methods, nil
}
