package paymentmethod

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a payment method does not exist
var ErrNotFound = errors.New("payment method not found")

// ErrMerchantIDInUse is returned when creating a payment method with a
// merchant_id that already belongs to another record
var ErrMerchantIDInUse = errors.New("merchant_id in use")

// PaymentMethod represents a configured payment gateway record
type PaymentMethod struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	MerchantID  string     `json:"merchant_id"`
	SecretKey   string     `json:"secret_key"`
	HashTypeID  int64      `json:"hash_type_id"`
	Activated   bool       `json:"activated"`
	CreatedBy   *int64     `json:"created_by,omitempty"`
	UpdatedBy   *int64     `json:"updated_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Filter holds case-insensitive contains filters for listing payment methods
type Filter struct {
	Name        string
	Description string
	MerchantID  string
}

// IsZero reports whether no filter field is set
func (f Filter) IsZero() bool {
	return f.Name == "" && f.Description == "" && f.MerchantID == ""
}

// PaginateParams holds pagination parameters
type PaginateParams struct {
	PerPage     int
	CurrentPage int
}

// PaginationMeta describes one page of results
type PaginationMeta struct {
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	From        int   `json:"from"`
	To          int   `json:"to"`
}

// Page holds one page of payment methods with pagination meta
type Page struct {
	Data []*PaymentMethod `json:"data"`
	Meta PaginationMeta   `json:"meta"`
}

// Repository defines the payment method repository interface
type Repository interface {
	Create(ctx context.Context, pm *PaymentMethod) error
	BulkCreate(ctx context.Context, pms []*PaymentMethod) (int64, error)
	GetByID(ctx context.Context, id int64) (*PaymentMethod, error)
	GetAll(ctx context.Context) ([]*PaymentMethod, error)
	GetBy(ctx context.Context, filter Filter) ([]*PaymentMethod, error)
	GetAllPaginate(ctx context.Context, params PaginateParams) (*Page, error)
	ExistsByMerchantID(ctx context.Context, merchantID string) (bool, error)
	Update(ctx context.Context, pm *PaymentMethod) error
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
}
