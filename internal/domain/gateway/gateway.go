package gateway

import (
	"context"
	"errors"
)

// Type identifies a payment gateway
type Type string

const (
	TypeBillplz   Type = "billplz"
	TypeSenangPay Type = "senangpay"
	TypeChip      Type = "chip"
	TypeStripeMY  Type = "stripe-my"
	TypeStripeSG  Type = "stripe-sg"
)

// Sentinel errors for gateway dispatch
var (
	// ErrUnknownGateway is returned when no adapter is registered for a gateway type
	ErrUnknownGateway = errors.New("unknown gateway")

	// ErrConfigurationMissing is returned when an adapter's required credential is absent
	ErrConfigurationMissing = errors.New("gateway configuration missing")
)

// PaymentRequest holds the request to generate a payment URL.
// Amount is in major currency units; adapters convert to minor units.
type PaymentRequest struct {
	Name         string
	Email        string
	MobileNumber string
	Amount       float64
	Description  string
}

// Adapter builds a provider-specific request and extracts a hosted checkout URL
type Adapter interface {
	// Name returns the gateway type this adapter serves
	Name() Type

	// GenerateURL generates a hosted payment URL for the request
	GenerateURL(ctx context.Context, req PaymentRequest) (string, error)
}

// Registry maps gateway types to adapters. Adding a provider means adding
// one adapter plus one registry entry; the dispatcher never changes.
type Registry struct {
	adapters map[Type]Adapter
}

// NewRegistry creates a registry from the given adapters
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[Type]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
	}
	return r
}

// Get returns the adapter registered for a gateway type
func (r *Registry) Get(t Type) (Adapter, bool) {
	a, ok := r.adapters[t]
	return a, ok
}

// Types returns the registered gateway types
func (r *Registry) Types() []Type {
	types := make([]Type, 0, len(r.adapters))
	for t := range r.adapters {
		types = append(types, t)
	}
	return types
}
