package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"whole amount", 10, 1000},
		{"two decimal places", 25.50, 2550},
		{"half cent rounds up", 19.995, 2000},
		{"one cent", 0.01, 1},
		{"zero", 0, 0},
		{"large amount", 99999.99, 9999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MinorUnits(tt.amount))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"whole amount", 10, "10.00"},
		{"one decimal place", 25.5, "25.50"},
		{"two decimal places", 19.99, "19.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}

func TestMajorUnits(t *testing.T) {
	assert.Equal(t, "20", MajorUnits(2000).String())
	assert.Equal(t, "25.5", MajorUnits(2550).String())
	assert.Equal(t, "0.01", MajorUnits(1).String())
}

func TestRegistry(t *testing.T) {
	billplz := &stubAdapter{name: TypeBillplz}
	chip := &stubAdapter{name: TypeChip}
	registry := NewRegistry(billplz, chip)

	t.Run("get registered adapter", func(t *testing.T) {
		a, ok := registry.Get(TypeBillplz)
		assert.True(t, ok)
		assert.Equal(t, TypeBillplz, a.Name())
	})

	t.Run("get unknown adapter", func(t *testing.T) {
		_, ok := registry.Get(TypeSenangPay)
		assert.False(t, ok)
	})

	t.Run("types lists registered gateways", func(t *testing.T) {
		assert.ElementsMatch(t, []Type{TypeBillplz, TypeChip}, registry.Types())
	})
}

type stubAdapter struct {
	name Type
}

func (s *stubAdapter) Name() Type { return s.name }

func (s *stubAdapter) GenerateURL(ctx context.Context, req PaymentRequest) (string, error) {
	return "", nil
}
