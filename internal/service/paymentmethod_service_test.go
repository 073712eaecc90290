package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylinkhq/paylink/internal/domain/paymentmethod"
)

type fakeMethodRepo struct {
	methods map[int64]*paymentmethod.PaymentMethod
	nextID  int64
}

func newFakeMethodRepo() *fakeMethodRepo {
	return &fakeMethodRepo{methods: make(map[int64]*paymentmethod.PaymentMethod), nextID: 1}
}

func (f *fakeMethodRepo) Create(ctx context.Context, pm *paymentmethod.PaymentMethod) error {
	pm.ID = f.nextID
	f.nextID++
	stored := *pm
	f.methods[pm.ID] = &stored
	return nil
}

func (f *fakeMethodRepo) BulkCreate(ctx context.Context, pms []*paymentmethod.PaymentMethod) (int64, error) {
	for _, pm := range pms {
		if err := f.Create(ctx, pm); err != nil {
			return 0, err
		}
	}
	return int64(len(pms)), nil
}

func (f *fakeMethodRepo) GetByID(ctx context.Context, id int64) (*paymentmethod.PaymentMethod, error) {
	pm, ok := f.methods[id]
	if !ok {
		return nil, paymentmethod.ErrNotFound
	}
	copied := *pm
	return &copied, nil
}

func (f *fakeMethodRepo) GetAll(ctx context.Context) ([]*paymentmethod.PaymentMethod, error) {
	out := make([]*paymentmethod.PaymentMethod, 0, len(f.methods))
	for _, pm := range f.methods {
		copied := *pm
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeMethodRepo) GetBy(ctx context.Context, filter paymentmethod.Filter) ([]*paymentmethod.PaymentMethod, error) {
	out := make([]*paymentmethod.PaymentMethod, 0)
	for _, pm := range f.methods {
		if filter.MerchantID != "" && pm.MerchantID != filter.MerchantID {
			continue
		}
		if filter.Name != "" && pm.Name != filter.Name {
			continue
		}
		copied := *pm
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeMethodRepo) GetAllPaginate(ctx context.Context, params paymentmethod.PaginateParams) (*paymentmethod.Page, error) {
	all, _ := f.GetAll(ctx)
	return &paymentmethod.Page{
		Data: all,
		Meta: paymentmethod.PaginationMeta{
			Total:       int64(len(all)),
			CurrentPage: params.CurrentPage,
			PerPage:     params.PerPage,
		},
	}, nil
}

func (f *fakeMethodRepo) ExistsByMerchantID(ctx context.Context, merchantID string) (bool, error) {
	for _, pm := range f.methods {
		if pm.MerchantID == merchantID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMethodRepo) Update(ctx context.Context, pm *paymentmethod.PaymentMethod) error {
	if _, ok := f.methods[pm.ID]; !ok {
		return paymentmethod.ErrNotFound
	}
	stored := *pm
	f.methods[pm.ID] = &stored
	return nil
}

func (f *fakeMethodRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.methods[id]; !ok {
		return paymentmethod.ErrNotFound
	}
	delete(f.methods, id)
	return nil
}

func (f *fakeMethodRepo) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	for _, id := range ids {
		if _, ok := f.methods[id]; ok {
			delete(f.methods, id)
			count++
		}
	}
	return count, nil
}

func TestPaymentMethodCreate(t *testing.T) {
	repo := newFakeMethodRepo()
	svc := NewPaymentMethodService(repo, testLogger())

	pm := &paymentmethod.PaymentMethod{Name: "Billplz", MerchantID: "merchant-1", SecretKey: "sk"}
	require.NoError(t, svc.Create(context.Background(), pm))

	assert.NotZero(t, pm.ID)
	assert.False(t, pm.CreatedAt.IsZero())
}

func TestPaymentMethodCreateDuplicateMerchantID(t *testing.T) {
	repo := newFakeMethodRepo()
	svc := NewPaymentMethodService(repo, testLogger())

	first := &paymentmethod.PaymentMethod{Name: "Billplz", MerchantID: "merchant-1", SecretKey: "sk"}
	require.NoError(t, svc.Create(context.Background(), first))

	second := &paymentmethod.PaymentMethod{Name: "Billplz staging", MerchantID: "merchant-1", SecretKey: "sk2"}
	err := svc.Create(context.Background(), second)
	assert.ErrorIs(t, err, paymentmethod.ErrMerchantIDInUse)

	all, _ := repo.GetAll(context.Background())
	assert.Len(t, all, 1)
}

func TestPaymentMethodBulkCreateStampsCreatedBy(t *testing.T) {
	repo := newFakeMethodRepo()
	svc := NewPaymentMethodService(repo, testLogger())

	creator := int64(42)
	methods := []*paymentmethod.PaymentMethod{
		{Name: "Billplz", MerchantID: "m-1", SecretKey: "sk1"},
		{Name: "Chip", MerchantID: "m-2", SecretKey: "sk2"},
	}

	count, err := svc.BulkCreate(context.Background(), methods, &creator)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	for _, pm := range methods {
		require.NotNil(t, pm.CreatedBy)
		assert.Equal(t, creator, *pm.CreatedBy)
		assert.False(t, pm.CreatedAt.IsZero())
	}
}

func TestPaymentMethodUpdate(t *testing.T) {
	repo := newFakeMethodRepo()
	svc := NewPaymentMethodService(repo, testLogger())

	pm := &paymentmethod.PaymentMethod{Name: "Billplz", MerchantID: "m-1", SecretKey: "sk"}
	require.NoError(t, svc.Create(context.Background(), pm))

	pm.Name = "Billplz production"
	updated, err := svc.Update(context.Background(), pm)
	require.NoError(t, err)

	assert.Equal(t, "Billplz production", updated.Name)
	assert.NotNil(t, updated.UpdatedAt)
}

func TestPaymentMethodDelete(t *testing.T) {
	repo := newFakeMethodRepo()
	svc := NewPaymentMethodService(repo, testLogger())

	pm := &paymentmethod.PaymentMethod{Name: "Billplz", MerchantID: "m-1", SecretKey: "sk"}
	require.NoError(t, svc.Create(context.Background(), pm))

	require.NoError(t, svc.Delete(context.Background(), pm.ID))

	_, err := svc.GetByID(context.Background(), pm.ID)
	assert.ErrorIs(t, err, paymentmethod.ErrNotFound)
}

func TestPaymentMethodBulkDelete(t *testing.T) {
	repo := newFakeMethodRepo()
	svc := NewPaymentMethodService(repo, testLogger())

	a := &paymentmethod.PaymentMethod{Name: "A", MerchantID: "m-1", SecretKey: "sk"}
	b := &paymentmethod.PaymentMethod{Name: "B", MerchantID: "m-2", SecretKey: "sk"}
	require.NoError(t, svc.Create(context.Background(), a))
	require.NoError(t, svc.Create(context.Background(), b))

	count, err := svc.BulkDelete(context.Background(), []int64{a.ID, b.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestPaymentMethodPaginateDefaults(t *testing.T) {
	repo := newFakeMethodRepo()
	svc := NewPaymentMethodService(repo, testLogger())

	page, err := svc.GetAllPaginate(context.Background(), paymentmethod.PaginateParams{})
	require.NoError(t, err)

	assert.Equal(t, 10, page.Meta.PerPage)
	assert.Equal(t, 1, page.Meta.CurrentPage)
}
