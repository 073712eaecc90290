package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylinkhq/paylink/internal/domain/paymentmethod"
	"github.com/paylinkhq/paylink/internal/service"
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
		f.Create(ctx, pm)
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
		if filter.MerchantID != "" && !strings.Contains(pm.MerchantID, filter.MerchantID) {
			continue
		}
		if filter.Name != "" && !strings.Contains(pm.Name, filter.Name) {
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
			LastPage:    1,
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

func newMethodRouter() (*chi.Mux, *fakeMethodRepo) {
	repo := newFakeMethodRepo()
	svc := service.NewPaymentMethodService(repo, testLogger())
	h := NewPaymentMethodHandler(svc, validator.New(), testLogger())

	router := chi.NewRouter()
	router.Route("/api/payment-method", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	router.Route("/api/bulk/payment-method", func(r chi.Router) {
		r.Post("/", h.BulkCreate)
		r.Delete("/", h.BulkDelete)
	})

	return router, repo
}

func TestPaymentMethodCreateEndpoint(t *testing.T) {
	router, _ := newMethodRouter()

	body := `{"name":"Billplz","merchant_id":"m-1","secret_key":"sk","activated":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/payment-method/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var created paymentmethod.PaymentMethod
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Billplz", created.Name)
	assert.True(t, created.Activated)
}

func TestPaymentMethodCreateDuplicateMerchant(t *testing.T) {
	router, _ := newMethodRouter()

	body := `{"name":"Billplz","merchant_id":"m-1","secret_key":"sk"}`
	first := httptest.NewRequest(http.MethodPost, "/api/payment-method/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, first)
	require.Equal(t, http.StatusCreated, rec.Code)

	second := httptest.NewRequest(http.MethodPost, "/api/payment-method/", strings.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, second)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "merchant_id in use", resp["message"])
}

func TestPaymentMethodListModes(t *testing.T) {
	router, repo := newMethodRouter()
	repo.Create(context.Background(), &paymentmethod.PaymentMethod{Name: "Billplz", MerchantID: "m-1"})
	repo.Create(context.Background(), &paymentmethod.PaymentMethod{Name: "Chip", MerchantID: "m-2"})

	t.Run("plain list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/payment-method/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var methods []paymentmethod.PaymentMethod
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &methods))
		assert.Len(t, methods, 2)
	})

	t.Run("filtered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/payment-method/?merchant_id=m-1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var methods []paymentmethod.PaymentMethod
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &methods))
		require.Len(t, methods, 1)
		assert.Equal(t, "m-1", methods[0].MerchantID)
	})

	t.Run("paginated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/payment-method/?per_page=10&current_page=1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var page paymentmethod.Page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, int64(2), page.Meta.Total)
		assert.Equal(t, 10, page.Meta.PerPage)
	})
}

func TestPaymentMethodGetUpdateDelete(t *testing.T) {
	router, repo := newMethodRouter()
	pm := &paymentmethod.PaymentMethod{Name: "Billplz", MerchantID: "m-1", SecretKey: "sk"}
	repo.Create(context.Background(), pm)

	t.Run("get by id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/payment-method/1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("get missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/payment-method/999", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("partial update", func(t *testing.T) {
		body := `{"name":"Billplz production"}`
		req := httptest.NewRequest(http.MethodPatch, "/api/payment-method/1", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var updated paymentmethod.PaymentMethod
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, "Billplz production", updated.Name)
		assert.Equal(t, "m-1", updated.MerchantID)
	})

	t.Run("delete", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/payment-method/1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		req = httptest.NewRequest(http.MethodDelete, "/api/payment-method/1", nil)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPaymentMethodBulkEndpoints(t *testing.T) {
	router, repo := newMethodRouter()

	t.Run("bulk create", func(t *testing.T) {
		body := `{"records":[
			{"name":"Billplz","merchant_id":"m-1","secret_key":"sk1"},
			{"name":"Chip","merchant_id":"m-2","secret_key":"sk2"}
		]}`
		req := httptest.NewRequest(http.MethodPost, "/api/bulk/payment-method/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, float64(2), resp["count"])
	})

	t.Run("bulk create requires records", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/bulk/payment-method/", strings.NewReader(`{"records":[]}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bulk delete", func(t *testing.T) {
		all, _ := repo.GetAll(context.Background())
		require.Len(t, all, 2)

		body := `{"ids":[1,2]}`
		req := httptest.NewRequest(http.MethodDelete, "/api/bulk/payment-method/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		remaining, _ := repo.GetAll(context.Background())
		assert.Empty(t, remaining)
	})
}
