package api

import (
	"bytes"
	"context"
	"customer-service/internal/config"
	"customer-service/internal/domain/customer"
	"customer-service/internal/event"
	"customer-service/internal/pkg/apperrors"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService answers the few calls the routing tests make. Anything else panics
// through the nil embedded interface.
type stubService struct {
	customer.CustomerService
	created *customer.Customer
}

func (s *stubService) CreateCustomer(_ context.Context, cust *customer.Customer) (*customer.Customer, error) {
	cust.ID = 42
	cust.ApplyDefaults()
	s.created = cust
	return cust, nil
}

func (s *stubService) GetCustomer(_ context.Context, customerID int64) (*customer.Customer, error) {
	if s.created == nil || s.created.ID != customerID {
		return nil, apperrors.ErrNotFound
	}
	return s.created, nil
}

func (s *stubService) ActivateCustomer(_ context.Context, _ int64) (*customer.Customer, error) {
	return nil, apperrors.ErrNotFound
}

func (s *stubService) ListCustomers(_ context.Context, _ customer.ListFilter) ([]*customer.Customer, error) {
	return []*customer.Customer{}, nil
}

// emptyRepo is a store holding no customers.
type emptyRepo struct {
	customer.CustomerRepository
}

func (emptyRepo) Find(context.Context, int64) (*customer.Customer, error) { return nil, nil }

func (emptyRepo) FindOrFail(_ context.Context, customerID int64) (*customer.Customer, error) {
	return nil, fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, customerID)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestRouter(t *testing.T, svc customer.CustomerService) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return SetupRouter(svc, stubPinger{}, cfg, logger)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterIndexAndHealth(t *testing.T) {
	router := newTestRouter(t, &stubService{})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Customer REST API Service","version":"1.0","paths":"/customers"}`, rec.Body.String())

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterCreateCustomer(t *testing.T) {
	t.Run("returns 201 with Location", func(t *testing.T) {
		svc := &stubService{}
		router := newTestRouter(t, svc)

		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(`{"first_name":"John","last_name":"Doe"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := serve(router, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/customers/42", rec.Header().Get("Location"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, true, body["active"])
		require.NotNil(t, svc.created)
		assert.Equal(t, "John", svc.created.FirstName)
	})

	t.Run("Location resolves to the same body", func(t *testing.T) {
		router := newTestRouter(t, &stubService{})

		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(
			`{"first_name":"Jash","last_name":"Doshi","userid":"jd1","password":"p","addresses":[]}`))
		req.Header.Set("Content-Type", "application/json")
		created := serve(router, req)
		require.Equal(t, http.StatusCreated, created.Code)

		fetched := serve(router, httptest.NewRequest(http.MethodGet, created.Header().Get("Location"), nil))

		assert.Equal(t, http.StatusOK, fetched.Code)
		assert.JSONEq(t, created.Body.String(), fetched.Body.String())
	})

	t.Run("returns 415 without a JSON content type", func(t *testing.T) {
		svc := &stubService{}
		router := newTestRouter(t, svc)

		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBufferString(`{"first_name":"John","last_name":"Doe"}`))
		req.Header.Set("Content-Type", "text/plain")
		rec := serve(router, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Nil(t, svc.created)
	})

	t.Run("returns 415 for an empty body without content type", func(t *testing.T) {
		router := newTestRouter(t, &stubService{})

		rec := serve(router, httptest.NewRequest(http.MethodPost, "/customers", nil))

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, &stubService{})

	rec := serve(router, httptest.NewRequest(http.MethodPatch, "/customers", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodPost, "/customers/1/activate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouterActivateUnknownCustomer(t *testing.T) {
	router := newTestRouter(t, &stubService{})

	rec := serve(router, httptest.NewRequest(http.MethodPut, "/customers/7/activate", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Resource not found.", body["error"]["message"])
}

func TestRouterListCustomers(t *testing.T) {
	router := newTestRouter(t, &stubService{})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/customers?first_name=John", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouterMetricsAndSwagger(t *testing.T) {
	router := newTestRouter(t, &stubService{})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/swagger", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/swagger/index.html", rec.Header().Get("Location"))
}

func TestRouterPathIDsThatNameNoCustomer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := customer.NewCustomerService(emptyRepo{}, event.NewLogEventPublisher(logger), logger)
	router := newTestRouter(t, svc)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/customers/0", http.StatusNotFound},
		{http.MethodDelete, "/customers/0", http.StatusNoContent},
		{http.MethodPut, "/customers/0/activate", http.StatusNotFound},
		{http.MethodPut, "/customers/0/deactivate", http.StatusNotFound},
		{http.MethodGet, "/customers/0/addresses", http.StatusNotFound},
		{http.MethodGet, "/customers/99999999999999999999", http.StatusNotFound},
		{http.MethodDelete, "/customers/99999999999999999999", http.StatusNoContent},
		{http.MethodGet, "/customers/abc", http.StatusBadRequest},
		{http.MethodGet, "/customers/-3", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := serve(router, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

func TestRouterAdminPage(t *testing.T) {
	router := newTestRouter(t, &stubService{})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Customer REST API Service")
	assert.Contains(t, rec.Body.String(), `src="/static/js/rest_api.js"`)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/static/js/rest_api.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/customers"`)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/static/js/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
