package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/transport/httpapi"
)

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	entry := logger.WithField("component", "test")

	deps := catalog.Deps{Logger: entry}
	products := catalog.NewProductStore(memory.NewProductRepository(), deps)
	orders := catalog.NewOrderStore(memory.NewOrderRepository(), products, deps)

	srv := httptest.NewServer(httpapi.Router(products, orders, entry))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string) (int, map[string]any, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.Unmarshal(raw, &decoded)
	return resp.StatusCode, decoded, raw
}

func TestRoot(t *testing.T) {
	srv := newTestAPI(t)

	code, _, raw := doJSON(t, http.MethodGet, srv.URL+"/", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "storefront API is up", string(raw))
}

func TestOrderScenario(t *testing.T) {
	srv := newTestAPI(t)

	code, product, _ := doJSON(t, http.MethodPost, srv.URL+"/products", `{"name":"p1","priceMinor":500}`)
	require.Equal(t, http.StatusCreated, code)
	productID := product["id"].(string)

	code, order, _ := doJSON(t, http.MethodPost, srv.URL+"/orders",
		`{"buyerEmail":"a@b.com","products":["`+productID+`"]}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "CREATED", order["status"])
	orderID := order["id"].(string)
	products := order["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, productID, products[0].(map[string]any)["id"])

	code, edited, _ := doJSON(t, http.MethodPut, srv.URL+"/orders/"+orderID, `{"status":"COMPLETED"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "COMPLETED", edited["status"])

	code, deleted, _ := doJSON(t, http.MethodDelete, srv.URL+"/products/"+productID, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, deleted["deleted"])

	code, got, _ := doJSON(t, http.MethodGet, srv.URL+"/orders/"+orderID, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "COMPLETED", got["status"])
	assert.Equal(t, []any{nil}, got["products"])
}

func TestListOrdersQuery(t *testing.T) {
	srv := newTestAPI(t)

	for _, status := range []string{"PENDING", "CREATED", "CREATED"} {
		code, _, _ := doJSON(t, http.MethodPost, srv.URL+"/orders", `{"buyerEmail":"a@b.com","status":"`+status+`"}`)
		require.Equal(t, http.StatusCreated, code)
	}

	resp, err := http.Get(srv.URL + "/orders?status=CREATED&limit=1&offset=0")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "CREATED", list[0]["status"])
	assert.Equal(t, []any{}, list[0]["products"])
}

func TestPatchIsEditAlias(t *testing.T) {
	srv := newTestAPI(t)

	_, product, _ := doJSON(t, http.MethodPost, srv.URL+"/products", `{"name":"Mug","tags":["kitchen"]}`)
	code, edited, _ := doJSON(t, http.MethodPatch, srv.URL+"/products/"+product["id"].(string), `{"priceMinor":900}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Mug", edited["name"])
	assert.Equal(t, float64(900), edited["priceMinor"])
	assert.Equal(t, []any{"kitchen"}, edited["tags"])
}

func TestErrorMapping(t *testing.T) {
	srv := newTestAPI(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{"unknown product", http.MethodGet, "/products/nope", "", http.StatusNotFound},
		{"unknown order edit", http.MethodPut, "/orders/nope", `{"status":"PENDING"}`, http.StatusNotFound},
		{"invalid status", http.MethodPost, "/orders", `{"buyerEmail":"a@b.com","status":"SHIPPED"}`, http.StatusBadRequest},
		{"missing email", http.MethodPost, "/orders", `{}`, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/products", `{"name":`, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/products", ``, http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/products?limit=abc", "", http.StatusBadRequest},
		{"negative offset", http.MethodGet, "/orders?offset=-1", "", http.StatusBadRequest},
		{"bad status filter", http.MethodGet, "/orders?status=DONE", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/customers", "", http.StatusNotFound},
		{"method not allowed", http.MethodPost, "/products/p1", `{}`, http.StatusMethodNotAllowed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body, _ := doJSON(t, tc.method, srv.URL+tc.path, tc.body)
			assert.Equal(t, tc.code, code)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	srv := newTestAPI(t)

	for i := 0; i < 2; i++ {
		code, body, _ := doJSON(t, http.MethodDelete, srv.URL+"/orders/never-existed", "")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, body["deleted"])
	}
}

type brokenProducts struct {
	catalog.ProductService
	err error
}

func (b brokenProducts) Get(context.Context, string) (domain.Product, error) {
	return domain.Product{}, b.err
}

func TestServerErrors(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(httpapi.Router(brokenProducts{err: tc.err}, nil, logger.WithField("component", "test")))

		code, body, _ := doJSON(t, http.MethodGet, srv.URL+"/products/p1", "")
		assert.Equal(t, tc.code, code)
		assert.NotContains(t, body["error"], "boom")
		srv.Close()
	}
}
