package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellurunanda/Shopping-Cart/internal/domain"
)

func newTestClient(primary, fallback string) *Client {
	return New(Options{PrimaryBaseURL: primary, FallbackBaseURL: fallback})
}

func TestListProducts_PrimarySuccess_NoFallback(t *testing.T) {
	var fallbackHits int32

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "15", r.URL.Query().Get("limit"))
		assert.Equal(t, "0", r.URL.Query().Get("skip"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[{"id":1,"title":"Laptop","price":1299.99}],"total":50}`))
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fallbackHits, 1)
	}))
	defer fallback.Close()

	sut := newTestClient(primary.URL, fallback.URL)
	page, err := sut.ListProducts(context.Background(), 15, 0)

	require.NoError(t, err)
	assert.Equal(t, 50, page.Total)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Laptop", page.Products[0].Title)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fallbackHits))
}

func TestListCategories_Primary404_FallsBackOnce(t *testing.T) {
	var fallbackHits int32

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fallbackHits, 1)
		assert.Equal(t, "/products/categories", r.URL.Path)
		w.Write([]byte(`[{"slug":"beauty","name":"Beauty"},{"slug":"home-decoration","name":"Home Decoration"}]`))
	}))
	defer fallback.Close()

	sut := newTestClient(primary.URL, fallback.URL)
	categories, err := sut.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "beauty", categories[0].Slug)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fallbackHits))
}

func TestListCategories_Primary400_LoosePolicyFallsBack(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["beauty"]`))
	}))
	defer fallback.Close()

	sut := newTestClient(primary.URL, fallback.URL)
	categories, err := sut.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "beauty", categories[0].Slug)
	assert.Equal(t, "Beauty", categories[0].Name)
}

func TestListProducts_Primary400_DoesNotFallBack(t *testing.T) {
	var fallbackHits int32

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"limit out of range"}`))
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fallbackHits, 1)
	}))
	defer fallback.Close()

	sut := newTestClient(primary.URL, fallback.URL)
	_, err := sut.ListProducts(context.Background(), 1000, 0)

	require.EqualError(t, err, "limit out of range")
	assert.Equal(t, int32(0), atomic.LoadInt32(&fallbackHits))
}

func TestListProducts_Primary401_ReturnedVerbatim(t *testing.T) {
	var fallbackHits int32

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fallbackHits, 1)
	}))
	defer fallback.Close()

	sut := newTestClient(primary.URL, fallback.URL)
	_, err := sut.ListProducts(context.Background(), 15, 0)

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusUnauthorized, ge.Status)
	assert.Equal(t, "token expired", ge.Message)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fallbackHits))
}

func TestListProducts_NetworkError_FallsBack(t *testing.T) {
	// A closed server is a transport error, not an HTTP status.
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"id":9,"title":"Fallback Phone","price":499}],"total":1}`))
	}))
	defer fallback.Close()

	sut := newTestClient(primary.URL, fallback.URL)
	page, err := sut.ListProducts(context.Background(), 15, 0)

	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Fallback Phone", page.Products[0].Title)
}

func TestCreateProduct_NeverFallsBack(t *testing.T) {
	var fallbackHits int32

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fallbackHits, 1)
	}))
	defer fallback.Close()

	sut := newTestClient(primary.URL, fallback.URL)
	_, err := sut.CreateProduct(context.Background(), domain.Product{Title: "New"})

	require.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fallbackHits))
}

func TestLogin_DecodesUserEnvelope(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"user":{"id":1,"username":"admin","name":"Store Admin","role":"admin"}}`))
	}))
	defer primary.Close()

	sut := newTestClient(primary.URL, "http://unused.invalid")
	user, err := sut.Login(context.Background(), domain.Credentials{Username: "admin", Password: "admin123"})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Equal(t, "admin", user.Username)
}

func TestLogin_ErrorMessageFromValidationArray(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"msg":"Username must be at least 3 characters"}]}`))
	}))
	defer primary.Close()

	sut := newTestClient(primary.URL, "http://unused.invalid")
	_, err := sut.Login(context.Background(), domain.Credentials{Username: "x", Password: "y"})

	require.EqualError(t, err, "Username must be at least 3 characters")
}

func TestSend_TransportError_NormalizedMessage(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	primary.Close()

	sut := newTestClient(primary.URL, "http://unused.invalid")
	_, err := sut.Login(context.Background(), domain.Credentials{Username: "admin", Password: "admin123"})

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, 0, ge.Status)
	assert.Equal(t, "Cannot reach server", ge.Message)
}

func TestBreaker_OpensAfterRepeatedTransportFailures(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	primary.Close()

	var fallbackHits int32
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fallbackHits, 1)
		w.Write([]byte(`{"products":[],"total":0}`))
	}))
	defer fallback.Close()

	sut := newTestClient(primary.URL, fallback.URL)
	for i := 0; i < 5; i++ {
		_, err := sut.ListProducts(context.Background(), 15, 0)
		require.NoError(t, err, "reads must keep succeeding via the fallback")
	}

	// Whether or not the breaker is open, every read was served by the fallback.
	assert.Equal(t, int32(5), atomic.LoadInt32(&fallbackHits))
}
