// internal/interfaces/http/routes/routes_test.go
package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/bookverse-storefront/internal/backend"
	"github.com/your-org/bookverse-storefront/internal/config"
	"github.com/your-org/bookverse-storefront/internal/infrastructure/store"
	"github.com/your-org/bookverse-storefront/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

// fakeBackend stands in for the external books/users/orders API
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["email"] == "shopper@example.com" && req["password"] == "secret123" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"user": map[string]string{
					"_id": "u1", "name": "Shopper", "email": "shopper@example.com", "role": "user",
				},
			})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
	})

	mux.HandleFunc("POST /api/users/register", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]string{
				"_id": "u2", "name": req["name"], "email": req["email"], "role": "user",
			},
		})
	})

	mux.HandleFunc("GET /api/books", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"_id": "b1", "title": "Deep Work", "author": "Cal Newport", "price": 400},
			{"_id": "b2", "title": "Atomic Habits", "author": "James Clear", "price": 349},
		})
	})

	mux.HandleFunc("GET /api/books/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"_id": "b1", "title": "Deep Work", "author": "Cal Newport", "price": 400},
		})
	})

	mux.HandleFunc("GET /api/books/b1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"_id": "b1", "title": "Deep Work", "author": "Cal Newport", "price": 400,
		})
	})

	mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]interface{}{})
	})

	mux.HandleFunc("POST /api/orders", func(w http.ResponseWriter, r *http.Request) {
		var order map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&order)
		order["_id"] = "backend-order-1"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(order)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, backendURL string) *config.Config {
	t.Helper()

	hash, err := auth.HashPassword("admin123", bcrypt.MinCost)
	require.NoError(t, err)

	return &config.Config{
		App: config.AppConfig{
			Name:        "bookverse-storefront",
			Version:     "test",
			Environment: "test",
		},
		Backend: config.BackendConfig{
			BaseURL: backendURL,
			Timeout: 5 * time.Second,
		},
		Session: config.SessionConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			CookieName: "bv_session",
			TokenTTL:   time.Hour,
		},
		Admin: config.AdminConfig{
			Email:        "admin@bookverse.com",
			Name:         "Admin User",
			PasswordHash: hash,
		},
		Security: config.SecurityConfig{
			BcryptCost: bcrypt.MinCost,
		},
	}
}

// browser drives the router while carrying cookies between requests,
// the way a real browser session would
type browser struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func newBrowser(t *testing.T, backendURL string) *browser {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig(t, backendURL)
	router := gin.New()
	SetupRoutes(router.Group("/api/v1"), cfg, store.NewMemory(), backend.NewClient(cfg))

	return &browser{t: t, router: router}
}

func (b *browser) do(method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	b.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(b.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)

	if fresh := w.Result().Cookies(); len(fresh) > 0 {
		b.cookies = fresh
	}

	var decoded map[string]interface{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "application/pdf" {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

func (b *browser) login(email, password string) {
	b.t.Helper()
	w, _ := b.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(b.t, http.StatusOK, w.Code)
}

func TestCartRequiresAuth(t *testing.T) {
	b := newBrowser(t, fakeBackend(t).URL)

	w, body := b.do(http.MethodGet, "/api/v1/cart", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required", body["error"])
}

func TestMeAnonymous(t *testing.T) {
	b := newBrowser(t, fakeBackend(t).URL)

	w, body := b.do(http.MethodGet, "/api/v1/auth/me", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["authenticated"])
	assert.Equal(t, false, data["admin"])
}

func TestLoginRejectedSurfacesBackendMessage(t *testing.T) {
	b := newBrowser(t, fakeBackend(t).URL)

	w, body := b.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "shopper@example.com", "password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, body["error"], "Invalid email or password")
}

func TestLoginAndCartFlow(t *testing.T) {
	b := newBrowser(t, fakeBackend(t).URL)
	b.login("shopper@example.com", "secret123")

	w, body := b.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"book_id": "b1"})
	require.Equal(t, http.StatusOK, w.Code)

	totals := body["data"].(map[string]interface{})["totals"].(map[string]interface{})
	assert.Equal(t, "400", totals["subtotal"])
	assert.Equal(t, float64(1), totals["item_count"])

	// Same book again increments quantity and crosses the markdown threshold
	w, body = b.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"book_id": "b1"})
	require.Equal(t, http.StatusOK, w.Code)

	totals = body["data"].(map[string]interface{})["totals"].(map[string]interface{})
	assert.Equal(t, "800", totals["subtotal"])
	assert.Equal(t, "50", totals["discount"])
	assert.Equal(t, "750", totals["final_total"])
	assert.Equal(t, float64(2), totals["total_quantity"])
}

func TestCartPersistsAcrossRequests(t *testing.T) {
	b := newBrowser(t, fakeBackend(t).URL)
	b.login("shopper@example.com", "secret123")

	w, _ := b.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"book_id": "b1"})
	require.Equal(t, http.StatusOK, w.Code)

	w, body := b.do(http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := body["data"].(map[string]interface{})["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "b1", items[0].(map[string]interface{})["product_id"])
}

func TestApplyCoupon(t *testing.T) {
	b := newBrowser(t, fakeBackend(t).URL)
	b.login("shopper@example.com", "secret123")

	b.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"book_id": "b1"})

	w, body := b.do(http.MethodPost, "/api/v1/cart/coupon", map[string]string{"code": "book10"})
	require.Equal(t, http.StatusOK, w.Code)

	totals := body["data"].(map[string]interface{})["totals"].(map[string]interface{})
	assert.Equal(t, "0.1", totals["coupon_rate"])
	assert.Equal(t, "360", totals["final_total"])

	w, body = b.do(http.MethodPost, "/api/v1/cart/coupon", map[string]string{"code": "NOPE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "Invalid coupon")
}

func TestPlaceOrderClearsCart(t *testing.T) {
	b := newBrowser(t, fakeBackend(t).URL)
	b.login("shopper@example.com", "secret123")

	b.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"book_id": "b1"})
	b.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"book_id": "b1"})

	w, body := b.do(http.MethodPost, "/api/v1/checkout", map[string]interface{}{
		"shipping": map[string]string{
			"name": "Shopper", "email": "shopper@example.com",
			"address": "1 Main St", "city": "Springfield", "zip": "12345",
		},
		"payment": map[string]string{"method": "cod"},
		"coupon":  "BOOK20",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	order := body["data"].(map[string]interface{})
	totals := order["totals"].(map[string]interface{})
	assert.Equal(t, "600", totals["final_total"])
	assert.Equal(t, "backend-order-1", order["backend_id"])

	// The live cart was cleared by the order
	w, body = b.do(http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["data"].(map[string]interface{})["items"])

	// The order stays retrievable for the confirmation page
	w, body = b.do(http.MethodGet, "/api/v1/checkout/order", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, order["id"], body["data"].(map[string]interface{})["id"])
}

func TestEmptyCartCheckoutRejected(t *testing.T) {
	b := newBrowser(t, fakeBackend(t).URL)
	b.login("shopper@example.com", "secret123")

	w, _ := b.do(http.MethodPost, "/api/v1/checkout", map[string]interface{}{
		"shipping": map[string]string{
			"name": "Shopper", "email": "shopper@example.com",
			"address": "1 Main St", "city": "Springfield", "zip": "12345",
		},
		"payment": map[string]string{"method": "cod"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminGuard(t *testing.T) {
	b := newBrowser(t, fakeBackend(t).URL)

	// Anonymous sessions are turned away before the authorization check
	w, _ := b.do(http.MethodGet, "/api/v1/admin/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A signed-in shopper is authenticated but not an admin
	b.login("shopper@example.com", "secret123")
	w, body := b.do(http.MethodGet, "/api/v1/admin/dashboard", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin access required", body["error"])
}

func TestAdminLoginLocalCredential(t *testing.T) {
	b := newBrowser(t, fakeBackend(t).URL)

	w, body := b.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "admin@bookverse.com", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["admin"])
	assert.Equal(t, "Admin User", data["display_name"])

	w, _ = b.do(http.MethodGet, "/api/v1/admin/dashboard", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginUnreachableWhileSignedIn(t *testing.T) {
	b := newBrowser(t, fakeBackend(t).URL)
	b.login("shopper@example.com", "secret123")

	w, body := b.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "shopper@example.com", "password": "secret123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Already signed in", body["error"])
}

func TestLogoutEndsSessionAccess(t *testing.T) {
	b := newBrowser(t, fakeBackend(t).URL)
	b.login("shopper@example.com", "secret123")

	w, _ := b.do(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = b.do(http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSearchBooks(t *testing.T) {
	b := newBrowser(t, fakeBackend(t).URL)

	w, body := b.do(http.MethodGet, "/api/v1/books/search?q=deep", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["stale"])
	results := body["data"].([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, "Deep Work", results[0].(map[string]interface{})["title"])
}

func TestSessionsAreIsolated(t *testing.T) {
	backendSrv := fakeBackend(t)

	alice := newBrowser(t, backendSrv.URL)
	alice.login("shopper@example.com", "secret123")
	alice.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"book_id": "b1"})

	// A different browser against the same deployment sees its own state
	bob := newBrowser(t, backendSrv.URL)
	w, _ := bob.do(http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
