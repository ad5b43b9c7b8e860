// internal/interfaces/http/middleware/session_test.go
package middleware

import (
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
)

func sessionTestConfig() *config.Config {
	return &config.Config{
		Backend: config.BackendConfig{
			BaseURL: "http://localhost:0",
			Timeout: time.Second,
		},
		Session: config.SessionConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			CookieName: "bv_session",
			TokenTTL:   time.Hour,
		},
	}
}

func sessionTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(cfg, store.NewMemory(), backend.NewClient(cfg)))
	r.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": SessionIDFromContext(c)})
	})
	return r
}

func TestSessionIssuesCookie(t *testing.T) {
	router := sessionTestRouter(sessionTestConfig())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "bv_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionSurvivesRoundTrip(t *testing.T) {
	router := sessionTestRouter(sessionTestConfig())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	cookie := w.Result().Cookies()[0]
	first := w.Body.String()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Same cookie, same session; no replacement cookie is issued
	assert.Equal(t, first, w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestTamperedCookieStartsFreshSession(t *testing.T) {
	router := sessionTestRouter(sessionTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "bv_session", Value: "not-a-signed-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, w.Result().Cookies(), 1, "a replacement cookie must be issued")
	assert.NotEqual(t, "not-a-signed-token", w.Result().Cookies()[0].Value)
}

func TestRequestIDHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// A caller-supplied id is preserved
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "trace-42", w.Header().Get("X-Request-ID"))
}
