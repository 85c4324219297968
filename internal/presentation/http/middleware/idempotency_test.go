package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/restropos-api/internal/storage"
)

func newIdempotentRouter(t *testing.T) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	guard := NewIdempotencyGuard(storage.NewMemory())
	calls := 0

	router := gin.New()
	router.POST("/checkout", guard.Middleware(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"order": calls})
	})
	router.POST("/fail", guard.Middleware(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	})
	return router, &calls
}

func post(router *gin.Engine, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	router, calls := newIdempotentRouter(t)

	first := post(router, "/checkout", "key-1")
	require.Equal(t, http.StatusCreated, first.Code)

	second := post(router, "/checkout", "key-1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))

	// the handler ran only once
	assert.Equal(t, 1, *calls)
}

func TestIdempotencyDistinctKeysRunSeparately(t *testing.T) {
	router, calls := newIdempotentRouter(t)

	post(router, "/checkout", "key-1")
	post(router, "/checkout", "key-2")

	assert.Equal(t, 2, *calls)
}

func TestIdempotencyWithoutKeyIsPassthrough(t *testing.T) {
	router, calls := newIdempotentRouter(t)

	post(router, "/checkout", "")
	post(router, "/checkout", "")

	assert.Equal(t, 2, *calls)
}

func TestIdempotencyDoesNotCacheFailures(t *testing.T) {
	router, calls := newIdempotentRouter(t)

	first := post(router, "/fail", "key-1")
	require.Equal(t, http.StatusBadRequest, first.Code)

	// a failed attempt can be retried with the same key
	second := post(router, "/fail", "key-1")
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Empty(t, second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 2, *calls)
}
