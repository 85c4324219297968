package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/restropos-api/internal/application/service"
	"github.com/sangkips/restropos-api/internal/domain/entity"
	"github.com/sangkips/restropos-api/internal/presentation/http/middleware"
	"github.com/sangkips/restropos-api/internal/storage"
	"github.com/sangkips/restropos-api/pkg/utils"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemory()
	settings := service.NewSettingsService(store)
	require.NoError(t, settings.EnsureDefaults(t.Context()))

	sessions := utils.NewSessionManager("test-secret", time.Hour)
	h := NewAuthHandler(settings, sessions)

	router := gin.New()
	router.POST("/auth/pin", h.Login)

	admin := router.Group("", middleware.AdminAuth(sessions))
	admin.POST("/auth/pin/change", h.ChangePin)
	return router
}

func login(t *testing.T, router *gin.Engine, pin string) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader(`{"pin":"` + pin + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/pin", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPinLogin(t *testing.T) {
	router := newAuthRouter(t)

	t.Run("wrong pin is unauthorized", func(t *testing.T) {
		w := login(t, router, "0000")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("correct pin issues a session token", func(t *testing.T) {
		w := login(t, router, entity.DefaultAdminPIN)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Data.Token)
	})
}

func TestAdminGate(t *testing.T) {
	router := newAuthRouter(t)

	changeBody := `{"currentPin":"1234","newPin":"5678"}`

	t.Run("rejects requests without a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/pin/change", strings.NewReader(changeBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepts requests with a session token", func(t *testing.T) {
		loginResp := login(t, router, entity.DefaultAdminPIN)
		require.Equal(t, http.StatusOK, loginResp.Code)

		var resp struct {
			Data struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(loginResp.Body.Bytes(), &resp))

		req := httptest.NewRequest(http.MethodPost, "/auth/pin/change", strings.NewReader(changeBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+resp.Data.Token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		// the old pin no longer logs in
		assert.Equal(t, http.StatusUnauthorized, login(t, router, entity.DefaultAdminPIN).Code)
		assert.Equal(t, http.StatusOK, login(t, router, "5678").Code)
	})
}
