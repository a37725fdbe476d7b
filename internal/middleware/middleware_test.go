package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/babychef/backend/internal/middleware"
	"github.com/pageza/babychef/backend/internal/mocks"
	"github.com/pageza/babychef/backend/internal/testhelpers"
	"github.com/pageza/babychef/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func claimsFor(userID uuid.UUID) *types.TokenClaims {
	return &types.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()}}
}

// whoami echoes the authenticated user id
func whoami(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"user_id": ""})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := new(mocks.MockTokenValidator)
	validator.On("ValidateToken", "good-token").Return(claimsFor(userID), nil)
	validator.On("ValidateToken", "bad-token").Return(nil, errors.New("expired"))

	router := gin.New()
	router.GET("/me", middleware.AuthMiddleware(validator), whoami)

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
	}{
		{"bearer token", "Bearer good-token", "", http.StatusOK},
		{"cookie token", "", "good-token", http.StatusOK},
		{"no token", "", "", http.StatusUnauthorized},
		{"invalid token", "Bearer bad-token", "", http.StatusUnauthorized},
		{"malformed header", "Token good-token", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	userID := uuid.New()
	validator := new(mocks.MockTokenValidator)
	validator.On("ValidateToken", "good-token").Return(claimsFor(userID), nil)
	validator.On("ValidateToken", "bad-token").Return(nil, errors.New("bad signature"))

	router := gin.New()
	router.GET("/me", middleware.OptionalAuth(validator), whoami)

	t.Run("anonymous passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id": ""}`, w.Body.String())
	})

	t.Run("valid token sets user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequirePremium(t *testing.T) {
	userID := uuid.New()
	validator := new(mocks.MockTokenValidator)
	validator.On("ValidateToken", "token").Return(claimsFor(userID), nil)

	newRouter := func(premium bool) (*gin.Engine, *bool) {
		checker := new(mocks.MockEntitlementService)
		checker.On("IsPremium", mock.Anything, userID).Return(premium)

		called := false
		router := gin.New()
		router.POST("/photo",
			middleware.AuthMiddleware(validator),
			middleware.RequirePremium(checker),
			func(c *gin.Context) {
				called = true
				c.Status(http.StatusOK)
			})
		return router, &called
	}

	t.Run("free user is denied before the handler runs", func(t *testing.T) {
		router, called := newRouter(false)
		req := httptest.NewRequest(http.MethodPost, "/photo", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error": "premium_required"}`, w.Body.String())
		assert.False(t, *called)
	})

	t.Run("premium user passes", func(t *testing.T) {
		router, called := newRouter(true)
		req := httptest.NewRequest(http.MethodPost, "/photo", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, *called)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		checker := new(mocks.MockEntitlementService)
		router := gin.New()
		router.POST("/photo", middleware.RequirePremium(checker), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/photo", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		checker.AssertNotCalled(t, "IsPremium", mock.Anything, mock.Anything)
	})
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(middleware.Recovery(zap.NewNop()))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "internal_error"}`, w.Body.String())
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RequestLogger(zap.NewNop(), nil))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(middleware.CORS([]string{"http://localhost:3000"}))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOrigins(t *testing.T) {
	router := gin.New()
	require.NotPanics(t, func() {
		router.Use(middleware.CORS(nil))
	})
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := middleware.NewGenerationRateLimiter(nil, 1, zap.NewNop())
	router := gin.New()
	router.POST("/generate", limiter.RateLimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/generate", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_Redis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	client := testhelpers.SetupRedis(t)

	limiter := middleware.NewRateLimiter(client, middleware.RateLimitConfig{
		Window:    time.Hour,
		Limit:     2,
		KeyPrefix: "rate_limit:test",
	}, zap.NewNop())
	router := gin.New()
	router.POST("/generate", limiter.RateLimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/generate", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if i == 0 {
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, strconv.Itoa(1), w.Header().Get("X-RateLimit-Remaining"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	remaining, _, err := limiter.GetRemainingRequests(context.Background(), "ip:10.0.0.1")
	require.NoError(t, err)
	assert.Zero(t, remaining)

	remaining, _, err = limiter.GetRemainingRequests(context.Background(), "ip:10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
}
