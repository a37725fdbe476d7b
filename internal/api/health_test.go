package api_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/babychef/backend/internal/api"
	"github.com/pageza/babychef/backend/internal/testhelpers"
)

func TestHealth(t *testing.T) {
	t.Run("no dependencies", func(t *testing.T) {
		router := gin.New()
		router.GET("/health", api.NewHealthHandler(nil, nil).Health)

		w := doJSON(t, router, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", decodeBody(t, w)["status"])
	})

	t.Run("database reachable", func(t *testing.T) {
		db := testhelpers.SetupSQLiteDB(t)
		router := gin.New()
		router.GET("/health", api.NewHealthHandler(db, nil).Health)

		w := doJSON(t, router, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		checks := decodeBody(t, w)["checks"].(map[string]interface{})
		assert.Equal(t, "ok", checks["database"])
	})
}
