package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/babychef/backend/internal/service"
)

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var (
		parseErr   *service.ParseError
		storageErr *service.StorageAccessError
		persistErr *service.PersistenceError
		modelErr   *service.ModelError
	)

	switch {
	case errors.Is(err, service.ErrMissingUser):
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id_required"})
	case errors.Is(err, service.ErrForeignPhoto):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, service.ErrUnsupportedPhoto):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported_photo", "details": err.Error()})
	case errors.Is(err, service.ErrUnauthorizedSignal):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_signature"})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "parse_error", "raw": parseErr.Raw})
	case errors.As(err, &storageErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage_error"})
	case errors.As(err, &persistErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": persistErr.Error()})
	case errors.As(err, &modelErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "model_error"})
	default:
		log.Error("Unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
	_ = c.Error(err)
}

// bindError answers a request whose body failed validation
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
}
