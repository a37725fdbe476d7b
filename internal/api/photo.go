package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/babychef/backend/internal/middleware"
	"github.com/pageza/babychef/backend/internal/service"
	"github.com/pageza/babychef/backend/internal/types"
)

// PhotoFormField is the multipart field carrying the uploaded photo
const PhotoFormField = "photo"

// PhotoHandler serves photo upload and photo-based generation
type PhotoHandler struct {
	recipes        service.IRecipeService
	maxUploadBytes int64
	log            *zap.Logger
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(recipes service.IRecipeService, maxUploadBytes int64, log *zap.Logger) *PhotoHandler {
	return &PhotoHandler{
		recipes:        recipes,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// UploadPhoto handles POST /photos
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	// leave room for the multipart envelope
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)

	fileHeader, err := c.FormFile(PhotoFormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo_too_large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": "photo file is required"})
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo_too_large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": "unreadable photo"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": "unreadable photo"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	storagePath, err := h.recipes.UploadPhoto(c.Request.Context(), userID, fileHeader.Filename, contentType, data)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"storagePath": storagePath})
}

// GenerateFromPhoto handles POST /recipes/from-photo
func (h *PhotoHandler) GenerateFromPhoto(c *gin.Context) {
	var req types.PhotoRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.recipes.GenerateFromPhoto(c.Request.Context(), userID, req.AgeRange, req.StoragePath)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
