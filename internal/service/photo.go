package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/babychef/backend/internal/model"
	"github.com/pageza/babychef/backend/internal/types"
)

// PhotoSettings bounds photo uploads and their lifetime
type PhotoSettings struct {
	SignedURLTTL   time.Duration
	MaxUploadBytes int64
}

func (p PhotoSettings) withDefaults() PhotoSettings {
	if p.SignedURLTTL <= 0 {
		p.SignedURLTTL = time.Hour
	}
	if p.MaxUploadBytes <= 0 {
		p.MaxUploadBytes = 10 << 20
	}
	return p
}

// photoExtensions maps accepted content types to the stored file extension
var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// UploadPhoto stores a photo under the user's prefix and returns its storage path
func (s *RecipeService) UploadPhoto(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (string, error) {
	if userID == uuid.Nil {
		return "", ErrMissingUser
	}

	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := photoExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: content type %q", ErrUnsupportedPhoto, contentType)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrUnsupportedPhoto)
	}
	if int64(len(data)) > s.settings.MaxUploadBytes {
		return "", fmt.Errorf("%w: larger than %d bytes", ErrUnsupportedPhoto, s.settings.MaxUploadBytes)
	}

	storagePath := fmt.Sprintf("%s/%s%s", userID, uuid.New(), ext)
	if err := s.objects.Upload(ctx, storagePath, data, contentType); err != nil {
		s.log.Error("Failed to upload photo",
			zap.String("user_id", userID.String()),
			zap.String("storage_path", storagePath),
			zap.String("filename", filename),
			zap.Error(err))
		return "", &StorageAccessError{Path: storagePath, Err: err}
	}

	s.log.Info("Photo uploaded",
		zap.String("user_id", userID.String()),
		zap.String("storage_path", storagePath),
		zap.Int("bytes", len(data)))
	return storagePath, nil
}

// GenerateFromPhoto detects food on a stored photo and proposes three recipes
func (s *RecipeService) GenerateFromPhoto(ctx context.Context, userID uuid.UUID, ageRange, storagePath string) (*types.PhotoProposals, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	if !ownsPhoto(userID, storagePath) {
		return nil, ErrForeignPhoto
	}

	log := s.log.With(
		zap.String("user_id", userID.String()),
		zap.String("age_range", ageRange),
		zap.String("storage_path", storagePath))

	signedURL, err := s.objects.GeneratePresignedURL(ctx, storagePath, s.settings.SignedURLTTL)
	if err != nil {
		log.Error("Failed to sign photo URL", zap.Error(err))
		return nil, &StorageAccessError{Path: storagePath, Err: err}
	}

	raw, err := s.llm.CompleteVision(ctx, BuildVisionPrompt(ageRange), signedURL)
	if err != nil {
		log.Error("Vision model call failed", zap.Error(err))
		return nil, &ModelError{Err: err}
	}

	result, err := ParseVision(raw)
	if err != nil {
		s.metrics.RecordParseFailure(KindVision)
		log.Warn("Model returned unparseable photo analysis", zap.Error(err))
		return nil, err
	}

	photo := &model.FridgePhoto{
		UserID:        userID,
		StoragePath:   storagePath,
		DetectedItems: model.DetectedItems(result.DetectedItems),
	}
	if _, err := s.store.CreateFridgePhoto(ctx, photo); err != nil {
		log.Error("Failed to persist photo analysis", zap.Error(err))
		return nil, &PersistenceError{Err: err}
	}

	if s.cleanup != nil {
		if err := s.cleanup.Schedule(ctx, storagePath); err != nil {
			log.Warn("Failed to schedule photo cleanup", zap.Error(err))
		}
	}

	log.Info("Photo analysed",
		zap.Int("detected", len(result.DetectedItems)),
		zap.Int("proposals", len(result.Recipes)))

	return &types.PhotoProposals{
		Proposals: result.Recipes,
		Detected:  result.DetectedItems,
	}, nil
}

// ownsPhoto reports whether storagePath lies under the user's prefix
func ownsPhoto(userID uuid.UUID, storagePath string) bool {
	if storagePath == "" || strings.Contains(storagePath, "..") {
		return false
	}
	clean := path.Clean(storagePath)
	return clean == storagePath && strings.HasPrefix(clean, userID.String()+"/")
}

// IsClientPhotoError reports whether err was caused by the uploaded file itself
func IsClientPhotoError(err error) bool {
	return errors.Is(err, ErrUnsupportedPhoto)
}
