package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/babychef/backend/internal/metrics"
)

// CleanupKey is the Redis sorted set holding photos due for deletion
const CleanupKey = "photo_cleanup"

const sweepBatchSize = 100

// PhotoJanitor deletes stored photos once their retention window has passed.
// A janitor without Redis is disabled and schedules nothing.
type PhotoJanitor struct {
	redis     *redis.Client
	objects   ObjectStore
	retention time.Duration
	interval  time.Duration
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

var _ CleanupScheduler = (*PhotoJanitor)(nil)

// NewPhotoJanitor creates a new PhotoJanitor
func NewPhotoJanitor(client *redis.Client, objects ObjectStore, retention, interval time.Duration, m *metrics.Metrics, log *zap.Logger) *PhotoJanitor {
	if retention == 0 {
		retention = time.Hour
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &PhotoJanitor{
		redis:     client,
		objects:   objects,
		retention: retention,
		interval:  interval,
		metrics:   m,
		log:       log,
		now:       time.Now,
	}
}

// Enabled reports whether the janitor has a Redis backend
func (j *PhotoJanitor) Enabled() bool {
	return j.redis != nil
}

// Schedule queues a photo for deletion after the retention window
func (j *PhotoJanitor) Schedule(ctx context.Context, path string) error {
	if !j.Enabled() {
		return nil
	}
	due := j.now().Add(j.retention).Unix()
	if err := j.redis.ZAdd(ctx, CleanupKey, redis.Z{Score: float64(due), Member: path}).Err(); err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}
	return nil
}

// Sweep deletes every photo that is due. Entries are removed from the queue
// whether or not the delete succeeded. It returns the number processed.
func (j *PhotoJanitor) Sweep(ctx context.Context) (int, error) {
	if !j.Enabled() {
		return 0, nil
	}

	paths, err := j.redis.ZRangeByScore(ctx, CleanupKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(j.now().Unix(), 10),
		Count: sweepBatchSize,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read cleanup queue: %w", err)
	}

	for _, path := range paths {
		delErr := j.objects.Delete(ctx, path)
		j.metrics.RecordPhotoCleanup(delErr)
		if delErr != nil {
			j.log.Warn("Failed to delete expired photo", zap.String("storage_path", path), zap.Error(delErr))
		}
		if err := j.redis.ZRem(ctx, CleanupKey, path).Err(); err != nil {
			return 0, fmt.Errorf("failed to dequeue %s: %w", path, err)
		}
	}
	return len(paths), nil
}

// Run sweeps on every tick until ctx is cancelled
func (j *PhotoJanitor) Run(ctx context.Context) {
	if !j.Enabled() {
		j.log.Info("Photo janitor disabled, no Redis configured")
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.log.Info("Photo janitor started", zap.Duration("interval", j.interval), zap.Duration("retention", j.retention))
	for {
		select {
		case <-ctx.Done():
			j.log.Info("Photo janitor stopped")
			return
		case <-ticker.C:
			n, err := j.Sweep(ctx)
			if err != nil {
				j.log.Error("Photo cleanup sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				j.log.Info("Expired photos removed", zap.Int("count", n))
			}
		}
	}
}
