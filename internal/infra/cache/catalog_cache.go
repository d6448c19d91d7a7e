package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cafepos/internal/domain/model"
	"cafepos/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyCategories       = "catalog:categories"
	keyMenuAll          = "catalog:menu:all"
	keyMenuCategoryPref = "catalog:menu:category:"
	catalogTTL          = 5 * time.Minute
)

// CachedCatalogReader はカタログ読み取りの前にRedisを挟む。
// Redisが落ちていてもDBから返す。
type CachedCatalogReader struct {
	realRepo repository.CatalogReader
	redis    *redis.Client
	ttl      time.Duration
	log      *zap.Logger
}

func NewCachedCatalogReader(realRepo repository.CatalogReader, client *redis.Client, log *zap.Logger) *CachedCatalogReader {
	return &CachedCatalogReader{
		realRepo: realRepo,
		redis:    client,
		ttl:      catalogTTL,
		log:      log,
	}
}

func (c *CachedCatalogReader) ListActiveCategories(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if c.get(ctx, keyCategories, &cached) {
		return cached, nil
	}

	cats, err := c.realRepo.ListActiveCategories(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, keyCategories, cats)
	return cats, nil
}

func (c *CachedCatalogReader) ListAvailableMenuItems(ctx context.Context, categoryID string) ([]model.MenuItem, error) {
	key := keyMenuAll
	if categoryID != "" {
		key = keyMenuCategoryPref + categoryID
	}

	var cached []model.MenuItem
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	items, err := c.realRepo.ListAvailableMenuItems(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, items)
	return items, nil
}

// InvalidateCatalog はカタログのキーを全部消す。
func (c *CachedCatalogReader) InvalidateCatalog(ctx context.Context) error {
	keys := []string{keyCategories, keyMenuAll}

	iter := c.redis.Scan(ctx, 0, keyMenuCategoryPref+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	return c.redis.Del(ctx, keys...).Err()
}

// ヒットしたらtrue。壊れたデータやRedisエラーはミス扱い。
func (c *CachedCatalogReader) get(ctx context.Context, key string, dst any) bool {
	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		if err := json.Unmarshal(data, dst); err != nil {
			c.log.Warn("failed to unmarshal cached catalog (continuing with DB)", zap.String("key", key), zap.Error(err))
			return false
		}
		return true

	case errors.Is(err, redis.Nil):
		return false

	default:
		c.log.Warn("redis error (continuing with DB)", zap.String("key", key), zap.Error(err))
		return false
	}
}

func (c *CachedCatalogReader) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("failed to marshal catalog", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("failed to cache catalog", zap.String("key", key), zap.Error(err))
	}
}

// キャッシュを使わないとき用
type NoopInvalidator struct{}

func (NoopInvalidator) InvalidateCatalog(context.Context) error { return nil }
