package recipecache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore Redis 快取儲存
// TTL 交給 Redis 處理；容量淘汰由 maxmemory 策略負責，這裡不重複實作
type RedisStore struct {
	client *redis.Client
	config *config.CacheConfig

	hits   int64
	misses int64
	errors int64
}

// NewRedisStore 創建 Redis 快取儲存
func NewRedisStore(cfg *config.CacheConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 快取已連線", zap.String("addr", cfg.RedisAddr))

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取快取條目，任何讀取錯誤一律視為未命中
func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, bool) {
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			atomic.AddInt64(&s.errors, 1)
			common.LogWarn("Redis 讀取失敗，視為未命中", zap.Error(err))
		}
		atomic.AddInt64(&s.misses, 1)
		common.LogCacheMiss("recipes:redis", key)
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		atomic.AddInt64(&s.errors, 1)
		atomic.AddInt64(&s.misses, 1)
		common.LogWarn("Redis 快取解析失敗", zap.Error(err))
		return nil, false
	}

	// 存取計數放在獨立鍵，用 INCR 原子遞增，
	// 避免整包讀改寫在並發命中時遺失更新
	entry.LastAccessed = time.Now()
	if count, err := s.client.Incr(ctx, s.countKey(key)).Result(); err != nil {
		atomic.AddInt64(&s.errors, 1)
		common.LogWarn("Redis 存取計數更新失敗", zap.Error(err))
	} else {
		entry.AccessCount = int(count)
	}

	atomic.AddInt64(&s.hits, 1)
	common.LogCacheHit("recipes:redis", key)
	return &entry, true
}

// Put 設置快取條目
func (s *RedisStore) Put(ctx context.Context, key string, recipes []recipe.Recipe) error {
	now := time.Now()
	entry := Entry{
		Recipes:      recipes,
		CreatedAt:    now,
		LastAccessed: now,
		AccessCount:  0,
	}

	data, err := json.Marshal(&entry)
	if err != nil {
		atomic.AddInt64(&s.errors, 1)
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := s.client.Set(ctx, s.redisKey(key), data, s.config.TTL).Err(); err != nil {
		atomic.AddInt64(&s.errors, 1)
		return fmt.Errorf("failed to set cache: %w", err)
	}

	// 新條目的計數歸零，TTL 與本體一致
	if err := s.client.Set(ctx, s.countKey(key), 0, s.config.TTL).Err(); err != nil {
		atomic.AddInt64(&s.errors, 1)
		common.LogWarn("Redis 存取計數重設失敗", zap.Error(err))
	}

	return nil
}

// Stats 獲取快取統計信息
func (s *RedisStore) Stats() Stats {
	return Stats{
		Hits:   atomic.LoadInt64(&s.hits),
		Misses: atomic.LoadInt64(&s.misses),
		Errors: atomic.LoadInt64(&s.errors),
	}
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) redisKey(key string) string {
	return "recipes:search:" + key
}

func (s *RedisStore) countKey(key string) string {
	return s.redisKey(key) + ":hits"
}
