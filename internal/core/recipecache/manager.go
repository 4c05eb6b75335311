package recipecache

import (
	"context"
	"sort"
	"sync"
	"time"

	"fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager 記憶體快取管理器
type Manager struct {
	config *config.CacheConfig
	mu     sync.RWMutex
	store  map[string]*Entry
	stats  Stats

	stopCleanup chan struct{}
}

// NewManager 創建新的快取管理器
func NewManager(cfg *config.CacheConfig) *Manager {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}

	m := &Manager{
		config:      cfg,
		store:       make(map[string]*Entry),
		stopCleanup: make(chan struct{}),
	}

	// 啟動清理過期快取的協程
	go m.startCleanup()

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.MaxSize),
		zap.Duration("存活時間", cfg.TTL),
		zap.Duration("清理間隔", cfg.CleanupInterval),
	)

	return m
}

// Get 獲取快取條目
// 命中時更新存取統計（可觀察的副作用），但不改動食譜內容
func (m *Manager) Get(ctx context.Context, key string) (*Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.Misses++
		common.LogCacheMiss("recipes", key)
		return nil, false
	}

	// 檢查是否過期
	if time.Since(entry.CreatedAt) > m.config.TTL {
		delete(m.store, key)
		m.stats.Evictions++
		m.stats.Misses++
		common.LogInfo("快取已過期", zap.String("鍵", key))
		return nil, false
	}

	entry.LastAccessed = time.Now()
	entry.AccessCount++
	m.stats.Hits++

	common.LogCacheHit("recipes", key)

	// 回傳副本，避免呼叫端改動快取內的食譜
	copied := *entry
	copied.Recipes = make([]recipe.Recipe, len(entry.Recipes))
	copy(copied.Recipes, entry.Recipes)
	return &copied, true
}

// Put 設置快取條目，總是覆寫既有值，寫入後執行淘汰
func (m *Manager) Put(ctx context.Context, key string, recipes []recipe.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.store[key] = &Entry{
		Recipes:      recipes,
		CreatedAt:    now,
		LastAccessed: now,
		AccessCount:  0,
	}

	// 先清過期，再依容量淘汰最舊的
	evicted := m.evictExpired()
	evicted += m.evictOldest()
	if evicted > 0 {
		common.LogInfo("快取淘汰執行",
			zap.Int("淘汰數量", evicted),
			zap.Int("目前容量", len(m.store)),
		)
	}

	common.LogInfo("快取已儲存",
		zap.String("鍵", key),
		zap.Int("食譜數", len(recipes)),
	)

	return nil
}

// evictExpired 移除所有過期條目，呼叫端必須持有鎖
func (m *Manager) evictExpired() int {
	now := time.Now()
	count := 0
	for key, entry := range m.store {
		if now.Sub(entry.CreatedAt) > m.config.TTL {
			delete(m.store, key)
			m.stats.Evictions++
			count++
		}
	}
	return count
}

// evictOldest 超出容量上限時移除建立時間最舊的條目，呼叫端必須持有鎖
func (m *Manager) evictOldest() int {
	if len(m.store) <= m.config.MaxSize {
		return 0
	}

	type aged struct {
		key       string
		createdAt time.Time
	}
	entries := make([]aged, 0, len(m.store))
	for key, entry := range m.store {
		entries = append(entries, aged{key: key, createdAt: entry.CreatedAt})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].createdAt.Before(entries[j].createdAt)
	})

	count := 0
	for _, e := range entries {
		if len(m.store) <= m.config.MaxSize {
			break
		}
		delete(m.store, e.key)
		m.stats.Evictions++
		count++
	}
	return count
}

// Stats 獲取快取統計信息
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := m.stats
	stats.Size = len(m.store)
	return stats
}

// startCleanup 啟動清理過期快取的協程
func (m *Manager) startCleanup() {
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			count := m.evictExpired()
			m.mu.Unlock()
			if count > 0 {
				common.LogInfo("清理過期快取",
					zap.Int("數量", count),
				)
			}
		case <-m.stopCleanup:
			return
		}
	}
}

// Close 關閉快取管理器
func (m *Manager) Close() error {
	close(m.stopCleanup)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]*Entry)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.Hits),
		zap.Int64("未命中次數", m.stats.Misses),
		zap.Int64("淘汰次數", m.stats.Evictions),
	)
	return nil
}
