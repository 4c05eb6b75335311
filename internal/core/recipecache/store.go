package recipecache

import (
	"context"
	"time"

	"fridge-recipes/internal/core/recipe"
)

// Entry 快取條目
// 命中時更新存取統計，但食譜內容本身永不被修改
type Entry struct {
	Recipes      []recipe.Recipe `json:"recipes"`
	CreatedAt    time.Time       `json:"created_at"`
	LastAccessed time.Time       `json:"last_accessed"`
	AccessCount  int             `json:"access_count"`
}

// Stats 快取統計信息
type Stats struct {
	Size      int   `json:"size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Errors    int64 `json:"errors"`
}

// Store 快取儲存介面
// 儲存引擎是協作者：記憶體、Redis 或其他 KV 都可以，
// 讀寫失敗一律視為未命中，由呼叫端走正常抓取路徑
type Store interface {
	// Get 回傳條目；不存在或超過 TTL 視為未命中
	Get(ctx context.Context, key string) (*Entry, bool)
	// Put 覆寫既有條目並觸發淘汰
	Put(ctx context.Context, key string, recipes []recipe.Recipe) error
	// Stats 回傳目前統計
	Stats() Stats
	// Close 釋放資源
	Close() error
}
