package rank

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fridge-recipes/internal/core/ingredient"
	"fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/core/recipecache"
	"fridge-recipes/internal/pkg/common"
)

// PreferenceLoader 管線需要的偏好讀取能力
type PreferenceLoader interface {
	LoadPreferences(userID string) (recipe.UserPreferences, error)
}

// SearchRecorder 管線需要的搜尋歷史寫入能力
type SearchRecorder interface {
	RecordSearch(userID string, ingredients []string, recipesFound int) error
}

// Pipeline 食材文字到排序結果的完整搜尋管線
type Pipeline struct {
	normalizer  *ingredient.Normalizer
	cache       recipecache.Store
	provider    recipe.Provider
	ranker      *Ranker
	preferences PreferenceLoader
	history     SearchRecorder
}

// NewPipeline 組裝搜尋管線；cache、preferences、history 允許為 nil
func NewPipeline(
	normalizer *ingredient.Normalizer,
	cache recipecache.Store,
	provider recipe.Provider,
	ranker *Ranker,
	preferences PreferenceLoader,
	history SearchRecorder,
) *Pipeline {
	return &Pipeline{
		normalizer:  normalizer,
		cache:       cache,
		provider:    provider,
		ranker:      ranker,
		preferences: preferences,
		history:     history,
	}
}

// Search 執行搜尋：正規化食材、查快取、必要時呼叫供應端、打分排序
// 食材正規化後為空時直接回傳空結果，不觸發任何後端呼叫
func (p *Pipeline) Search(ctx context.Context, userID, rawText string, opts recipe.SearchOptions) ([]recipe.RankedRecipe, error) {
	start := time.Now()

	ingredients := p.normalizer.Normalize(rawText)
	if len(ingredients) == 0 {
		common.LogInfo("食材清單為空，略過搜尋", zap.String("user_id", userID))
		return []recipe.RankedRecipe{}, nil
	}

	recipes, fromCache := p.lookup(ctx, ingredients, opts)
	if !fromCache {
		fetched, err := p.provider.Fetch(ctx, ingredients, opts)
		if err != nil {
			// Fetch 內部已退回預置食譜，理論上不會走到這裡
			common.LogError("取得食譜失敗", zap.Error(err))
			return []recipe.RankedRecipe{}, nil
		}
		recipes = fetched
		p.storeCache(ctx, ingredients, opts, recipes)
	}

	prefs := recipe.DefaultPreferences()
	if p.preferences != nil {
		loaded, err := p.preferences.LoadPreferences(userID)
		if err != nil {
			common.LogWarn("讀取偏好失敗，改用預設偏好",
				zap.String("user_id", userID),
				zap.Error(err))
		} else {
			prefs = loaded
		}
	}

	ranked := p.ranker.Rank(recipes, ingredients, userID, prefs)

	if p.history != nil {
		if err := p.history.RecordSearch(userID, ingredients, len(ranked)); err != nil {
			common.LogWarn("寫入搜尋歷史失敗",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}

	common.LogInfo("搜尋完成",
		zap.String("user_id", userID),
		zap.Int("ingredients", len(ingredients)),
		zap.Int("recipes", len(ranked)),
		zap.Bool("from_cache", fromCache),
		zap.Duration("duration", time.Since(start)))
	return ranked, nil
}

func (p *Pipeline) lookup(ctx context.Context, ingredients []string, opts recipe.SearchOptions) ([]recipe.Recipe, bool) {
	if p.cache == nil {
		return nil, false
	}
	key := recipecache.Key(ingredients, opts)
	// 命中與未命中的日誌由各快取實作負責
	entry, ok := p.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	return entry.Recipes, true
}

func (p *Pipeline) storeCache(ctx context.Context, ingredients []string, opts recipe.SearchOptions, recipes []recipe.Recipe) {
	if p.cache == nil || len(recipes) == 0 {
		return
	}
	key := recipecache.Key(ingredients, opts)
	if err := p.cache.Put(ctx, key, recipes); err != nil {
		common.LogWarn("寫入快取失敗",
			zap.String("key", key),
			zap.Error(err))
	}
}
