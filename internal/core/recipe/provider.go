package recipe

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"sort"
	"strings"
	"time"

	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Provider 食譜供應商介面
// Fetch 可以回傳少於要求的筆數；供應商不可用時必須回傳確定性的
// 佔位食譜，而不是空列表或錯誤
type Provider interface {
	Fetch(ctx context.Context, ingredients []string, opts SearchOptions) ([]Recipe, error)
}

// SpoonacularProvider Spoonacular API 客戶端
type SpoonacularProvider struct {
	config *config.ProviderConfig
	client *resty.Client
}

// NewSpoonacularProvider 創建 Spoonacular 供應商
func NewSpoonacularProvider(cfg *config.ProviderConfig) *SpoonacularProvider {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &SpoonacularProvider{
		config: cfg,
		client: client,
	}
}

// Fetch 根據食材搜尋食譜
// 沒有 API key、非 2xx 回應或逾時都會降級為佔位食譜，單次失敗不重試
func (p *SpoonacularProvider) Fetch(ctx context.Context, ingredients []string, opts SearchOptions) ([]Recipe, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = p.config.MaxResults
	}

	if p.config.APIKey == "" {
		common.LogWarn("未設定 Spoonacular API key，使用佔位食譜")
		return PlaceholderRecipes(ingredients, maxResults), nil
	}

	start := time.Now()
	recipes, err := p.fetchByIngredients(ctx, ingredients, maxResults, opts)
	common.LogProviderCall(len(ingredients), time.Since(start), err)
	if err != nil {
		// 降級路徑：對呼叫端靜默，僅記錄日誌
		return PlaceholderRecipes(ingredients, maxResults), nil
	}

	return recipes, nil
}

func (p *SpoonacularProvider) fetchByIngredients(ctx context.Context, ingredients []string, maxResults int, opts SearchOptions) ([]Recipe, error) {
	req := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apiKey":       p.config.APIKey,
			"ingredients":  strings.Join(ingredients, ","),
			"number":       fmt.Sprintf("%d", maxResults),
			"limitLicense": "true",
			"ranking":      "2", // 最大化使用到的食材
			"ignorePantry": "true",
		})
	if opts.Cuisine != "" {
		req.SetQueryParam("cuisine", strings.ToLower(opts.Cuisine))
	}
	if opts.MealType != "" {
		req.SetQueryParam("type", strings.ToLower(opts.MealType))
	}

	var recipes []Recipe
	resp, err := req.SetResult(&recipes).Get("/findByIngredients")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", common.ErrProviderUnavailable, resp.StatusCode())
	}

	// 補充每道食譜的詳細資訊，單筆失敗不影響整體
	for i := range recipes {
		if err := p.enhanceRecipe(ctx, &recipes[i]); err != nil {
			common.LogWarn("補充食譜詳細資訊失敗",
				zap.Int("recipe_id", recipes[i].ID),
				zap.Error(err),
			)
		}
	}

	return recipes, nil
}

// enhanceRecipe 取得單一食譜的補充資訊（時間、份量、摘要、健康分數）
func (p *SpoonacularProvider) enhanceRecipe(ctx context.Context, r *Recipe) error {
	var info struct {
		SourceURL      string   `json:"sourceUrl"`
		ReadyInMinutes int      `json:"readyInMinutes"`
		Servings       int      `json:"servings"`
		Summary        string   `json:"summary"`
		HealthScore    *float64 `json:"healthScore"`
		Diets          []string `json:"diets"`
		Cuisines       []string `json:"cuisines"`
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apiKey":           p.config.APIKey,
			"includeNutrition": "false",
		}).
		SetResult(&info).
		Get(fmt.Sprintf("/%d/information", r.ID))
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("information API returned status %d", resp.StatusCode())
	}

	r.SourceURL = info.SourceURL
	r.ReadyInMinutes = info.ReadyInMinutes
	r.Servings = info.Servings
	r.Summary = info.Summary
	r.HealthScore = info.HealthScore
	if len(info.Diets) > 0 {
		r.Diets = info.Diets
	}
	if len(info.Cuisines) > 0 {
		r.Cuisines = info.Cuisines
	}
	return nil
}

// placeholderTemplate 佔位食譜模板
type placeholderTemplate struct {
	title     string
	image     string
	missed    []string
	readyIn   int
	servings  int
	health    float64
	summary   string
	usedCount int
}

var placeholderTemplates = []placeholderTemplate{
	{
		title:     "Quick Veggie Scramble",
		image:     "https://images.unsplash.com/photo-1525351484163-7529414344d8?w=300",
		missed:    []string{"salt", "pepper"},
		readyIn:   15,
		servings:  2,
		health:    62,
		summary:   "A quick and easy scramble using your available ingredients.",
		usedCount: 3,
	},
	{
		title:     "Simple Stir Fry",
		image:     "https://images.unsplash.com/photo-1512058564366-18510be2db19?w=300",
		missed:    []string{"soy sauce", "garlic"},
		readyIn:   20,
		servings:  3,
		health:    55,
		summary:   "A delicious stir fry that makes great use of your ingredients.",
		usedCount: 4,
	},
	{
		title:     "One-Pot Wonder",
		image:     "https://images.unsplash.com/photo-1547592180-85f173990554?w=300",
		missed:    []string{"broth", "herbs"},
		readyIn:   30,
		servings:  4,
		health:    48,
		summary:   "A hearty one-pot meal perfect for using up ingredients.",
		usedCount: 2,
	},
}

// PlaceholderRecipes 生成確定性的佔位食譜
// 以排序後的食材列表雜湊作為種子，相同查詢必得相同結果
func PlaceholderRecipes(ingredients []string, maxResults int) []Recipe {
	sorted := make([]string, len(ingredients))
	copy(sorted, ingredients)
	sort.Strings(sorted)

	h := fnv.New32a()
	h.Write([]byte(strings.Join(sorted, ",")))
	seed := h.Sum32()

	n := len(placeholderTemplates)
	if maxResults < n {
		n = maxResults
	}
	if n <= 0 {
		n = 1
	}

	recipes := make([]Recipe, 0, n)
	for i := 0; i < n && i < len(placeholderTemplates); i++ {
		tpl := placeholderTemplates[i]

		used := make([]RecipeIngredient, 0, tpl.usedCount)
		for j := 0; j < tpl.usedCount && j < len(ingredients); j++ {
			used = append(used, RecipeIngredient{Name: ingredients[j]})
		}
		missed := make([]RecipeIngredient, 0, len(tpl.missed))
		for _, m := range tpl.missed {
			missed = append(missed, RecipeIngredient{Name: m})
		}

		health := tpl.health
		recipes = append(recipes, Recipe{
			ID:                int(seed%100000)*10 + i + 1,
			Title:             tpl.title,
			Image:             tpl.image,
			UsedIngredients:   used,
			MissedIngredients: missed,
			ReadyInMinutes:    tpl.readyIn,
			Servings:          tpl.servings,
			HealthScore:       &health,
			SourceURL:         fmt.Sprintf("https://example.com/recipe/%d", int(seed%100000)*10+i+1),
			Summary:           tpl.summary,
			Diets:             []string{},
			Cuisines:          []string{},
		})
	}

	return recipes
}
