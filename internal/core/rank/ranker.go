package rank

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/pkg/common"
)

const (
	dietMatchBonus    = 0.1
	prepTimeBonus     = 0.05
	cuisineMatchBonus = 0.1
)

// FeedbackCounter 排序器需要的回饋查詢能力
type FeedbackCounter interface {
	ListFeedback(userID string) ([]recipe.FeedbackRecord, error)
}

// Ranker 融合規則分數與模型分數的排序器
type Ranker struct {
	model    *Model
	feedback FeedbackCounter
	cfg      config.RankingConfig
}

// NewRanker 建立排序器，model 與 feedback 允許為 nil（退回純規則排序）
func NewRanker(model *Model, feedback FeedbackCounter, cfg config.RankingConfig) *Ranker {
	return &Ranker{
		model:    model,
		feedback: feedback,
		cfg:      cfg,
	}
}

// Rank 為候選食譜打分並由高到低排序
// 模型未就緒或使用者回饋不足時退回規則排序，任何失敗都不對外回報
func (r *Ranker) Rank(recipes []recipe.Recipe, userIngredients []string, userID string, prefs recipe.UserPreferences) []recipe.RankedRecipe {
	if len(recipes) == 0 {
		return []recipe.RankedRecipe{}
	}

	ranked := make([]recipe.RankedRecipe, len(recipes))
	for i := range recipes {
		ranked[i] = recipe.RankedRecipe{
			Recipe:    recipes[i],
			BaseScore: recipe.BaseScore(&recipes[i], userIngredients),
		}
	}

	if r.useModel(userID) {
		r.blendScores(ranked, userID)
	} else {
		r.applyPreferences(ranked, prefs)
	}

	// 同分維持輸入順序
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})
	return ranked
}

// useModel 判斷是否啟用模型分數：模型已訓練且使用者回饋達門檻
func (r *Ranker) useModel(userID string) bool {
	if r.model == nil || !r.model.Fitted() || r.feedback == nil {
		return false
	}
	records, err := r.feedback.ListFeedback(userID)
	if err != nil {
		common.LogWarn("查詢回饋數失敗，改用規則排序",
			zap.String("user_id", userID),
			zap.Error(err))
		return false
	}
	return len(records) >= r.cfg.MinFeedback
}

func (r *Ranker) blendScores(ranked []recipe.RankedRecipe, userID string) {
	for i := range ranked {
		proba, err := r.model.PredictProba(&ranked[i].Recipe)
		if err != nil {
			// 單筆預測失敗時該筆退回規則分數
			ranked[i].FinalScore = ranked[i].BaseScore
			continue
		}
		ranked[i].MLScore = &proba
		ranked[i].FinalScore = r.cfg.BaseWeight*ranked[i].BaseScore + r.cfg.MLWeight*proba
	}
	common.LogDebug("模型分數已融合",
		zap.String("user_id", userID),
		zap.Float64("base_weight", r.cfg.BaseWeight),
		zap.Float64("ml_weight", r.cfg.MLWeight))
}

func (r *Ranker) applyPreferences(ranked []recipe.RankedRecipe, prefs recipe.UserPreferences) {
	for i := range ranked {
		score := ranked[i].BaseScore
		rec := &ranked[i].Recipe

		if prefs.Vegetarian && rec.IsVegetarian() {
			score += dietMatchBonus
		}
		if prefs.Vegan && rec.IsVegan() {
			score += dietMatchBonus
		}
		if prefs.GlutenFree && rec.IsGlutenFree() {
			score += dietMatchBonus
		}
		if prefs.MaxPrepTime > 0 && rec.ReadyInMinutes > 0 && rec.ReadyInMinutes <= prefs.MaxPrepTime {
			score += prepTimeBonus
		}
		if len(prefs.PreferredCuisines) > 0 && matchesCuisine(rec.Cuisines, prefs.PreferredCuisines) {
			score += cuisineMatchBonus
		}

		if score > 1.0 {
			score = 1.0
		}
		ranked[i].FinalScore = score
	}
}

func matchesCuisine(cuisines, preferred []string) bool {
	for _, c := range cuisines {
		for _, p := range preferred {
			if strings.EqualFold(c, p) {
				return true
			}
		}
	}
	return false
}
