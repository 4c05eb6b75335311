package recipe

// 評分常數：缺料懲罰、健康加成與時間加成的固定係數
const (
	missingPenaltyPerItem = 0.1
	healthBonusWeight     = 0.2
	defaultHealthScore    = 50.0
	defaultReadyMinutes   = 60
	quickRecipeBonus      = 0.2
	mediumRecipeBonus     = 0.1
)

// BaseScore 計算食譜的基礎匹配分數，純函數、無隱藏狀態
// ingredient_score - missing_penalty + health_bonus + time_bonus，夾在 [0,1]
func BaseScore(r *Recipe, userIngredients []string) float64 {
	if len(r.UsedIngredients) == 0 {
		return 0.0
	}

	denom := len(userIngredients)
	if denom < 1 {
		denom = 1
	}
	ingredientScore := float64(len(r.UsedIngredients)) / float64(denom)

	missingPenalty := float64(len(r.MissedIngredients)) * missingPenaltyPerItem

	health := defaultHealthScore
	if r.HealthScore != nil {
		health = *r.HealthScore
	}
	healthBonus := health / 100.0 * healthBonusWeight

	readyTime := r.ReadyInMinutes
	if readyTime == 0 {
		readyTime = defaultReadyMinutes
	}
	timeBonus := 0.0
	if readyTime <= 30 {
		timeBonus = quickRecipeBonus
	} else if readyTime <= 45 {
		timeBonus = mediumRecipeBonus
	}

	score := ingredientScore - missingPenalty + healthBonus + timeBonus
	return clamp(score, 0.0, 1.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
