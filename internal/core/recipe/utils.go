package recipe

import (
	"sort"
	"strings"
)

// 難度分級
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ShoppingList 彙整食譜中缺少的食材，去重後依字母排序
func ShoppingList(recipes []Recipe) []string {
	seen := make(map[string]struct{})
	for _, r := range recipes {
		for _, ing := range r.MissedIngredients {
			name := strings.ToLower(strings.TrimSpace(ing.Name))
			if name != "" {
				seen[name] = struct{}{}
			}
		}
	}

	items := make([]string, 0, len(seen))
	for name := range seen {
		items = append(items, name)
	}
	sort.Strings(items)
	return items
}

// EstimateDifficulty 依準備時間與食材數估計食譜難度
// 回傳值為小寫，可直接與 UserPreferences.Difficulty 比較
func EstimateDifficulty(r *Recipe) string {
	prepTime := r.ReadyInMinutes
	if prepTime == 0 {
		prepTime = 30
	}
	ingredientCount := len(r.UsedIngredients) + len(r.MissedIngredients)

	score := 0
	if prepTime > 60 {
		score += 2
	} else if prepTime > 30 {
		score++
	}
	if ingredientCount > 15 {
		score += 2
	} else if ingredientCount > 10 {
		score++
	}

	switch {
	case score <= 1:
		return DifficultyEasy
	case score <= 3:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}
