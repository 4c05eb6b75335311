package recipecache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"fridge-recipes/internal/core/recipe"
)

// keyPayload 參與雜湊的搜尋參數
// 食材在編碼前排序，相同集合的任何排列都會得到同一個鍵
type keyPayload struct {
	Ingredients []string `json:"ingredients"`
	MaxResults  int      `json:"max_results"`
	MealType    string   `json:"meal_type"`
	Cuisine     string   `json:"cuisine"`
	Diet        string   `json:"diet"`
}

// Key 由正規化食材與搜尋選項導出穩定的快取鍵
func Key(ingredients []string, opts recipe.SearchOptions) string {
	sorted := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		sorted = append(sorted, strings.ToLower(strings.TrimSpace(ing)))
	}
	sort.Strings(sorted)

	payload := keyPayload{
		Ingredients: sorted,
		MaxResults:  opts.MaxResults,
		MealType:    strings.ToLower(opts.MealType),
		Cuisine:     strings.ToLower(opts.Cuisine),
		Diet:        strings.ToLower(opts.Diet),
	}

	// 結構體欄位順序固定，序列化結果對相同輸入必然一致
	data, _ := json.Marshal(payload)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
