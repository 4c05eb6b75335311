package recipe

import (
	"strings"
	"time"
)

// RecipeIngredient 食譜中的單一食材（Spoonacular 格式）
type RecipeIngredient struct {
	Name string `json:"name"`
}

// Recipe 外部供應商回傳的食譜
// 欄位名稱對齊 Spoonacular findByIngredients / information 回應
type Recipe struct {
	ID                int                `json:"id"`
	Title             string             `json:"title"`
	Image             string             `json:"image"`
	UsedIngredients   []RecipeIngredient `json:"usedIngredients"`
	MissedIngredients []RecipeIngredient `json:"missedIngredients"`
	ReadyInMinutes    int                `json:"readyInMinutes"`
	Servings          int                `json:"servings"`
	HealthScore       *float64           `json:"healthScore,omitempty"`
	SourceURL         string             `json:"sourceUrl"`
	Summary           string             `json:"summary"`
	Diets             []string           `json:"diets"`
	Cuisines          []string           `json:"cuisines"`
}

// RankedRecipe 附帶分數的食譜，只用於排序，不做持久化
type RankedRecipe struct {
	Recipe
	BaseScore  float64  `json:"base_score"`
	MLScore    *float64 `json:"ml_score,omitempty"`
	FinalScore float64  `json:"final_score"`
}

// SearchOptions 搜尋選項，會參與快取鍵的計算
type SearchOptions struct {
	MaxResults int    `json:"max_results"`
	MealType   string `json:"meal_type"`
	Cuisine    string `json:"cuisine"`
	Diet       string `json:"diet"`
}

// Rating 使用者對食譜的評價
type Rating string

const (
	RatingLike    Rating = "like"
	RatingDislike Rating = "dislike"
	RatingLove    Rating = "love"
	RatingTried   Rating = "tried"
)

// Valid 檢查評價是否為支援的類型
func (r Rating) Valid() bool {
	switch r {
	case RatingLike, RatingDislike, RatingLove, RatingTried:
		return true
	}
	return false
}

// Positive 訓練時的二元標籤：like/love/tried 視為正樣本
func (r Rating) Positive() bool {
	return r == RatingLike || r == RatingLove || r == RatingTried
}

// FeedbackRecord 使用者回饋紀錄，每個 (user, recipe) 只保留最新一筆
type FeedbackRecord struct {
	UserID    string    `json:"user_id"`
	RecipeID  int       `json:"recipe_id"`
	Rating    Rating    `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
	Recipe    *Recipe   `json:"recipe,omitempty"` // 訓練用的快照
}

// UserPreferences 使用者偏好，首次讀取時回傳預設值
type UserPreferences struct {
	Vegetarian        bool     `json:"vegetarian"`
	Vegan             bool     `json:"vegan"`
	GlutenFree        bool     `json:"gluten_free"`
	DairyFree         bool     `json:"dairy_free"`
	MaxPrepTime       int      `json:"max_prep_time"`
	PreferredCuisines []string `json:"preferred_cuisines"`
	Difficulty        string   `json:"difficulty_level"`
}

// DefaultPreferences 預設偏好
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Vegetarian:        false,
		Vegan:             false,
		GlutenFree:        false,
		DairyFree:         false,
		MaxPrepTime:       60,
		PreferredCuisines: []string{},
		Difficulty:        "any",
	}
}

// IsVegetarian 判斷食譜是否為素食（vegetarian 或 vegan 標籤）
func (r *Recipe) IsVegetarian() bool {
	for _, d := range r.Diets {
		switch strings.ToLower(d) {
		case "vegetarian", "vegan":
			return true
		}
	}
	return false
}

// IsVegan 判斷食譜是否為全素
func (r *Recipe) IsVegan() bool {
	for _, d := range r.Diets {
		if strings.ToLower(d) == "vegan" {
			return true
		}
	}
	return false
}

// IsGlutenFree 判斷食譜是否為無麩質
func (r *Recipe) IsGlutenFree() bool {
	for _, d := range r.Diets {
		switch strings.ToLower(d) {
		case "gluten free", "gluten-free":
			return true
		}
	}
	return false
}
