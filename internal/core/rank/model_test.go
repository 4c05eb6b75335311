package rank

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/pkg/common"
)

func makeRecipe(id int, title string, ingredients ...string) *recipe.Recipe {
	used := make([]recipe.RecipeIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		used = append(used, recipe.RecipeIngredient{Name: ing})
	}
	return &recipe.Recipe{ID: id, Title: title, UsedIngredients: used}
}

func makeFeedback(rating recipe.Rating, r *recipe.Recipe) recipe.FeedbackRecord {
	return recipe.FeedbackRecord{
		UserID:    "u1",
		RecipeID:  r.ID,
		Rating:    rating,
		Timestamp: time.Now(),
		Recipe:    r,
	}
}

// trainingFeedback 喜歡雞肉料理、不喜歡甜點的訓練集
func trainingFeedback() []recipe.FeedbackRecord {
	return []recipe.FeedbackRecord{
		makeFeedback(recipe.RatingLove, makeRecipe(1, "Chicken Stir Fry", "chicken", "rice")),
		makeFeedback(recipe.RatingLike, makeRecipe(2, "Grilled Chicken Salad", "chicken", "spinach")),
		makeFeedback(recipe.RatingLike, makeRecipe(3, "Chicken Curry", "chicken", "rice")),
		makeFeedback(recipe.RatingTried, makeRecipe(4, "Chicken Noodle Soup", "chicken", "pasta")),
		makeFeedback(recipe.RatingLove, makeRecipe(5, "Roast Chicken Dinner", "chicken", "potato")),
		makeFeedback(recipe.RatingLike, makeRecipe(6, "Chicken Fried Rice", "chicken", "rice")),
		makeFeedback(recipe.RatingDislike, makeRecipe(7, "Chocolate Cake Dessert", "chocolate", "sugar")),
		makeFeedback(recipe.RatingDislike, makeRecipe(8, "Sugar Cookie Dessert", "sugar", "butter")),
		makeFeedback(recipe.RatingDislike, makeRecipe(9, "Caramel Fudge Dessert", "sugar", "cream")),
		makeFeedback(recipe.RatingDislike, makeRecipe(10, "Candy Brownie Dessert", "chocolate", "sugar")),
	}
}

func TestModelTrainInsufficientData(t *testing.T) {
	t.Parallel()

	m := NewModel(t.TempDir(), 10)
	err := m.Train(trainingFeedback()[:3])
	if !errors.Is(err, common.ErrModelNotReady) {
		t.Errorf("Train with 3 records should fail with ErrModelNotReady, got %v", err)
	}
	if m.Fitted() {
		t.Error("model should stay unfitted after failed training")
	}
}

func TestModelTrainSingleClass(t *testing.T) {
	t.Parallel()

	var records []recipe.FeedbackRecord
	for i := 0; i < 10; i++ {
		records = append(records, makeFeedback(recipe.RatingLike, makeRecipe(i, "Chicken Dish", "chicken")))
	}

	m := NewModel(t.TempDir(), 10)
	if err := m.Train(records); !errors.Is(err, common.ErrModelNotReady) {
		t.Errorf("single-class training should fail with ErrModelNotReady, got %v", err)
	}
}

func TestModelTrainSkipsRecordsWithoutSnapshot(t *testing.T) {
	t.Parallel()

	records := trainingFeedback()[:5]
	for i := 0; i < 6; i++ {
		records = append(records, recipe.FeedbackRecord{
			UserID: "u1", RecipeID: 100 + i, Rating: recipe.RatingDislike,
		})
	}

	// 有效記錄只有 5 筆，低於門檻
	m := NewModel(t.TempDir(), 10)
	if err := m.Train(records); !errors.Is(err, common.ErrModelNotReady) {
		t.Errorf("snapshot-less records should not count toward the minimum, got %v", err)
	}
}

func TestModelTrainAndPredict(t *testing.T) {
	t.Parallel()

	m := NewModel(t.TempDir(), 10)
	if err := m.Train(trainingFeedback()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if !m.Fitted() {
		t.Fatal("model should be fitted after training")
	}

	liked, err := m.PredictProba(makeRecipe(20, "Spicy Chicken Rice", "chicken", "rice"))
	if err != nil {
		t.Fatalf("PredictProba failed: %v", err)
	}
	disliked, err := m.PredictProba(makeRecipe(21, "Sugar Chocolate Dessert", "sugar", "chocolate"))
	if err != nil {
		t.Fatalf("PredictProba failed: %v", err)
	}

	if liked <= disliked {
		t.Errorf("chicken recipe (%v) should outscore dessert (%v)", liked, disliked)
	}
	for _, p := range []float64{liked, disliked} {
		if p < 0 || p > 1 {
			t.Errorf("probability %v out of [0,1]", p)
		}
	}
}

func TestModelPredictUnfitted(t *testing.T) {
	t.Parallel()

	m := NewModel(t.TempDir(), 10)
	if _, err := m.PredictProba(makeRecipe(1, "Anything")); !errors.Is(err, common.ErrModelNotReady) {
		t.Errorf("unfitted predict should fail with ErrModelNotReady, got %v", err)
	}
}

func TestModelSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	trained := NewModel(dir, 10)
	if err := trained.Train(trainingFeedback()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	probe := makeRecipe(30, "Chicken Rice Bowl", "chicken", "rice")
	want, err := trained.PredictProba(probe)
	if err != nil {
		t.Fatalf("PredictProba failed: %v", err)
	}

	loaded := NewModel(dir, 10)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Fitted() {
		t.Fatal("loaded model should be fitted")
	}

	got, err := loaded.PredictProba(probe)
	if err != nil {
		t.Fatalf("PredictProba after load failed: %v", err)
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("prediction changed after reload: %v vs %v", got, want)
	}
}

func TestModelLoadMissingFile(t *testing.T) {
	t.Parallel()

	m := NewModel(t.TempDir(), 10)
	if err := m.Load(); err != nil {
		t.Fatalf("Load with no model file should be a no-op, got %v", err)
	}
	if m.Fitted() {
		t.Error("model should stay unfitted when no file exists")
	}
}

func TestModelLoadCorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, modelFileName), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewModel(dir, 10)
	if err := m.Load(); err == nil {
		t.Error("Load of corrupt file should fail")
	}
	if m.Fitted() {
		t.Error("model should stay unfitted after failed load")
	}
}

func TestModelSaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := NewModel(dir, 10)
	if err := m.Train(trainingFeedback()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != modelFileName {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("model dir should contain only %s, got %v", modelFileName, names)
	}
}
