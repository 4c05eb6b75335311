package recipecache

import (
	"testing"

	"fridge-recipes/internal/core/recipe"
)

func TestKeyOrderIndependent(t *testing.T) {
	t.Parallel()

	opts := recipe.SearchOptions{MaxResults: 10}

	a := Key([]string{"egg", "spinach", "rice"}, opts)
	b := Key([]string{"rice", "egg", "spinach"}, opts)
	if a != b {
		t.Errorf("keys differ for permuted ingredients: %s vs %s", a, b)
	}
}

func TestKeyCaseInsensitive(t *testing.T) {
	t.Parallel()

	opts := recipe.SearchOptions{}
	if Key([]string{"Egg"}, opts) != Key([]string{"egg"}, opts) {
		t.Error("key should be case insensitive for ingredients")
	}
	if Key([]string{"egg"}, recipe.SearchOptions{Cuisine: "Italian"}) !=
		Key([]string{"egg"}, recipe.SearchOptions{Cuisine: "italian"}) {
		t.Error("key should be case insensitive for options")
	}
}

func TestKeyDistinguishesOptions(t *testing.T) {
	t.Parallel()

	ingredients := []string{"egg", "spinach"}

	base := Key(ingredients, recipe.SearchOptions{})
	tests := []struct {
		name string
		opts recipe.SearchOptions
	}{
		{"max results", recipe.SearchOptions{MaxResults: 5}},
		{"meal type", recipe.SearchOptions{MealType: "breakfast"}},
		{"cuisine", recipe.SearchOptions{Cuisine: "italian"}},
		{"diet", recipe.SearchOptions{Diet: "vegetarian"}},
	}
	for _, tt := range tests {
		if Key(ingredients, tt.opts) == base {
			t.Errorf("%s should change the key", tt.name)
		}
	}
}

func TestKeyDistinguishesIngredients(t *testing.T) {
	t.Parallel()

	opts := recipe.SearchOptions{}
	if Key([]string{"egg"}, opts) == Key([]string{"egg", "spinach"}, opts) {
		t.Error("different ingredient sets should produce different keys")
	}
}

func TestKeyStable(t *testing.T) {
	t.Parallel()

	opts := recipe.SearchOptions{MaxResults: 10, Cuisine: "thai"}
	ingredients := []string{"chicken", "basil", "rice"}

	first := Key(ingredients, opts)
	for i := 0; i < 10; i++ {
		if got := Key(ingredients, opts); got != first {
			t.Fatalf("key not stable: %s vs %s", got, first)
		}
	}
}
