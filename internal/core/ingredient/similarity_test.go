package ingredient

import "testing"

func TestLevenshteinSimilarityScore(t *testing.T) {
	t.Parallel()

	sim := LevenshteinSimilarity{}

	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "tomato", "tomato", 100},
		{"both empty", "", "", 100},
		{"one empty", "tomato", "", 0},
		{"single typo", "mozzarella", "mozzarela", 90},
		{"completely different", "abc", "xyz", 0},
		{"one char of four", "abcd", "abce", 75},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sim.Score(tt.a, tt.b); got != tt.want {
				t.Errorf("Score(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLevenshteinSimilaritySymmetric(t *testing.T) {
	t.Parallel()

	sim := LevenshteinSimilarity{}
	pairs := [][2]string{
		{"tomato", "tomatoes"},
		{"chicken", "kitchen"},
		{"oil", "olive oil"},
	}
	for _, p := range pairs {
		if ab, ba := sim.Score(p[0], p[1]), sim.Score(p[1], p[0]); ab != ba {
			t.Errorf("Score(%q, %q) = %d but Score(%q, %q) = %d", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}
