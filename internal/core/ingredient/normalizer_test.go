package ingredient

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
		{
			name:  "whitespace only",
			input: "   \n\t  ",
			want:  []string{},
		},
		{
			name:  "simple comma list",
			input: "eggs, spinach",
			want:  []string{"egg", "spinach"},
		},
		{
			name:  "quantities and descriptors stripped",
			input: "2 cups chopped tomatoes, 1/2 lb ground beef",
			want:  []string{"tomato", "beef"},
		},
		{
			name:  "duplicates folded case insensitively",
			input: "2 cups chopped tomatoes, Tomato, fresh tomatoes",
			want:  []string{"tomato"},
		},
		{
			name:  "synonyms collapse to canonical form",
			input: "chicken breast, spaghetti, olive oil",
			want:  []string{"chicken", "pasta", "oil"},
		},
		{
			name:  "multi-word synonym matched before word removal",
			input: "fresh mozzarella cheese",
			want:  []string{"cheese"},
		},
		{
			name:  "parenthetical content removed",
			input: "butter (softened), milk (1 cup)",
			want:  []string{"butter", "milk"},
		},
		{
			name:  "newline and bullet separators",
			input: "- eggs\n• whole milk\nbrown rice",
			want:  []string{"egg", "milk", "rice"},
		},
		{
			name:  "semicolon separator",
			input: "salmon fillet; greek yogurt",
			want:  []string{"salmon", "yogurt"},
		},
		{
			name:  "single letters dropped",
			input: "a, b, eggs",
			want:  []string{"egg"},
		},
		{
			name:  "first seen order preserved",
			input: "spinach, eggs, garlic",
			want:  []string{"spinach", "egg", "garlic"},
		},
		{
			name:  "only stopwords yields nothing",
			input: "2 cups of, one large",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := n.Normalize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()
	inputs := []string{
		"2 cups chopped tomatoes, chicken breast",
		"eggs, spinach, olive oil",
		"fresh mozzarella, penne pasta",
	}
	for _, input := range inputs {
		first := n.Normalize(input)
		second := n.Normalize(input)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Normalize(%q) not deterministic: %v vs %v", input, first, second)
		}
	}
}

func TestNormalizeFuzzyMatching(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()

	// 拼字小錯仍應對應到規範名稱
	got := n.Normalize("mozzarela")
	want := []string{"cheese"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize(mozzarela) = %v, want %v", got, want)
	}
}

func TestNormalizeFuzzyThreshold(t *testing.T) {
	t.Parallel()

	// 門檻拉滿時模糊比對不應命中，保留原詞
	strict := NewNormalizer(WithFuzzyThreshold(100))
	got := strict.Normalize("mozzarela")
	want := []string{"mozzarela"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize(mozzarela) with threshold 100 = %v, want %v", got, want)
	}
}

func TestSingularize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"tomatoes", "tomato", true},
		{"eggs", "egg", true},
		{"carrots", "carrot", true},
		{"boxes", "box", true},
		{"swiss", "", false}, // ss 結尾不動
		{"gas", "", false},   // 太短不動
		{"rice", "", false},  // 非 s 結尾
	}
	for _, tt := range tests {
		got, ok := singularize(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("singularize(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFindSimilar(t *testing.T) {
	t.Parallel()

	n := NewNormalizer()
	candidates := []string{"tomato", "potato", "chicken", "tomatillo"}

	got := n.FindSimilar("tomato", candidates, 80)
	if len(got) == 0 {
		t.Fatal("expected at least one similar candidate")
	}
	if got[0] != "tomato" {
		t.Errorf("FindSimilar first match = %q, want tomato", got[0])
	}

	if got := n.FindSimilar("", candidates, 80); got != nil {
		t.Errorf("FindSimilar with empty target = %v, want nil", got)
	}
}
