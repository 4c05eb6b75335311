package rank

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "unigrams and bigrams",
			input: "chicken stir fry",
			want:  []string{"chicken", "stir", "fry", "chicken stir", "stir fry"},
		},
		{
			name:  "stopwords removed before ngrams",
			input: "bowl of rice",
			want:  []string{"bowl", "rice", "bowl rice"},
		},
		{
			name:  "lowercased and punctuation split",
			input: "One-Pot Wonder!",
			want:  []string{"one", "pot", "wonder", "one pot", "pot wonder"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tokenize(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVectorizerFitTransform(t *testing.T) {
	t.Parallel()

	corpus := []string{
		"chicken stir fry with rice",
		"chicken curry with rice",
		"vegetable stir fry",
	}
	v := NewVectorizer()
	if v.Fitted() {
		t.Fatal("new vectorizer should not be fitted")
	}
	v.Fit(corpus)
	if !v.Fitted() {
		t.Fatal("vectorizer should be fitted after Fit")
	}

	vec := v.Transform("chicken stir fry")
	if len(vec) == 0 {
		t.Fatal("transform of in-vocabulary text should be non-empty")
	}

	// L2 norm 應為 1
	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-9 {
		t.Errorf("vector norm = %v, want 1.0", math.Sqrt(norm))
	}
}

func TestVectorizerUnknownTokens(t *testing.T) {
	t.Parallel()

	v := NewVectorizer()
	v.Fit([]string{"chicken rice", "beef noodles"})

	if vec := v.Transform("quinoa salad"); len(vec) != 0 {
		t.Errorf("out-of-vocabulary text should map to empty vector, got %v", vec)
	}
}

func TestVectorizerUnfittedTransform(t *testing.T) {
	t.Parallel()

	v := NewVectorizer()
	if vec := v.Transform("anything"); len(vec) != 0 {
		t.Errorf("unfitted transform should be empty, got %v", vec)
	}
}

func TestVectorizerDeterministicVocabulary(t *testing.T) {
	t.Parallel()

	corpus := []string{
		"chicken stir fry", "beef stew", "vegetable soup",
		"chicken soup", "beef stir fry",
	}
	a := NewVectorizer()
	a.Fit(corpus)
	b := NewVectorizer()
	b.Fit(corpus)

	if !reflect.DeepEqual(a.Vocabulary, b.Vocabulary) {
		t.Error("same corpus should produce identical vocabularies")
	}
	if !reflect.DeepEqual(a.IDF, b.IDF) {
		t.Error("same corpus should produce identical idf weights")
	}
}
