package rank

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

const (
	maxFeatures = 1000
	maxNGram    = 2
)

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// 向量化時過濾的高頻英文虛詞
var vectorStopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "for": true, "from": true,
	"has": true, "in": true, "is": true, "it": true, "its": true,
	"of": true, "on": true, "or": true, "that": true, "the": true,
	"to": true, "was": true, "were": true, "will": true, "with": true,
}

// Vectorizer 將食譜文字轉為 TF-IDF 向量
// Fit 建立詞彙表後 Transform 就是唯讀操作，可並發呼叫
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// NewVectorizer 建立未訓練的向量器
func NewVectorizer() *Vectorizer {
	return &Vectorizer{}
}

// Fitted 回傳詞彙表是否已建立
func (v *Vectorizer) Fitted() bool {
	return len(v.Vocabulary) > 0
}

// tokenize 斷詞並產生 1-gram 與 2-gram
func tokenize(text string) []string {
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)

	filtered := words[:0]
	for _, w := range words {
		if !vectorStopwords[w] {
			filtered = append(filtered, w)
		}
	}

	tokens := make([]string, 0, len(filtered)*maxNGram)
	tokens = append(tokens, filtered...)
	for i := 0; i+1 < len(filtered); i++ {
		tokens = append(tokens, filtered[i]+" "+filtered[i+1])
	}
	return tokens
}

// Fit 從語料建立詞彙表，保留文件頻率最高的詞
func (v *Vectorizer) Fit(corpus []string) {
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}

	type termCount struct {
		term  string
		count int
	}
	terms := make([]termCount, 0, len(docFreq))
	for term, count := range docFreq {
		terms = append(terms, termCount{term, count})
	}
	// 先依文件頻率，再依字典序，確保同語料產生同詞彙表
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].count != terms[j].count {
			return terms[i].count > terms[j].count
		}
		return terms[i].term < terms[j].term
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, tc := range terms {
		v.Vocabulary[tc.term] = i
		// smooth idf：分子分母各加一，避免除零也避免 idf 為零
		v.IDF[i] = math.Log((1+n)/(1+float64(tc.count))) + 1
	}
}

// Transform 將單一文件轉為 L2 正規化的稀疏 TF-IDF 向量
func (v *Vectorizer) Transform(doc string) map[int]float64 {
	vec := make(map[int]float64)
	if !v.Fitted() {
		return vec
	}

	for _, tok := range tokenize(doc) {
		if idx, ok := v.Vocabulary[tok]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for idx, tf := range vec {
		w := tf * v.IDF[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}
