package ingredient

import (
	"regexp"
	"strings"

	"fridge-recipes/internal/pkg/common"

	"go.uber.org/zap"
)

var (
	segmentSplitter   = regexp.MustCompile(`[,;\n\r\x{2022}]+`)
	parenthetical     = regexp.MustCompile(`\([^)]*\)`)
	leadingQuantity   = regexp.MustCompile(`^[\d\s/.\-]+`)
	embeddedNumbers   = regexp.MustCompile(`\d+[\d/.]*`)
	nonWordCharacters = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)
	whitespaceRun     = regexp.MustCompile(`\s+`)
)

// Normalizer 將自由文字轉為規範化的食材 token 序列
type Normalizer struct {
	similarity     Similarity
	fuzzyThreshold int
}

// Option Normalizer 的建構選項
type Option func(*Normalizer)

// WithSimilarity 替換相似度實作
func WithSimilarity(s Similarity) Option {
	return func(n *Normalizer) {
		n.similarity = s
	}
}

// WithFuzzyThreshold 設定模糊比對的接受門檻（0-100）
// 低於門檻的匹配一律拒絕，寧可保留原詞也不做低信心合併
func WithFuzzyThreshold(threshold int) Option {
	return func(n *Normalizer) {
		n.fuzzyThreshold = threshold
	}
}

// NewNormalizer 創建正規化器
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		similarity:     LevenshteinSimilarity{},
		fuzzyThreshold: 85,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize 將原始食材文字轉為去重後的規範 token 列表
// 空白輸入回傳空序列（不是錯誤）；順序為輸入中首次出現的順序
func (n *Normalizer) Normalize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	segments := n.split(text)

	seen := make(map[string]struct{}, len(segments))
	result := make([]string, 0, len(segments))
	for _, seg := range segments {
		token := n.normalizeSegment(seg)
		if token == "" || len(token) <= 1 {
			continue
		}
		lower := strings.ToLower(token)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		result = append(result, lower)
	}

	common.LogDebug("食材正規化完成",
		zap.Int("segments", len(segments)),
		zap.Int("tokens", len(result)),
	)

	return result
}

// split 依分隔符號切割輸入
func (n *Normalizer) split(text string) []string {
	raw := segmentSplitter.Split(text, -1)
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		// 條列符號開頭
		s = strings.TrimLeft(s, "-* ")
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// normalizeSegment 處理單一片段
func (n *Normalizer) normalizeSegment(segment string) string {
	s := strings.ToLower(strings.TrimSpace(segment))
	if len(s) < 2 {
		return ""
	}

	// 去除括號內容與開頭的數量
	s = parenthetical.ReplaceAllString(s, "")
	s = leadingQuantity.ReplaceAllString(s, "")
	s = embeddedNumbers.ReplaceAllString(s, "")
	s = nonWordCharacters.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	// 完整片語先查同義詞表，多詞匹配優先
	if canonical, ok := tableLookup(s); ok {
		return canonical
	}

	// 逐詞移除單位、數量與描述詞
	words := strings.Fields(s)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if isStopword(w) || len(w) <= 1 {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return ""
	}

	cleaned := strings.Join(kept, " ")
	if canonical, ok := tableLookup(cleaned); ok {
		return canonical
	}

	// 查表都沒中：單數化後保留單數形
	if singular, ok := singularize(cleaned); ok {
		cleaned = singular
	}

	// 模糊比對：只接受高信心匹配
	if canonical, ok := n.fuzzyLookup(cleaned); ok {
		return canonical
	}

	return cleaned
}

// tableLookup 查同義詞表，找不到時做單數化再查一次
func tableLookup(phrase string) (string, bool) {
	if canonical, ok := synonymTable[phrase]; ok {
		return canonical, true
	}
	if singular, ok := singularize(phrase); ok {
		if canonical, found := synonymTable[singular]; found {
			return canonical, true
		}
	}
	return "", false
}

// singularize 樸素的複數轉單數，長度不足或結尾非 s 時不動
func singularize(phrase string) (string, bool) {
	if len(phrase) <= 3 || !strings.HasSuffix(phrase, "s") || strings.HasSuffix(phrase, "ss") {
		return "", false
	}
	// tomatoes -> tomato、boxes -> box 這類 -es 複數
	if strings.HasSuffix(phrase, "es") {
		stem := phrase[:len(phrase)-2]
		for _, suffix := range []string{"o", "x", "z", "ch", "sh"} {
			if strings.HasSuffix(stem, suffix) {
				return stem, true
			}
		}
	}
	return phrase[:len(phrase)-1], true
}

// fuzzyLookup 與同義詞表的已知片語做相似度比對
func (n *Normalizer) fuzzyLookup(phrase string) (string, bool) {
	best := ""
	bestScore := 0
	for known := range synonymTable {
		score := n.similarity.Score(phrase, known)
		if score > bestScore {
			bestScore = score
			best = known
		}
	}
	if bestScore >= n.fuzzyThreshold {
		common.LogDebug("模糊比對命中",
			zap.String("輸入", phrase),
			zap.String("匹配", best),
			zap.Int("分數", bestScore),
		)
		return synonymTable[best], true
	}
	return "", false
}

// FindSimilar 從候選清單中找出相似的食材名稱
func (n *Normalizer) FindSimilar(target string, candidates []string, threshold int) []string {
	if target == "" || len(candidates) == 0 {
		return nil
	}
	var similar []string
	for _, c := range candidates {
		if n.similarity.Score(strings.ToLower(target), strings.ToLower(c)) >= threshold {
			similar = append(similar, c)
		}
	}
	return similar
}
