package ingredient

// Similarity 字串相似度介面，回傳 0-100 的分數
// 可插拔：模糊比對只依賴這個簽名，換實作不影響正規化流程
type Similarity interface {
	Score(a, b string) int
}

// LevenshteinSimilarity 以正規化編輯距離計算相似度
type LevenshteinSimilarity struct{}

// Score 計算 a 與 b 的相似度分數（0-100）
func (LevenshteinSimilarity) Score(a, b string) int {
	if a == b {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	dist := levenshtein(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}

	return int((1.0 - float64(dist)/float64(maxLen)) * 100.0)
}

// levenshtein 計算編輯距離，使用兩列滾動陣列
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // 刪除
				curr[j-1]+1,    // 插入
				prev[j-1]+cost, // 替換
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
