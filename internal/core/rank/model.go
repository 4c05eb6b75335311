package rank

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/pkg/common"
)

const (
	defaultMinTraining = 10
	sgdEpochs          = 20
	sgdLearningRate    = 0.01
	sgdAlpha           = 0.001 // L2 正則化係數

	modelFileName = "ranker.json"
)

// Model 以回饋為訓練資料的邏輯迴歸模型，配合 Vectorizer 使用
type Model struct {
	mu          sync.RWMutex
	vectorizer  *Vectorizer
	weights     []float64
	bias        float64
	fitted      bool
	dir         string
	minTraining int
}

// modelSnapshot 向量器與分類器一併存檔，確保兩者版本一致
type modelSnapshot struct {
	Vectorizer *Vectorizer `json:"vectorizer"`
	Weights    []float64   `json:"weights"`
	Bias       float64     `json:"bias"`
}

// NewModel 建立模型，dir 為模型檔存放目錄
// minTraining 為訓練所需的最少回饋筆數，傳入零以下使用預設值
func NewModel(dir string, minTraining int) *Model {
	if minTraining <= 0 {
		minTraining = defaultMinTraining
	}
	return &Model{
		vectorizer:  NewVectorizer(),
		dir:         dir,
		minTraining: minTraining,
	}
}

// Fitted 回傳模型是否已訓練完成
func (m *Model) Fitted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fitted
}

// featureText 組合食譜的文字特徵
func featureText(r *recipe.Recipe) string {
	parts := []string{r.Title}
	for _, ing := range r.UsedIngredients {
		parts = append(parts, ing.Name)
	}
	if r.Summary != "" {
		parts = append(parts, common.CleanHTML(r.Summary))
	}
	parts = append(parts, r.Cuisines...)
	parts = append(parts, r.Diets...)
	return strings.Join(parts, " ")
}

// Train 以回饋記錄重新訓練模型並存檔
// like/love/tried 視為正例，dislike 為負例；缺少食譜快照的記錄跳過
func (m *Model) Train(records []recipe.FeedbackRecord) error {
	var docs []string
	var labels []float64
	for _, rec := range records {
		if rec.Recipe == nil || !rec.Rating.Valid() {
			continue
		}
		docs = append(docs, featureText(rec.Recipe))
		if rec.Rating.Positive() {
			labels = append(labels, 1)
		} else {
			labels = append(labels, 0)
		}
	}

	if len(docs) < m.minTraining {
		return fmt.Errorf("%w: 訓練資料僅 %d 筆", common.ErrModelNotReady, len(docs))
	}
	// 單一類別無法訓練二元分類器
	hasPos, hasNeg := false, false
	for _, l := range labels {
		if l == 1 {
			hasPos = true
		} else {
			hasNeg = true
		}
	}
	if !hasPos || !hasNeg {
		return fmt.Errorf("%w: 回饋缺少正例或負例", common.ErrModelNotReady)
	}

	vectorizer := NewVectorizer()
	vectorizer.Fit(docs)

	vectors := make([]map[int]float64, len(docs))
	for i, doc := range docs {
		vectors[i] = vectorizer.Transform(doc)
	}

	weights := make([]float64, len(vectorizer.IDF))
	var bias float64

	// SGD 最小化 log loss，固定種子讓訓練可重現
	rng := rand.New(rand.NewSource(42))
	order := make([]int, len(vectors))
	for i := range order {
		order[i] = i
	}
	for epoch := 0; epoch < sgdEpochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		for _, i := range order {
			pred := sigmoid(dot(weights, vectors[i]) + bias)
			grad := pred - labels[i]
			for idx, val := range vectors[i] {
				weights[idx] -= sgdLearningRate * (grad*val + sgdAlpha*weights[idx])
			}
			bias -= sgdLearningRate * grad
		}
	}

	m.mu.Lock()
	m.vectorizer = vectorizer
	m.weights = weights
	m.bias = bias
	m.fitted = true
	m.mu.Unlock()

	return m.save()
}

// PredictProba 回傳食譜被喜歡的機率
func (m *Model) PredictProba(r *recipe.Recipe) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.fitted {
		return 0, common.ErrModelNotReady
	}
	vec := m.vectorizer.Transform(featureText(r))
	return sigmoid(dot(m.weights, vec) + m.bias), nil
}

// save 先寫暫存檔再 rename，中途失敗不會留下半套模型
func (m *Model) save() error {
	m.mu.RLock()
	snapshot := modelSnapshot{
		Vectorizer: m.vectorizer,
		Weights:    m.weights,
		Bias:       m.bias,
	}
	m.mu.RUnlock()

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	path := filepath.Join(m.dir, modelFileName)
	tmp, err := os.CreateTemp(m.dir, modelFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace model file: %w", err)
	}
	return nil
}

// Load 從磁碟載入模型，檔案不存在時維持未訓練狀態
func (m *Model) Load() error {
	path := filepath.Join(m.dir, modelFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read model file: %w", err)
	}

	var snapshot modelSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to unmarshal model: %w", err)
	}
	if snapshot.Vectorizer == nil || !snapshot.Vectorizer.Fitted() ||
		len(snapshot.Weights) != len(snapshot.Vectorizer.IDF) {
		return fmt.Errorf("model file is inconsistent: %s", path)
	}

	m.mu.Lock()
	m.vectorizer = snapshot.Vectorizer
	m.weights = snapshot.Weights
	m.bias = snapshot.Bias
	m.fitted = true
	m.mu.Unlock()
	return nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func dot(weights []float64, vec map[int]float64) float64 {
	var sum float64
	for idx, val := range vec {
		if idx < len(weights) {
			sum += weights[idx] * val
		}
	}
	return sum
}
