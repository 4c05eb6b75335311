package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/pkg/common"
)

// SQLiteStore 使用者回饋、偏好、收藏與搜尋歷史的本地儲存
// database/sql 的連線池保證並發存取安全，不假設單一寫入者
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore 開啟（必要時建立）資料庫
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite 同一時間只允許一個寫入者，序列化寫入避免 SQLITE_BUSY
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// Close 關閉資料庫
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS feedback (
        user_id TEXT NOT NULL,
        recipe_id INTEGER NOT NULL,
        rating TEXT NOT NULL,
        timestamp DATETIME NOT NULL,
        recipe_snapshot TEXT,
        PRIMARY KEY (user_id, recipe_id)
    );

    CREATE TABLE IF NOT EXISTS preferences (
        user_id TEXT PRIMARY KEY,
        vegetarian INTEGER NOT NULL DEFAULT 0,
        vegan INTEGER NOT NULL DEFAULT 0,
        gluten_free INTEGER NOT NULL DEFAULT 0,
        dairy_free INTEGER NOT NULL DEFAULT 0,
        max_prep_time INTEGER NOT NULL DEFAULT 60,
        preferred_cuisines TEXT NOT NULL DEFAULT '[]',
        difficulty TEXT NOT NULL DEFAULT 'any',
        updated_at DATETIME NOT NULL
    );

    CREATE TABLE IF NOT EXISTS favorites (
        user_id TEXT NOT NULL,
        recipe_id INTEGER NOT NULL,
        recipe TEXT NOT NULL,
        timestamp DATETIME NOT NULL,
        PRIMARY KEY (user_id, recipe_id)
    );

    CREATE TABLE IF NOT EXISTS search_history (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        user_id TEXT NOT NULL,
        ingredients TEXT NOT NULL,
        recipe_count INTEGER NOT NULL,
        timestamp DATETIME NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_feedback_user ON feedback(user_id);
    CREATE INDEX IF NOT EXISTS idx_history_user ON search_history(user_id, timestamp);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// RecordFeedback 儲存使用者回饋，同一 (user, recipe) 後寫覆蓋先寫
func (s *SQLiteStore) RecordFeedback(userID string, recipeID int, rating recipe.Rating, snapshot *recipe.Recipe) error {
	if !rating.Valid() {
		return common.ErrInvalidRating
	}

	var snapshotJSON []byte
	if snapshot != nil {
		var err error
		snapshotJSON, err = json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("failed to marshal recipe snapshot: %w", err)
		}
	}

	query := `
        INSERT INTO feedback (user_id, recipe_id, rating, timestamp, recipe_snapshot)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(user_id, recipe_id)
        DO UPDATE SET rating = excluded.rating,
                      timestamp = excluded.timestamp,
                      recipe_snapshot = COALESCE(excluded.recipe_snapshot, feedback.recipe_snapshot)
    `
	_, err := s.db.Exec(query, userID, recipeID, string(rating),
		time.Now().UTC().Format(time.RFC3339), nullableString(snapshotJSON))
	if err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}
	return nil
}

// ListFeedback 取得使用者的所有回饋
func (s *SQLiteStore) ListFeedback(userID string) ([]recipe.FeedbackRecord, error) {
	query := `
        SELECT user_id, recipe_id, rating, timestamp, recipe_snapshot
        FROM feedback
        WHERE user_id = ?
        ORDER BY timestamp
    `
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var records []recipe.FeedbackRecord
	for rows.Next() {
		var rec recipe.FeedbackRecord
		var rating, timestampStr string
		var snapshot sql.NullString

		if err := rows.Scan(&rec.UserID, &rec.RecipeID, &rating, &timestampStr, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}

		rec.Rating = recipe.Rating(rating)
		if rec.Timestamp, err = time.Parse(time.RFC3339, timestampStr); err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		if snapshot.Valid && snapshot.String != "" {
			var r recipe.Recipe
			if err := json.Unmarshal([]byte(snapshot.String), &r); err == nil {
				rec.Recipe = &r
			}
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// AllFeedback 取得全部回饋，供模型訓練使用
func (s *SQLiteStore) AllFeedback() ([]recipe.FeedbackRecord, error) {
	query := `
        SELECT user_id, recipe_id, rating, timestamp, recipe_snapshot
        FROM feedback
        ORDER BY timestamp
    `
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var records []recipe.FeedbackRecord
	for rows.Next() {
		var rec recipe.FeedbackRecord
		var rating, timestampStr string
		var snapshot sql.NullString

		if err := rows.Scan(&rec.UserID, &rec.RecipeID, &rating, &timestampStr, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}

		rec.Rating = recipe.Rating(rating)
		if rec.Timestamp, err = time.Parse(time.RFC3339, timestampStr); err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		if snapshot.Valid && snapshot.String != "" {
			var r recipe.Recipe
			if err := json.Unmarshal([]byte(snapshot.String), &r); err == nil {
				rec.Recipe = &r
			}
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// SavePreferences 整筆覆寫使用者偏好
func (s *SQLiteStore) SavePreferences(userID string, prefs recipe.UserPreferences) error {
	cuisines, err := json.Marshal(prefs.PreferredCuisines)
	if err != nil {
		return fmt.Errorf("failed to marshal cuisines: %w", err)
	}

	query := `
        INSERT INTO preferences
            (user_id, vegetarian, vegan, gluten_free, dairy_free,
             max_prep_time, preferred_cuisines, difficulty, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(user_id) DO UPDATE SET
            vegetarian = excluded.vegetarian,
            vegan = excluded.vegan,
            gluten_free = excluded.gluten_free,
            dairy_free = excluded.dairy_free,
            max_prep_time = excluded.max_prep_time,
            preferred_cuisines = excluded.preferred_cuisines,
            difficulty = excluded.difficulty,
            updated_at = excluded.updated_at
    `
	_, err = s.db.Exec(query, userID,
		boolToInt(prefs.Vegetarian), boolToInt(prefs.Vegan),
		boolToInt(prefs.GlutenFree), boolToInt(prefs.DairyFree),
		prefs.MaxPrepTime, string(cuisines), prefs.Difficulty,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// LoadPreferences 讀取使用者偏好，不存在時回傳預設值
func (s *SQLiteStore) LoadPreferences(userID string) (recipe.UserPreferences, error) {
	query := `
        SELECT vegetarian, vegan, gluten_free, dairy_free,
               max_prep_time, preferred_cuisines, difficulty
        FROM preferences
        WHERE user_id = ?
    `
	var prefs recipe.UserPreferences
	var vegetarian, vegan, glutenFree, dairyFree int
	var cuisines string

	err := s.db.QueryRow(query, userID).Scan(
		&vegetarian, &vegan, &glutenFree, &dairyFree,
		&prefs.MaxPrepTime, &cuisines, &prefs.Difficulty)
	if err == sql.ErrNoRows {
		return recipe.DefaultPreferences(), nil
	}
	if err != nil {
		return recipe.DefaultPreferences(), fmt.Errorf("failed to load preferences: %w", err)
	}

	prefs.Vegetarian = vegetarian != 0
	prefs.Vegan = vegan != 0
	prefs.GlutenFree = glutenFree != 0
	prefs.DairyFree = dairyFree != 0
	if err := json.Unmarshal([]byte(cuisines), &prefs.PreferredCuisines); err != nil {
		prefs.PreferredCuisines = []string{}
	}

	return prefs, nil
}

// AddFavorite 加入收藏，已存在時不重複
func (s *SQLiteStore) AddFavorite(userID string, r *recipe.Recipe) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	query := `
        INSERT INTO favorites (user_id, recipe_id, recipe, timestamp)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(user_id, recipe_id) DO NOTHING
    `
	_, err = s.db.Exec(query, userID, r.ID, string(data),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// ListFavorites 取得收藏的食譜
func (s *SQLiteStore) ListFavorites(userID string) ([]recipe.Recipe, error) {
	rows, err := s.db.Query(
		`SELECT recipe FROM favorites WHERE user_id = ? ORDER BY timestamp DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var recipes []recipe.Recipe
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		var r recipe.Recipe
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			continue
		}
		recipes = append(recipes, r)
	}

	return recipes, rows.Err()
}

// RemoveFavorite 移除收藏
func (s *SQLiteStore) RemoveFavorite(userID string, recipeID int) error {
	_, err := s.db.Exec(
		`DELETE FROM favorites WHERE user_id = ? AND recipe_id = ?`, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// RecordSearch 記錄一次搜尋
func (s *SQLiteStore) RecordSearch(userID string, ingredients []string, recipesFound int) error {
	_, err := s.db.Exec(
		`INSERT INTO search_history (user_id, ingredients, recipe_count, timestamp) VALUES (?, ?, ?, ?)`,
		userID, strings.Join(ingredients, ","), recipesFound,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// SearchHistoryEntry 搜尋歷史條目
type SearchHistoryEntry struct {
	Ingredients []string  `json:"ingredients"`
	RecipeCount int       `json:"recipe_count"`
	Timestamp   time.Time `json:"timestamp"`
}

// ListSearchHistory 由新到舊取得搜尋歷史
func (s *SQLiteStore) ListSearchHistory(userID string, limit int) ([]SearchHistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT ingredients, recipe_count, timestamp FROM search_history
         WHERE user_id = ? ORDER BY timestamp DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	defer rows.Close()

	var entries []SearchHistoryEntry
	for rows.Next() {
		var e SearchHistoryEntry
		var ingredients, timestampStr string
		if err := rows.Scan(&ingredients, &e.RecipeCount, &timestampStr); err != nil {
			return nil, fmt.Errorf("failed to scan search history: %w", err)
		}
		if ingredients != "" {
			e.Ingredients = strings.Split(ingredients, ",")
		}
		if e.Timestamp, err = time.Parse(time.RFC3339, timestampStr); err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// UserStats 使用者統計
type UserStats struct {
	SearchCount   int `json:"search_count"`
	FavoriteCount int `json:"favorite_count"`
	FeedbackCount int `json:"feedback_count"`
	Likes         int `json:"likes"`
	Dislikes      int `json:"dislikes"`
}

// GetUserStats 取得使用者統計
func (s *SQLiteStore) GetUserStats(userID string) (UserStats, error) {
	var stats UserStats

	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM search_history WHERE user_id = ?`, userID).Scan(&stats.SearchCount); err != nil {
		return stats, fmt.Errorf("failed to count searches: %w", err)
	}
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM favorites WHERE user_id = ?`, userID).Scan(&stats.FavoriteCount); err != nil {
		return stats, fmt.Errorf("failed to count favorites: %w", err)
	}
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM feedback WHERE user_id = ?`, userID).Scan(&stats.FeedbackCount); err != nil {
		return stats, fmt.Errorf("failed to count feedback: %w", err)
	}
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM feedback WHERE user_id = ? AND rating IN ('like', 'love')`, userID).Scan(&stats.Likes); err != nil {
		return stats, fmt.Errorf("failed to count likes: %w", err)
	}
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM feedback WHERE user_id = ? AND rating = 'dislike'`, userID).Scan(&stats.Dislikes); err != nil {
		return stats, fmt.Errorf("failed to count dislikes: %w", err)
	}

	return stats, nil
}

// CleanupOldData 清理過舊的搜尋歷史與回饋，收藏和偏好保留
func (s *SQLiteStore) CleanupOldData(daysOld int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -daysOld).Format(time.RFC3339)

	if _, err := s.db.Exec(`DELETE FROM search_history WHERE timestamp < ?`, cutoff); err != nil {
		return fmt.Errorf("failed to cleanup search history: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM feedback WHERE timestamp < ?`, cutoff); err != nil {
		return fmt.Errorf("failed to cleanup feedback: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
