package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"fridge-recipes/internal/core/ingredient"
	"fridge-recipes/internal/core/rank"
	"fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/core/recipecache"
	"fridge-recipes/internal/infrastructure/config"
	"fridge-recipes/internal/infrastructure/store"
	"fridge-recipes/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const usage = `Usage: fridge <command> [options]

Commands:
  search     以冰箱食材搜尋並排序食譜
  feedback   對食譜留下評價 (like/dislike/love/tried)
  favorite   管理收藏 (add/list/remove)
  history    查看搜尋歷史
  train      以累積的回饋訓練排序模型
  stats      查看使用統計
`

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	common.LogInfo("啟動應用",
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("command", os.Args[1]),
	)
	common.LogInfo("載入設定",
		zap.String("provider_api_key", config.MaskAPIKey(cfg.Provider.APIKey)),
		zap.String("store_path", cfg.Store.Path),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	a, err := buildApp(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize application", zap.Error(err))
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "search":
		err = a.runSearch(ctx, os.Args[2:])
	case "feedback":
		err = a.runFeedback(os.Args[2:])
	case "favorite":
		err = a.runFavorite(os.Args[2:])
	case "history":
		err = a.runHistory(os.Args[2:])
	case "train":
		err = a.runTrain()
	case "stats":
		err = a.runStats(os.Args[2:])
	default:
		fmt.Print(usage)
		os.Exit(1)
	}

	if err != nil {
		common.LogError("指令執行失敗",
			zap.String("command", os.Args[1]),
			zap.Error(err),
		)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	common.LogInfo("應用結束")
}

// app 聚合所有指令共用的元件
type app struct {
	cfg      *config.Config
	store    *store.SQLiteStore
	cache    recipecache.Store
	model    *rank.Model
	pipeline *rank.Pipeline
}

func buildApp(cfg *config.Config) (*app, error) {
	sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// Redis 位址有設定時優先使用，連不上或未設定則退回記憶體快取
	var cacheStore recipecache.Store
	if cfg.Cache.Enabled {
		if cfg.Cache.RedisAddr != "" {
			redisStore, err := recipecache.NewRedisStore(&cfg.Cache)
			if err != nil {
				common.LogWarn("Redis 連線失敗，改用記憶體快取", zap.Error(err))
			} else {
				cacheStore = redisStore
			}
		}
		if cacheStore == nil {
			if mgr := recipecache.NewManager(&cfg.Cache); mgr != nil {
				cacheStore = mgr
			}
		}
	}

	model := rank.NewModel(cfg.Ranking.ModelDir, cfg.Ranking.MinTraining)
	if err := model.Load(); err != nil {
		common.LogWarn("載入模型失敗，先以規則排序", zap.Error(err))
	}

	normalizer := ingredient.NewNormalizer(
		ingredient.WithFuzzyThreshold(cfg.Ranking.FuzzyThreshold),
	)
	provider := recipe.NewSpoonacularProvider(&cfg.Provider)
	ranker := rank.NewRanker(model, sqlStore, cfg.Ranking)
	pipeline := rank.NewPipeline(normalizer, cacheStore, provider, ranker, sqlStore, sqlStore)

	return &app{
		cfg:      cfg,
		store:    sqlStore,
		cache:    cacheStore,
		model:    model,
		pipeline: pipeline,
	}, nil
}

func (a *app) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			common.LogWarn("關閉快取失敗", zap.Error(err))
		}
	}
	if err := a.store.Close(); err != nil {
		common.LogWarn("關閉儲存失敗", zap.Error(err))
	}
}

func (a *app) runSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	user := fs.String("user", "", "使用者 ID，未指定時隨機產生")
	maxResults := fs.Int("max", 0, "最多回傳幾筆食譜")
	mealType := fs.String("meal", "", "餐別，如 breakfast、dinner")
	cuisine := fs.String("cuisine", "", "料理菜系")
	diet := fs.String("diet", "", "飲食限制，如 vegetarian")
	asJSON := fs.Bool("json", false, "以 JSON 輸出")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("search 需要食材文字，例如: fridge search \"eggs, spinach\"")
	}

	userID := *user
	if userID == "" {
		userID = common.GenerateUUID()
	}

	opts := recipe.SearchOptions{
		MaxResults: *maxResults,
		MealType:   *mealType,
		Cuisine:    *cuisine,
		Diet:       *diet,
	}
	ranked, err := a.pipeline.Search(ctx, userID, strings.Join(fs.Args(), " "), opts)
	if err != nil {
		return err
	}

	if *asJSON {
		return json.NewEncoder(os.Stdout).Encode(ranked)
	}
	if len(ranked) == 0 {
		fmt.Println("沒有找到可用的食材")
		return nil
	}
	recipes := make([]recipe.Recipe, 0, len(ranked))
	for i, r := range ranked {
		fmt.Printf("%2d. [%.2f] %s (#%d, %s, %s)\n",
			i+1, r.FinalScore, r.Title, r.ID,
			common.FormatTime(r.ReadyInMinutes), recipe.EstimateDifficulty(&r.Recipe))
		if r.Summary != "" {
			fmt.Printf("    %s\n", common.TruncateText(common.CleanHTML(r.Summary), 100))
		}
		recipes = append(recipes, r.Recipe)
	}
	if shopping := recipe.ShoppingList(recipes); len(shopping) > 0 {
		fmt.Printf("購物清單: %s\n", common.FormatIngredientList(shopping, 10))
	}
	return nil
}

func (a *app) runFeedback(args []string) error {
	fs := flag.NewFlagSet("feedback", flag.ExitOnError)
	user := fs.String("user", "", "使用者 ID")
	recipeID := fs.Int("recipe", 0, "食譜 ID")
	rating := fs.String("rating", "", "like, dislike, love 或 tried")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" || *recipeID == 0 || *rating == "" {
		return fmt.Errorf("feedback 需要 -user、-recipe 與 -rating")
	}

	if err := a.store.RecordFeedback(*user, *recipeID, recipe.Rating(*rating), nil); err != nil {
		return err
	}
	fmt.Println("已記錄評價")
	return nil
}

func (a *app) runFavorite(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("favorite 需要子指令: add、list 或 remove")
	}
	fs := flag.NewFlagSet("favorite", flag.ExitOnError)
	user := fs.String("user", "", "使用者 ID")
	recipeID := fs.Int("recipe", 0, "食譜 ID")
	title := fs.String("title", "", "食譜名稱（add 用）")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("favorite 需要 -user")
	}

	switch args[0] {
	case "add":
		if *recipeID == 0 {
			return fmt.Errorf("favorite add 需要 -recipe")
		}
		r := &recipe.Recipe{ID: *recipeID, Title: *title}
		if err := a.store.AddFavorite(*user, r); err != nil {
			return err
		}
		fmt.Println("已加入收藏")
	case "list":
		favorites, err := a.store.ListFavorites(*user)
		if err != nil {
			return err
		}
		for _, r := range favorites {
			fmt.Printf("#%d %s\n", r.ID, r.Title)
		}
	case "remove":
		if *recipeID == 0 {
			return fmt.Errorf("favorite remove 需要 -recipe")
		}
		if err := a.store.RemoveFavorite(*user, *recipeID); err != nil {
			return err
		}
		fmt.Println("已移除收藏")
	default:
		return fmt.Errorf("未知的 favorite 子指令: %s", args[0])
	}
	return nil
}

func (a *app) runHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	user := fs.String("user", "", "使用者 ID")
	limit := fs.Int("limit", 20, "最多顯示幾筆")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("history 需要 -user")
	}

	entries, err := a.store.ListSearchHistory(*user, *limit)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s  %s (%d 筆食譜)\n",
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			common.FormatIngredientList(e.Ingredients, 5), e.RecipeCount)
	}
	return nil
}

func (a *app) runTrain() error {
	records, err := a.store.AllFeedback()
	if err != nil {
		return err
	}
	if err := a.model.Train(records); err != nil {
		return err
	}
	fmt.Printf("模型訓練完成，共 %d 筆回饋\n", len(records))
	return nil
}

func (a *app) runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	user := fs.String("user", "", "使用者 ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("stats 需要 -user")
	}

	stats, err := a.store.GetUserStats(*user)
	if err != nil {
		return err
	}
	fmt.Printf("搜尋次數: %d\n收藏數: %d\n評價數: %d (喜歡 %d / 不喜歡 %d)\n",
		stats.SearchCount, stats.FavoriteCount, stats.FeedbackCount,
		stats.Likes, stats.Dislikes)
	return nil
}
