package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Provider ProviderConfig `mapstructure:"provider"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Ranking  RankingConfig  `mapstructure:"ranking"`
	Store    StoreConfig    `mapstructure:"store"`
	LogLevel string         `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ProviderConfig 食譜供應商設定（Spoonacular）
type ProviderConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxResults int           `mapstructure:"max_results"`
}

// CacheConfig 食譜快取設定
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RedisAddr       string        `mapstructure:"redis_addr"` // 空字串表示使用記憶體快取
}

// RankingConfig 排序設定
// 混合權重是部署層級的設定值，不是寫死的常數
type RankingConfig struct {
	BaseWeight     float64 `mapstructure:"base_weight"`
	MLWeight       float64 `mapstructure:"ml_weight"`
	MinFeedback    int     `mapstructure:"min_feedback"`
	MinTraining    int     `mapstructure:"min_training"`
	FuzzyThreshold int     `mapstructure:"fuzzy_threshold"`
	ModelDir       string  `mapstructure:"model_dir"`
}

// StoreConfig 回饋/偏好儲存設定
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（不存在時不視為錯誤）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("provider.api_key", "SPOONACULAR_API_KEY")
	viper.BindEnv("provider.base_url", "SPOONACULAR_BASE_URL")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	viper.BindEnv("ranking.model_dir", "MODEL_DIR")
	viper.BindEnv("store.path", "STORE_PATH")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "fridge-recipes")

	// 供應商設定
	viper.SetDefault("provider.base_url", "https://api.spoonacular.com/recipes")
	viper.SetDefault("provider.timeout", "10s")
	viper.SetDefault("provider.max_results", 10)

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")
	viper.SetDefault("cache.redis_addr", "")

	// 排序設定
	viper.SetDefault("ranking.base_weight", 0.6)
	viper.SetDefault("ranking.ml_weight", 0.4)
	viper.SetDefault("ranking.min_feedback", 5)
	viper.SetDefault("ranking.min_training", 10)
	viper.SetDefault("ranking.fuzzy_threshold", 85)
	viper.SetDefault("ranking.model_dir", "models")

	// 儲存設定
	viper.SetDefault("store.path", "data/app.db")

	viper.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證排序設定
	if config.Ranking.BaseWeight < 0 || config.Ranking.MLWeight < 0 {
		return fmt.Errorf("invalid ranking weights")
	}
	if config.Ranking.FuzzyThreshold < 0 || config.Ranking.FuzzyThreshold > 100 {
		return fmt.Errorf("invalid fuzzy threshold")
	}
	if config.Ranking.MinFeedback <= 0 || config.Ranking.MinTraining <= 0 {
		return fmt.Errorf("invalid ranking feedback thresholds")
	}

	// 驗證供應商設定
	if config.Provider.Timeout <= 0 {
		return fmt.Errorf("invalid provider timeout")
	}
	if config.Provider.MaxResults <= 0 {
		return fmt.Errorf("invalid provider max results")
	}

	return nil
}
