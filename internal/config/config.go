// backend-go/internal/config/config.go
package config

import (
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Warehouse WarehouseConfig
	Cache     CacheConfig
	AI        AIConfig
	Report    ReportConfig
	Storage   StorageConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	LogLevel       string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// WarehouseConfig names the tables the dashboard reads. Names may be schema-qualified.
type WarehouseConfig struct {
	HealthTable string
	StockTable  string
	AlertsTable string
}

type CacheConfig struct {
	Enabled           bool
	RedisURL          string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	OptionsTTLSeconds int
}

type AIConfig struct {
	Enabled        bool
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

type ReportConfig struct {
	TopN        int
	PromptLimit int
}

// StorageConfig points at the S3-compatible bucket holding CSV exports.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		setDefaults()

		// Read from environment variables
		viper.AutomaticEnv()

		instance = fromViper()
	})

	return instance
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_MODE", "debug")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("SERVER_READ_TIMEOUT", 15)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 60)
	viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "aurora_inventory")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("WAREHOUSE_HEALTH_TABLE", "stock_health")
	viper.SetDefault("WAREHOUSE_STOCK_TABLE", "daily_stock")
	viper.SetDefault("WAREHOUSE_ALERTS_TABLE", "stock_alerts")
	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_HOST", "127.0.0.1")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_OPTIONS_TTL_SECONDS", 300)
	viper.SetDefault("AI_ENABLED", true)
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_BASE_URL", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("AI_TIMEOUT_SECONDS", 20)
	viper.SetDefault("REPORT_TOP_N", 5)
	viper.SetDefault("REPORT_PROMPT_LIMIT", 30)
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("STORAGE_USE_SSL", true)
}

func fromViper() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Mode:           viper.GetString("SERVER_MODE"),
			LogLevel:       viper.GetString("LOG_LEVEL"),
			ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Warehouse: WarehouseConfig{
			HealthTable: viper.GetString("WAREHOUSE_HEALTH_TABLE"),
			StockTable:  viper.GetString("WAREHOUSE_STOCK_TABLE"),
			AlertsTable: viper.GetString("WAREHOUSE_ALERTS_TABLE"),
		},
		Cache: CacheConfig{
			Enabled:           viper.GetBool("CACHE_ENABLED"),
			RedisURL:          viper.GetString("REDIS_URL"),
			RedisHost:         viper.GetString("REDIS_HOST"),
			RedisPort:         viper.GetString("REDIS_PORT"),
			RedisPassword:     viper.GetString("REDIS_PASSWORD"),
			RedisDB:           viper.GetInt("REDIS_DB"),
			OptionsTTLSeconds: viper.GetInt("CACHE_OPTIONS_TTL_SECONDS"),
		},
		AI: AIConfig{
			Enabled:        viper.GetBool("AI_ENABLED"),
			APIKey:         viper.GetString("OPENAI_API_KEY"),
			BaseURL:        viper.GetString("OPENAI_BASE_URL"),
			Model:          viper.GetString("OPENAI_MODEL"),
			TimeoutSeconds: viper.GetInt("AI_TIMEOUT_SECONDS"),
		},
		Report: ReportConfig{
			TopN:        viper.GetInt("REPORT_TOP_N"),
			PromptLimit: viper.GetInt("REPORT_PROMPT_LIMIT"),
		},
		Storage: StorageConfig{
			Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
			AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
			Bucket:    viper.GetString("STORAGE_BUCKET"),
			Region:    viper.GetString("STORAGE_REGION"),
			UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
		},
	}
}
