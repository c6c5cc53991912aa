package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config 由 .env 檔與環境變數組成，環境變數優先
type Config struct {
	Env  string `mapstructure:"APP_ENV"`
	Port int    `mapstructure:"PORT"`

	// DatabaseURL 為空時由 DB_* 組出
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      int    `mapstructure:"DB_PORT"`
	DBName      string `mapstructure:"DB_DATABASE"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`

	// RedisAddr 為空時不啟用 Redis，登出無法撤銷 token
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	JWTSecret    string        `mapstructure:"JWT_SECRET"`
	SessionTTL   time.Duration `mapstructure:"SESSION_TTL"`
	AuthRequired bool          `mapstructure:"AUTH_REQUIRED"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`
	FrontendURL string   `mapstructure:"FRONTEND_URL"`

	HashWorkers   int    `mapstructure:"HASH_WORKERS"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	SentryDSN     string `mapstructure:"SENTRY_DSN"`
	RunMigrations bool   `mapstructure:"RUN_MIGRATIONS"`

	AdminName     string `mapstructure:"ADMIN_NAME"`
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
}

// Load 讀取 filePath（不存在時略過）與環境變數，依 APP_ENV 套用預設值後驗證
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if filePath != "" {
		if _, err := os.Stat(filePath); err == nil {
			v.SetConfigFile(filePath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyProfile()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("PORT", 3010)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_DATABASE", "")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SESSION_TTL", 24*time.Hour)
	v.SetDefault("AUTH_REQUIRED", false)
	v.SetDefault("CORS_ORIGINS", []string{})
	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("HASH_WORKERS", 4)
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("SENTRY_DSN", "")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("ADMIN_NAME", "admin")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
}

// applyProfile 補上依環境而異的預設值
func (c *Config) applyProfile() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.CORSOrigins = splitList(c.CORSOrigins)

	if c.IsProduction() {
		if len(c.CORSOrigins) == 0 {
			if c.FrontendURL != "" {
				c.CORSOrigins = []string{c.FrontendURL}
			} else {
				c.CORSOrigins = []string{"*"}
			}
		}
		if c.LogLevel == "" {
			c.LogLevel = "info"
		}
		return
	}

	if c.DBHost == "" {
		c.DBHost = "localhost"
	}
	if c.DBName == "" {
		c.DBName = "lunai_db"
	}
	if c.DBUser == "" {
		c.DBUser = "postgres"
	}
	if c.DBPassword == "" {
		c.DBPassword = "password"
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"http://localhost:4200", "http://localhost:3000"}
	}
	if c.LogLevel == "" {
		c.LogLevel = "debug"
	}
}

func (c *Config) Validate() error {
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("invalid APP_ENV %q", c.Env)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.DatabaseURL == "" && (c.DBHost == "" || c.DBName == "") {
		return errors.New("DATABASE_URL or DB_HOST and DB_DATABASE must be set")
	}
	if c.AuthRequired && c.JWTSecret == "" {
		return errors.New("AUTH_REQUIRED needs JWT_SECRET")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("invalid SESSION_TTL %s", c.SessionTTL)
	}
	if c.HashWorkers <= 0 {
		return fmt.Errorf("invalid HASH_WORKERS %d", c.HashWorkers)
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Addr 是 HTTP 伺服器的監聽位址
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// splitList 處理環境變數以逗號分隔的清單
func splitList(in []string) []string {
	out := []string{}
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
