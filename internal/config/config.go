package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // コンテナにzoneinfoが無くてもAPP_TIMEZONEを読めるように

	"github.com/joho/godotenv"
)

const (
	defaultPort           = "8080"
	defaultTimezone       = "Asia/Jakarta"
	defaultAccessTokenTTL = 12 * time.Hour
	defaultSessionIdleTTL = 12 * time.Hour
	defaultBcryptCost     = 12
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL string // 指定があればPOSTGRES_*より優先

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	JWTSecret      string        // JWT署名シークレット
	AccessTokenTTL time.Duration // アクセストークンの有効期限
	SessionIdleTTL time.Duration // 放置された端末のカートを捨てるまで
	BcryptCost     int

	GoEnv    string         // development/production
	Location *time.Location // 営業日の基準（取引番号・日次集計）

	RedisAddr     string // 空ならキャッシュ無し
	RedisPassword string
	RedisDB       int

	// レシートのヘッダ
	ShopName    string
	ShopAddress string
	ShopPhone   string
}

// Loadは環境変数（.envがあれば先に読む）
func Load() (Config, error) {
	// .envは無くてもよい
	_ = godotenv.Load()

	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := atoiDefault("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	bcryptCost, err := atoiDefault("BCRYPT_COST", defaultBcryptCost)
	if err != nil {
		return Config{}, err
	}
	accessTTL, err := durationDefault("ACCESS_TOKEN_TTL", defaultAccessTokenTTL)
	if err != nil {
		return Config{}, err
	}
	idleTTL, err := durationDefault("SESSION_IDLE_TTL", defaultSessionIdleTTL)
	if err != nil {
		return Config{}, err
	}

	tz := getenv("APP_TIMEZONE", defaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("APP_TIMEZONE is invalid: %w", err)
	}

	cfg := Config{
		Port: getenv("PORT", defaultPort),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: accessTTL,
		SessionIdleTTL: idleTTL,
		BcryptCost:     bcryptCost,

		GoEnv:    getenv("GO_ENV", "development"),
		Location: loc,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		ShopName:    getenv("SHOP_NAME", "CafePos"),
		ShopAddress: getenv("SHOP_ADDRESS", "Jl. Kopi No. 123, Jakarta"),
		ShopPhone:   getenv("SHOP_PHONE", "021-12345678"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" {
		if cfg.PostgresUser == "" {
			return Config{}, fmt.Errorf("POSTGRES_USER is required")
		}
		if cfg.PostgresDB == "" {
			return Config{}, fmt.Errorf("POSTGRES_DB is required")
		}
		if cfg.PostgresHost == "" {
			return Config{}, fmt.Errorf("POSTGRES_HOST is required")
		}
	}
	if cfg.GoEnv != "development" && cfg.GoEnv != "production" {
		return Config{}, fmt.Errorf("GO_ENV must be development or production")
	}

	return cfg, nil
}

// DSN はgormに渡す接続文字列
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func (c Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}
