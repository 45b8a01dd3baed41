package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"

	ImageHostNone  = "none"
	ImageHostImgBB = "imgbb"
	ImageHostS3    = "s3"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DBDriver        string
	DatabaseURL     string
	DBMaxOpenConns  int
	DBTLSCA         string
	DBTLSCert       string
	DBTLSKey        string
	DBTLSSkipVerify bool
	AutoMigrate     bool

	ServerPort int

	JWTSecretKey     string
	SuperAdminSecret string
	EnforceAdminAuth bool

	ImageHost         string
	ImgBBAPIKey       string
	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Bucket          string
	S3PublicBaseURL   string

	RedisURL       string
	CacheTTL       time.Duration
	LoginRateLimit int

	AMQPURL      string
	AMQPExchange string

	CORSAllowedOrigins []string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:           strings.ToLower(getenv("DB_DRIVER", DriverPostgres)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBTLSCA:            os.Getenv("DB_TLS_CA"),
		DBTLSCert:          os.Getenv("DB_TLS_CERT"),
		DBTLSKey:           os.Getenv("DB_TLS_KEY"),
		JWTSecretKey:       os.Getenv("JWT_SECRET_KEY"),
		SuperAdminSecret:   os.Getenv("SUPER_ADMIN_SECRET"),
		ImgBBAPIKey:        os.Getenv("IMGBB_API_KEY"),
		S3Endpoint:         os.Getenv("S3_ENDPOINT"),
		S3Region:           getenv("S3_REGION", "auto"),
		S3AccessKeyID:      os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey:  os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		S3PublicBaseURL:    os.Getenv("S3_PUBLIC_BASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		AMQPURL:            os.Getenv("AMQP_URL"),
		AMQPExchange:       getenv("AMQP_EXCHANGE", "courts.events"),
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want postgres, mysql or sqlite)", cfg.DBDriver)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	var err error
	if cfg.ServerPort, err = envInt("SERVER_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if cfg.DBMaxOpenConns, err = envInt("DB_MAX_OPEN_CONNS", 5); err != nil {
		return nil, err
	}
	if cfg.DBMaxOpenConns < 1 {
		return nil, fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", cfg.DBMaxOpenConns)
	}
	if cfg.LoginRateLimit, err = envInt("LOGIN_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.DBTLSSkipVerify, err = envBool("DB_TLS_SKIP_VERIFY", false); err != nil {
		return nil, err
	}
	if cfg.AutoMigrate, err = envBool("AUTO_MIGRATE", true); err != nil {
		return nil, err
	}
	if cfg.EnforceAdminAuth, err = envBool("ENFORCE_ADMIN_AUTH", false); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = envDuration("CACHE_TTL", 30*time.Second); err != nil {
		return nil, err
	}

	cfg.ImageHost = strings.ToLower(os.Getenv("IMAGE_HOST"))
	if cfg.ImageHost == "" {
		// Как в исходном деплое: ImgBB, если задан ключ
		cfg.ImageHost = ImageHostNone
		if cfg.ImgBBAPIKey != "" {
			cfg.ImageHost = ImageHostImgBB
		}
	}
	switch cfg.ImageHost {
	case ImageHostNone:
	case ImageHostImgBB:
		if cfg.ImgBBAPIKey == "" {
			return nil, fmt.Errorf("IMAGE_HOST=imgbb requires IMGBB_API_KEY")
		}
	case ImageHostS3:
		if cfg.S3Endpoint == "" || cfg.S3AccessKeyID == "" || cfg.S3SecretAccessKey == "" || cfg.S3Bucket == "" || cfg.S3PublicBaseURL == "" {
			return nil, fmt.Errorf("IMAGE_HOST=s3 requires S3_ENDPOINT, S3_ACCESS_KEY_ID, S3_SECRET_ACCESS_KEY, S3_BUCKET and S3_PUBLIC_BASE_URL")
		}
	default:
		return nil, fmt.Errorf("unsupported IMAGE_HOST %q (want none, imgbb or s3)", cfg.ImageHost)
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
