package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Environment   string
	Name          string
	Version       string
	LogLevel      string
	MigrationsDir string
	HTTP          HTTPConfig
	Postgres      PostgresConfig
	JWT           JWTConfig
	Uploads       UploadsConfig
	S3            S3Config
	Redis         RedisConfig
	RateLimit     RateLimitConfig
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxHeaderMB  int
}

type PostgresConfig struct {
	Host               string
	Port               string
	Username           string
	Password           string
	DBName             string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	MaxLifetime        time.Duration
}

type JWTConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// UploadsConfig описывает хранение изображений объявлений.
// BaseURL используется для построения абсолютных ссылок на изображения.
type UploadsConfig struct {
	BaseURL string
	Dir     string
	MaxMB   int
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Window  time.Duration
	General int
	Auth    int
}

func NewConfig() (*Config, error) {
	httpReadTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	httpWriteTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return nil, err
	}

	postgresMaxLifetime, err := time.ParseDuration(getEnv("POSTGRES_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, err
	}

	jwtTokenTTL, err := time.ParseDuration(getEnv("JWT_TOKEN_TTL", "168h"))
	if err != nil {
		return nil, err
	}

	rateLimitWindow, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "15m"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment:   getEnv("APP_ENV", "development"),
		Name:          getEnv("APP_NAME", "rent-a-room-api"),
		Version:       getEnv("APP_VERSION", "2.1.0"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
		HTTP: HTTPConfig{
			Port:         getEnv("HTTP_PORT", "3000"),
			ReadTimeout:  httpReadTimeout,
			WriteTimeout: httpWriteTimeout,
			MaxHeaderMB:  getEnvAsInt("HTTP_MAX_HEADER_MB", 1),
		},
		Postgres: PostgresConfig{
			Host:               getEnv("POSTGRES_HOST", "localhost"),
			Port:               getEnv("POSTGRES_PORT", "5432"),
			Username:           getEnv("POSTGRES_USER", "postgres"),
			Password:           getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:             getEnv("POSTGRES_DB", "rentaroom"),
			SSLMode:            getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 2),
			MaxLifetime:        postgresMaxLifetime,
		},
		JWT: JWTConfig{
			SigningKey: getEnv("JWT_SIGNING_KEY", "rentaroom_super_secret_key_2026"),
			TokenTTL:   jwtTokenTTL,
		},
		Uploads: UploadsConfig{
			BaseURL: getEnv("BASE_URL", "http://localhost:3000"),
			Dir:     getEnv("UPLOAD_DIR", "./uploads"),
			MaxMB:   getEnvAsInt("UPLOAD_MAX_MB", 10),
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "rentaroom"),
			UseSSL:          getEnv("S3_USE_SSL", "true") == "true",
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Window:  rateLimitWindow,
			General: getEnvAsInt("RATE_LIMIT_GENERAL", 200),
			Auth:    getEnvAsInt("RATE_LIMIT_AUTH", 20),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value := 0
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}

	return value
}
