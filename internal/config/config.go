package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Cache         CacheConfig
	Log           LogConfig
	Overpass      OverpassConfig
	Mapbox        MapboxConfig
	Session       SessionConfig
	Notifications NotificationsConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	Env            string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	MatrixCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// OverpassConfig - настройки публичного Overpass API
type OverpassConfig struct {
	BaseURL        string
	RequestTimeout int // секунды
	QueryTimeout   int // секунды, [timeout:N] внутри запроса
}

type MapboxConfig struct {
	AccessToken     string
	BaseURL         string
	MaxMatrixPoints int
	WalkingProfile  string
	RequestTimeout  int // секунды
}

// SessionConfig - время жизни сессии карты (и её кеша вьюпорта)
type SessionConfig struct {
	IdleTTL         time.Duration
	CleanupInterval time.Duration
}

type NotificationsConfig struct {
	StreamEnabled bool
	StreamMaxLen  int64
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env необязателен - в контейнере всё приходит из окружения
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	setDefaults()

	cfg := &Config{
		Server: ServerConfig{
			Host:           viper.GetString("API_HOST"),
			Port:           viper.GetInt("API_PORT"),
			Env:            viper.GetString("API_ENV"),
			AllowedOrigins: parseList(viper.GetString("API_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			MatrixCacheTTL: time.Duration(viper.GetInt("MATRIX_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Overpass: OverpassConfig{
			BaseURL:        viper.GetString("OVERPASS_BASE_URL"),
			RequestTimeout: viper.GetInt("OVERPASS_REQUEST_TIMEOUT"),
			QueryTimeout:   viper.GetInt("OVERPASS_QUERY_TIMEOUT"),
		},
		Mapbox: MapboxConfig{
			AccessToken:     viper.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:         viper.GetString("MAPBOX_BASE_URL"),
			MaxMatrixPoints: viper.GetInt("MAPBOX_MAX_MATRIX_POINTS"),
			WalkingProfile:  viper.GetString("MAPBOX_WALKING_PROFILE"),
			RequestTimeout:  viper.GetInt("MAPBOX_REQUEST_TIMEOUT"),
		},
		Session: SessionConfig{
			IdleTTL:         time.Duration(viper.GetInt("SESSION_IDLE_TTL")) * time.Second,
			CleanupInterval: time.Duration(viper.GetInt("SESSION_CLEANUP_INTERVAL")) * time.Second,
		},
		Notifications: NotificationsConfig{
			StreamEnabled: viper.GetBool("NOTIFICATIONS_STREAM_ENABLED"),
			StreamMaxLen:  viper.GetInt64("NOTIFICATIONS_STREAM_MAXLEN"),
		},
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("API_HOST", "0.0.0.0")
	viper.SetDefault("API_PORT", 8080)
	viper.SetDefault("API_ENV", "development")
	viper.SetDefault("API_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", 1800)
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", 300)
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("MATRIX_CACHE_TTL", 3600)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("OVERPASS_BASE_URL", "https://overpass-api.de/api/interpreter")
	viper.SetDefault("OVERPASS_REQUEST_TIMEOUT", 30)
	viper.SetDefault("OVERPASS_QUERY_TIMEOUT", 25)
	viper.SetDefault("MAPBOX_BASE_URL", "https://api.mapbox.com")
	viper.SetDefault("MAPBOX_MAX_MATRIX_POINTS", 25)
	viper.SetDefault("MAPBOX_WALKING_PROFILE", "mapbox/walking")
	viper.SetDefault("MAPBOX_REQUEST_TIMEOUT", 10)
	viper.SetDefault("SESSION_IDLE_TTL", 1800)
	viper.SetDefault("SESSION_CLEANUP_INTERVAL", 300)
	viper.SetDefault("NOTIFICATIONS_STREAM_ENABLED", true)
	viper.SetDefault("NOTIFICATIONS_STREAM_MAXLEN", 1000)
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
