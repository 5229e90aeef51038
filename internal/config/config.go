package config

import (
	"os"
	"strconv"
	"time"

	"community_backend/internal/logger"

	"github.com/joho/godotenv"
)

// PointAmounts holds the configured point value of each scored action kind.
// Changing these must never require touching the aggregator or the ranker.
type PointAmounts struct {
	Like       int64 // credited to both the liker and the post's author
	Comment    int64 // credited to both the commenter and the post's author
	CreatePost int64 // credited to the author only
}

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string
	LogLevel    string
	LogJSON     bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Points PointAmounts

	// Leaderboard page sizing
	LeaderboardLimit    int
	LeaderboardMaxLimit int

	// Rate limiting
	APIRateLimit     int
	APIRateWindow    time.Duration
	IngestRateLimit  int
	IngestRateWindow time.Duration
}

// Load reads configuration from the environment (.env honored in dev).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,
		LogLevel:    envString("LOG_LEVEL", "info"),
		LogJSON:     os.Getenv("LOG_JSON") == "true",

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		Points: PointAmounts{
			Like:       envInt64("POINTS_LIKE", 1),
			Comment:    envInt64("POINTS_COMMENT", 2),
			CreatePost: envInt64("POINTS_POST", 3),
		},

		LeaderboardLimit:    envInt("LEADERBOARD_LIMIT", 10),
		LeaderboardMaxLimit: envInt("LEADERBOARD_MAX_LIMIT", 100),

		APIRateLimit:     envInt("API_RATE_LIMIT", 60),
		APIRateWindow:    envSeconds("API_RATE_WINDOW_SECONDS", time.Minute),
		IngestRateLimit:  envInt("INGEST_RATE_LIMIT", 120),
		IngestRateWindow: envSeconds("INGEST_RATE_WINDOW_SECONDS", time.Minute),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
