package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	FrontendURL    string

	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int

	RedisURL       string
	RedisPassword  string
	ReportCacheTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecret    string
	GameTokenTTL time.Duration
	AdminKeyHash string

	Geometry     domain.Geometry
	DefaultDepth int
	BotMoveDelay time.Duration
	AIThinkDelay time.Duration
	SessionIdle  time.Duration
	MaxLiveGames int
	SimMinDepth  int
	SimMaxDepth  int
	SimWorkers   int
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	for _, origin := range GetEnvAsList("ALLOWED_ORIGINS", nil) {
		if origin != frontendURL {
			allowedOrigins = append(allowedOrigins, origin)
		}
	}

	geometry := domain.Geometry{
		Rows:    GetEnvAsInt("BOARD_ROWS", domain.DefaultRows),
		Columns: GetEnvAsInt("BOARD_COLUMNS", domain.DefaultColumns),
	}
	if !geometry.Valid() {
		log.Printf("[CONFIG] Board %dx%d cannot hold four in a row, using %dx%d",
			geometry.Rows, geometry.Columns, domain.DefaultRows, domain.DefaultColumns)
		geometry = domain.DefaultGeometry
	}

	simMin := GetEnvAsInt("SIM_MIN_DEPTH", 1)
	simMax := GetEnvAsInt("SIM_MAX_DEPTH", 5)
	if simMin < 1 {
		simMin = 1
	}
	if simMax < simMin {
		log.Printf("[CONFIG] SIM_MAX_DEPTH %d is below SIM_MIN_DEPTH %d, using %d", simMax, simMin, simMin)
		simMax = simMin
	}

	defaultDepth := GetEnvAsInt("DEFAULT_DEPTH", 3)
	if defaultDepth < bot.MinDifficulty || defaultDepth > bot.MaxDifficulty {
		log.Printf("[CONFIG] DEFAULT_DEPTH %d is outside %d..%d, using 3", defaultDepth, bot.MinDifficulty, bot.MaxDifficulty)
		defaultDepth = 3
	}

	workers := GetEnvAsInt("SIM_WORKERS", 4)
	if workers < 1 {
		workers = 1
	}

	AppConfig = &Config{
		Port:           port,
		AllowedOrigins: allowedOrigins,
		FrontendURL:    frontendURL,

		DatabaseURL:          GetEnv("DATABASE_URL", ""),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),

		RedisURL:       GetEnv("REDIS_URL", ""),
		RedisPassword:  GetEnv("REDIS_PASSWORD", ""),
		ReportCacheTTL: time.Duration(GetEnvAsInt("REPORT_CACHE_TTL_MINUTES", 60)) * time.Minute,

		KafkaBrokers: GetEnvAsList("KAFKA_BROKERS", nil),
		KafkaTopic:   GetEnv("KAFKA_TOPIC", "connect4.events"),

		JWTSecret:    GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		GameTokenTTL: time.Duration(GetEnvAsInt("GAME_TOKEN_TTL_MINUTES", 120)) * time.Minute,
		AdminKeyHash: GetEnv("ADMIN_KEY_HASH", ""),

		Geometry:     geometry,
		DefaultDepth: defaultDepth,
		BotMoveDelay: time.Duration(GetEnvAsInt("BOT_MOVE_DELAY_MS", 500)) * time.Millisecond,
		AIThinkDelay: time.Duration(GetEnvAsInt("AI_THINK_DELAY_MS", 0)) * time.Millisecond,
		SessionIdle:  time.Duration(GetEnvAsInt("SESSION_IDLE_MINUTES", 30)) * time.Minute,
		MaxLiveGames: GetEnvAsInt("MAX_LIVE_GAMES", 1000),
		SimMinDepth:  simMin,
		SimMaxDepth:  simMax,
		SimWorkers:   workers,
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsList splits a comma separated value, dropping blanks.
func GetEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
