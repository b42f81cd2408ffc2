package config

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Product listing orders accepted by PRODUCT_LIST_ORDER. The source system
// flip-flopped between the two across revisions, so the order is a knob with
// id-descending as the documented default.
const (
	ListOrderIDDesc    = "id_desc"
	ListOrderPriceDesc = "price_desc"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort           string
	MySQLDSN             string
	RedisAddr            string
	RedisDB              int
	RedisPass            string
	JWTSecret            string
	AllowedOrigins       []string
	ProductListOrder     string
	DuplicateEmailStatus int
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/store?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		// Default is for local development only; set JWT_SECRET in production.
		JWTSecret:            getEnv("JWT_SECRET", "change-me"),
		AllowedOrigins:       splitList(getEnv("ALLOWED_ORIGINS", "*")),
		ProductListOrder:     getEnv("PRODUCT_LIST_ORDER", ListOrderIDDesc),
		DuplicateEmailStatus: getEnvInt("DUPLICATE_EMAIL_STATUS", http.StatusConflict),
	}

	if cfg.ProductListOrder != ListOrderPriceDesc {
		cfg.ProductListOrder = ListOrderIDDesc
	}
	if cfg.DuplicateEmailStatus != http.StatusBadRequest {
		cfg.DuplicateEmailStatus = http.StatusConflict
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
