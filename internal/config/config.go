package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string
	RequestTimeout time.Duration

	DBDriver string
	DBDSN    string

	JWTSecret    string
	JWTExpiresIn time.Duration

	// Origins allowed by CORS; FRONTEND_URL may list several, comma-separated.
	CORSOrigins []string

	RedisAddr string // empty selects the in-process cache
	RedisDB   int
	CacheTTL  time.Duration

	UploadDir   string
	SeedOnStart bool
}

// LoadDotEnv loads path into the environment when the file exists.
// Variables already set are not overridden.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

func FromEnv() (Config, error) {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":" + envOr("PORT", "5000")
	}
	jwtTTL, err := envDuration("JWT_EXPIRES_IN", "7d")
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := envDuration("CACHE_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	timeout, err := envDuration("REQUEST_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	redisDB, err := strconv.Atoi(envOr("REDIS_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("config: REDIS_DB: %w", err)
	}

	return Config{
		HTTPAddr:       addr,
		RequestTimeout: timeout,
		DBDriver:       envOr("DB_DRIVER", "sqlite"),
		DBDSN:          envOr("DB_DSN", ""),
		JWTSecret:      envOr("JWT_SECRET", "secret"),
		JWTExpiresIn:   jwtTTL,
		CORSOrigins:    csvOr("FRONTEND_URL", "http://localhost:5173"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisDB:        redisDB,
		CacheTTL:       cacheTTL,
		UploadDir:      envOr("UPLOAD_DIR", "./data/uploads"),
		SeedOnStart:    envBool("SEED_ON_START", false),
	}, nil
}

// ParseDuration accepts Go durations plus a whole-day suffix ("7d").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

func envDuration(k, def string) (time.Duration, error) {
	d, err := ParseDuration(envOr(k, def))
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return d, nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
