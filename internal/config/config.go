// internal/config/config.go
//
// Process configuration for the ladder server and CLI.
// Responsibilities:
//   - Load .env (godotenv) and read typed environment variables with defaults.
//   - Overlay an optional YAML rules file onto the default game rules.
//
// Environment:
//   PORT, LOG_LEVEL, CORPUS_FILE, MIN_FREQUENCY, CACHE_DIR, CACHE_BACKEND,
//   CACHE_LOAD_TIMEOUT, PAIR_TARGET, SESSION_STORE, SESSION_DSN, SESSION_TTL,
//   JWT_SECRET, CLIENT_ORIGIN, DAILY_SALT, LADDER_RULES_FILE.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordladder/internal/game"
	"github.com/robalobadob/wordladder/internal/words"
)

// Config is everything main and ladderctl need to assemble an engine.
type Config struct {
	Port     string
	LogLevel string

	CorpusFile   string // empty means the embedded corpus
	MinFrequency int

	CacheDir         string
	CacheBackend     string // dir | sqlite | none
	CacheLoadTimeout time.Duration
	PairTarget       int // 0 means min(500, 2n)

	SessionStore string // memory | sqlite | postgres
	SessionDSN   string
	SessionTTL   time.Duration // 0 disables the janitor

	JWTSecret    string
	ClientOrigin string
	DailySalt    string

	RulesFile string
	Rules     game.Rules
}

// Load reads .env (if present) and the environment, then the rules file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("ignoring unreadable .env")
	}

	c := Config{
		Port:             getEnv("PORT", "5175"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CorpusFile:       getEnv("CORPUS_FILE", ""),
		MinFrequency:     getEnvInt("MIN_FREQUENCY", words.DefaultMinFrequency),
		CacheDir:         getEnv("CACHE_DIR", "./data/cache"),
		CacheBackend:     getEnv("CACHE_BACKEND", "dir"),
		CacheLoadTimeout: getEnvDuration("CACHE_LOAD_TIMEOUT", 10*time.Second),
		PairTarget:       getEnvInt("PAIR_TARGET", 0),
		SessionStore:     getEnv("SESSION_STORE", "memory"),
		SessionDSN:       getEnv("SESSION_DSN", "./data/sessions.db"),
		SessionTTL:       getEnvDuration("SESSION_TTL", 24*time.Hour),
		JWTSecret:        getEnv("JWT_SECRET", "dev_secret_change_me"),
		ClientOrigin:     getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:        getEnv("DAILY_SALT", "local_dev_salt"),
		RulesFile:        getEnv("LADDER_RULES_FILE", ""),
	}

	rules, err := LoadRules(c.RulesFile)
	if err != nil {
		return Config{}, err
	}
	c.Rules = rules
	return c, nil
}

// LoadRules overlays the YAML file at path onto game.DefaultRules. Keys
// absent from the file keep their defaults; an empty path returns the
// defaults unchanged.
func LoadRules(path string) (game.Rules, error) {
	r := game.DefaultRules()
	if path == "" {
		return r, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return game.Rules{}, fmt.Errorf("read rules %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &r); err != nil {
		return game.Rules{}, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return game.Rules{}, fmt.Errorf("rules %s: %w", path, err)
	}
	return r, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt parses k as an int; unparsable values log and fall back to def.
func getEnvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		return def
	}
	return n
}

// getEnvDuration accepts Go durations ("90s") or bare seconds ("90").
func getEnvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	log.Warn().Str("key", k).Str("value", v).Msg("not a duration, using default")
	return def
}
