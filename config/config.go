package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via config file or the environment.
type AppConfig struct {
	AppPort string
	// JWTSecret is reserved for signed tokens; sessions currently use opaque random tokens.
	JWTSecret          string
	DatabaseDriver     string
	DatabaseURL        string
	RateLimitPerMinute int
	AllowedOrigins     []string
	// Gin framework configuration
	GinMode string
	GinPath string
	// Redis for caching and registration throttling; empty host disables it
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
	// Registration security
	RegisterMaxPerIPPerDay int
	// Observability
	OTLPEndpoint   string
	MetricsEnabled bool
}

var cfg AppConfig
var loaded bool

// envBindings maps config keys onto the environment variables that override them.
var envBindings = map[string][]string{
	"AppPort":                {"APP_PORT", "PORT"},
	"JWTSecret":              {"JWT_SECRET"},
	"DatabaseDriver":         {"DB_DRIVER"},
	"DatabaseURL":            {"DATABASE_URL"},
	"RateLimitPerMinute":     {"RATE_LIMIT_PER_MINUTE"},
	"AllowedOrigins":         {"ALLOWED_ORIGINS"},
	"GinMode":                {"GIN_MODE"},
	"GinPath":                {"GIN_PATH", "GIN_LOG_PATH"},
	"RedisHost":              {"REDIS_HOST"},
	"RedisPort":              {"REDIS_PORT"},
	"RedisDB":                {"REDIS_DB"},
	"RedisPassword":          {"REDIS_PASSWORD"},
	"LogLevel":               {"LOG_LEVEL"},
	"LogPath":                {"LOG_PATH"},
	"LogMaxSizeMB":           {"LOG_MAX_SIZE_MB"},
	"LogMaxBackups":          {"LOG_MAX_BACKUPS"},
	"LogMaxAgeDays":          {"LOG_MAX_AGE_DAYS"},
	"LogCompress":            {"LOG_COMPRESS"},
	"RegisterMaxPerIPPerDay": {"REGISTER_MAX_PER_IP_PER_DAY"},
	"OTLPEndpoint":           {"OTEL_EXPORTER_OTLP_ENDPOINT"},
	"MetricsEnabled":         {"METRICS_ENABLED"},
}

// Load loads the application configuration. It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	c, err := LoadFrom(filepath.Join("config", "config.json"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	cfg = c
	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// LoadFrom reads path (missing file is fine), applies defaults and then environment overrides.
func LoadFrom(path string) (AppConfig, error) {
	v := viper.New()
	applyDefaults(v)

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return AppConfig{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
				return AppConfig{}, fmt.Errorf("read %s: %w", path, err)
			}
		}
	}

	c := AppConfig{
		AppPort:                v.GetString("AppPort"),
		JWTSecret:              v.GetString("JWTSecret"),
		DatabaseDriver:         strings.ToLower(strings.TrimSpace(v.GetString("DatabaseDriver"))),
		DatabaseURL:            v.GetString("DatabaseURL"),
		RateLimitPerMinute:     v.GetInt("RateLimitPerMinute"),
		AllowedOrigins:         splitList(v.GetStringSlice("AllowedOrigins")),
		GinMode:                v.GetString("GinMode"),
		GinPath:                v.GetString("GinPath"),
		RedisHost:              v.GetString("RedisHost"),
		RedisPort:              v.GetInt("RedisPort"),
		RedisDB:                v.GetInt("RedisDB"),
		RedisPassword:          v.GetString("RedisPassword"),
		LogLevel:               v.GetString("LogLevel"),
		LogPath:                v.GetString("LogPath"),
		LogMaxSizeMB:           v.GetInt("LogMaxSizeMB"),
		LogMaxBackups:          v.GetInt("LogMaxBackups"),
		LogMaxAgeDays:          v.GetInt("LogMaxAgeDays"),
		LogCompress:            v.GetBool("LogCompress"),
		RegisterMaxPerIPPerDay: v.GetInt("RegisterMaxPerIPPerDay"),
		OTLPEndpoint:           v.GetString("OTLPEndpoint"),
		MetricsEnabled:         v.GetBool("MetricsEnabled"),
	}

	if err := c.validate(); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}

func (c AppConfig) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL must be set")
	}
	if len(c.JWTSecret) < 10 {
		return errors.New("JWT_SECRET must be set and at least 10 characters long")
	}
	switch c.DatabaseDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DatabaseDriver)
	}
	return nil
}

// applyDefaults sets sane defaults for values neither file nor environment provide.
func applyDefaults(v *viper.Viper) {
	v.SetDefault("AppPort", "3333")
	v.SetDefault("DatabaseDriver", "postgres")
	v.SetDefault("RateLimitPerMinute", 60)
	v.SetDefault("AllowedOrigins", []string{"*"})
	v.SetDefault("GinMode", "release")
	v.SetDefault("GinPath", "logs/gin.log")
	v.SetDefault("RedisPort", 6379)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogPath", "logs/app.log")
	v.SetDefault("LogMaxSizeMB", 100)
	v.SetDefault("LogMaxBackups", 3)
	v.SetDefault("LogMaxAgeDays", 7)
	v.SetDefault("RegisterMaxPerIPPerDay", 20)
	v.SetDefault("MetricsEnabled", true)
}

// splitList accepts both JSON arrays and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
