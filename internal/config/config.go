package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, sourced from the environment.
type Config struct {
	// HTTP server
	Port string

	// Dataset source: "embed" serves the bundled sample export, "file"
	// loads CSVPath from disk. Either way the export is read once per
	// process (or per manual refresh) and held in memory.
	DataSource string
	CSVPath    string

	// Chart payload cache
	CacheSize int
	CacheTTL  time.Duration

	// Logging
	LogLevel string
	LogJSON  bool
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8080"),
		DataSource: getEnv("DATA_SOURCE", "embed"),
		CSVPath:    getEnv("CSV_PATH", ""),
		CacheSize:  getEnvInt("CACHE_SIZE", 64),
		CacheTTL:   getEnvDuration("CACHE_TTL", 5*time.Minute),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogJSON:    getEnvBool("LOG_JSON", false),
	}
}

// Validate collects every configuration problem into one error.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataSource {
	case "embed":
	case "file":
		if c.CSVPath == "" {
			problems = append(problems, "CSV_PATH is required when DATA_SOURCE is 'file'")
		} else if _, err := os.Stat(c.CSVPath); err != nil {
			problems = append(problems, fmt.Sprintf("cannot stat CSV_PATH '%s': %v", c.CSVPath, err))
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid data source '%s': must be one of [embed file]", c.DataSource))
	}

	if c.CacheSize < 1 {
		problems = append(problems, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}
	if c.CacheTTL < time.Second {
		problems = append(problems, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	} else if c.CacheTTL > 24*time.Hour {
		problems = append(problems, fmt.Sprintf("invalid cache TTL %v: must be at most 24 hours", c.CacheTTL))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
