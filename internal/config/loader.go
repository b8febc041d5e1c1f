package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers understood by the storage layer.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Log output formats.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

const defaultSQLiteDSN = "file:ttms.db?_pragma=foreign_keys(1)"

// Config captures environment driven configuration values for the timetable service.
type Config struct {
	HTTPPort         int
	DBDriver         string
	DBDSN            string
	SessionTTL       time.Duration
	SessionCacheSize int
	Location         *time.Location
	LogLevel         slog.Level
	LogFormat        string
}

// Load reads an optional .env file from the working directory and then parses
// configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom behaves like Load but reads the given dotenv files. Files that do not
// exist are skipped and variables already set in the environment win.
func LoadFrom(envFiles ...string) (Config, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return parseEnvironment()
}

func parseEnvironment() (Config, error) {
	cfg := Config{
		HTTPPort:         8080,
		DBDriver:         DriverSQLite,
		SessionTTL:       24 * time.Hour,
		SessionCacheSize: 1024,
		LogLevel:         slog.LevelInfo,
		LogFormat:        LogFormatJSON,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := env("TTMS_HTTP_PORT"); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "TTMS_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if driver := strings.ToLower(env("TTMS_DB_DRIVER")); driver != "" {
		switch driver {
		case DriverSQLite, DriverPostgres:
			cfg.DBDriver = driver
		default:
			invalid = append(invalid, "TTMS_DB_DRIVER")
		}
	}

	cfg.DBDSN = env("TTMS_DB_DSN")
	if cfg.DBDSN == "" {
		if cfg.DBDriver == DriverPostgres {
			missing = append(missing, "TTMS_DB_DSN")
		} else {
			cfg.DBDSN = defaultSQLiteDSN
		}
	}

	if ttlValue := env("TTMS_SESSION_TTL"); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "TTMS_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if sizeValue := env("TTMS_SESSION_CACHE_SIZE"); sizeValue != "" {
		size, err := strconv.Atoi(sizeValue)
		if err != nil || size <= 0 {
			invalid = append(invalid, "TTMS_SESSION_CACHE_SIZE")
		} else {
			cfg.SessionCacheSize = size
		}
	}

	zone := env("TTMS_TIMEZONE")
	if zone == "" {
		zone = "Asia/Kuala_Lumpur"
	}
	if loc, err := time.LoadLocation(zone); err != nil {
		if env("TTMS_TIMEZONE") != "" {
			invalid = append(invalid, "TTMS_TIMEZONE")
		} else {
			cfg.Location = time.FixedZone("MYT", 8*60*60)
		}
	} else {
		cfg.Location = loc
	}

	if levelValue := env("TTMS_LOG_LEVEL"); levelValue != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(levelValue)); err != nil {
			invalid = append(invalid, "TTMS_LOG_LEVEL")
		}
	}

	if format := strings.ToLower(env("TTMS_LOG_FORMAT")); format != "" {
		switch format {
		case LogFormatJSON, LogFormatText:
			cfg.LogFormat = format
		default:
			invalid = append(invalid, "TTMS_LOG_FORMAT")
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
