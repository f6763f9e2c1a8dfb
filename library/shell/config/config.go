package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	StorageFlatFile = "flatfile"
	StorageRedis    = "redis"
)

// Journal backends.
const (
	JournalNone     = "none"
	JournalMemory   = "memory"
	JournalPostgres = "postgres"
)

// Postgres drivers.
const (
	DriverPGX  = "pgx"
	DriverSQL  = "sql"
	DriverSQLX = "sqlx"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// DefaultPath is used when Load gets an empty path.
const DefaultPath = "library.yaml"

var ErrInvalidConfig = errors.New("invalid config")

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	LogLevel  string        `yaml:"logLevel"`
	LogFormat string        `yaml:"logFormat"`
	Storage   StorageConfig `yaml:"storage"`
	Journal   JournalConfig `yaml:"journal"`
}

// StorageConfig selects and configures the persister for books and users.
type StorageConfig struct {
	Backend        string `yaml:"backend"`
	DataDir        string `yaml:"dataDir"`
	BooksFile      string `yaml:"booksFile"`
	UsersFile      string `yaml:"usersFile"`
	RedisAddr      string `yaml:"redisAddr"`
	RedisPassword  string `yaml:"redisPassword"`
	RedisDB        int    `yaml:"redisDB"`
	RedisKeyPrefix string `yaml:"redisKeyPrefix"`
}

// JournalConfig selects and configures the circulation journal.
type JournalConfig struct {
	Backend     string `yaml:"backend"`
	DatabaseURL string `yaml:"databaseURL"`
	Driver      string `yaml:"driver"`
	TableName   string `yaml:"tableName"`
}

// Default returns the configuration used when no config file exists.
func Default() FileConfig {
	return FileConfig{
		LogLevel:  "warn",
		LogFormat: LogFormatText,
		Storage: StorageConfig{
			Backend:        StorageFlatFile,
			DataDir:        ".",
			BooksFile:      "books.dat",
			UsersFile:      "users.dat",
			RedisAddr:      "localhost:6379",
			RedisKeyPrefix: "library",
		},
		Journal: JournalConfig{
			Backend:   JournalNone,
			Driver:    DriverPGX,
			TableName: "circulation_journal",
		},
	}
}

// Load reads config from path (defaults to DefaultPath) on top of Default().
// A missing file is not an error. Environment variables override file values.
func Load(path string) (FileConfig, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func applyEnv(cfg *FileConfig) {
	overrideString(&cfg.LogLevel, "LIBRARY_LOG_LEVEL")
	overrideString(&cfg.LogFormat, "LIBRARY_LOG_FORMAT")
	overrideString(&cfg.Storage.Backend, "LIBRARY_STORAGE_BACKEND")
	overrideString(&cfg.Storage.DataDir, "LIBRARY_DATA_DIR")
	overrideString(&cfg.Storage.RedisAddr, "LIBRARY_REDIS_ADDR")
	overrideString(&cfg.Storage.RedisPassword, "LIBRARY_REDIS_PASSWORD")
	overrideString(&cfg.Storage.RedisKeyPrefix, "LIBRARY_REDIS_KEY_PREFIX")
	overrideString(&cfg.Journal.Backend, "LIBRARY_JOURNAL_BACKEND")
	overrideString(&cfg.Journal.DatabaseURL, "LIBRARY_DATABASE_URL")
	overrideString(&cfg.Journal.Driver, "LIBRARY_JOURNAL_DRIVER")

	if v := os.Getenv("LIBRARY_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Storage.RedisDB = n
		}
	}
}

func overrideString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// Validate checks that every setting the selected backends need is present.
func Validate(cfg FileConfig) error {
	var errs []error

	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if !slices.Contains([]string{LogFormatText, LogFormatJSON}, cfg.LogFormat) {
		errs = append(errs, fmt.Errorf("logFormat %q must be %s or %s", cfg.LogFormat, LogFormatText, LogFormatJSON))
	}

	switch cfg.Storage.Backend {
	case StorageFlatFile:
		if strings.TrimSpace(cfg.Storage.DataDir) == "" {
			errs = append(errs, errors.New("storage.dataDir is required for the flatfile backend"))
		}
		if cfg.Storage.BooksFile == "" || cfg.Storage.UsersFile == "" {
			errs = append(errs, errors.New("storage.booksFile and storage.usersFile are required for the flatfile backend"))
		}
	case StorageRedis:
		if cfg.Storage.RedisAddr == "" {
			errs = append(errs, errors.New("storage.redisAddr is required for the redis backend"))
		}
		if cfg.Storage.RedisKeyPrefix == "" {
			errs = append(errs, errors.New("storage.redisKeyPrefix is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q is unknown", cfg.Storage.Backend))
	}

	switch cfg.Journal.Backend {
	case JournalNone, JournalMemory:
	case JournalPostgres:
		if cfg.Journal.DatabaseURL == "" {
			errs = append(errs, errors.New("journal.databaseURL is required for the postgres backend"))
		}
		if !slices.Contains([]string{DriverPGX, DriverSQL, DriverSQLX}, cfg.Journal.Driver) {
			errs = append(errs, fmt.Errorf("journal.driver %q is unknown", cfg.Journal.Driver))
		}
		if cfg.Journal.TableName == "" {
			errs = append(errs, errors.New("journal.tableName is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("journal.backend %q is unknown", cfg.Journal.Backend))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}

	return nil
}
