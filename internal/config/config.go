package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	Database    DatabaseConfig
	Drive       DriveConfig
	Templates   TemplatesConfig
	Schedule    ScheduleConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

// DriveConfig points the storage adapter at a Google Drive service account
// and the root folder all invoice paths are resolved under.
type DriveConfig struct {
	CredentialsFile string
	RootFolderID    string
}

// TemplatesConfig locates the invoice template in Drive and the local
// cache it is kept in between runs.
type TemplatesConfig struct {
	CustomerTemplateFileID string
	CachePath              string
	CacheTTL               time.Duration
}

// ScheduleConfig controls the optional cron-driven monthly generation.
type ScheduleConfig struct {
	Enabled bool
	Cron    string
}

type ContextConfig struct {
	RunTimeout      time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "invoicer"),
		Environment: getString("APP_ENV", "development"),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "invoicing_db"),
			User:            getString("DB_USER", "invoicing_user"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
		},
		Drive: DriveConfig{
			CredentialsFile: getString("DRIVE_CREDENTIALS_FILE", "service_account.json"),
			RootFolderID:    os.Getenv("DRIVE_ROOT_FOLDER_ID"),
		},
		Templates: TemplatesConfig{
			CustomerTemplateFileID: os.Getenv("CUSTOMER_TEMPLATE_FILE_ID"),
			CachePath:              getString("TEMPLATE_CACHE_PATH", "./data/templates.db"),
			CacheTTL:               getDuration("TEMPLATE_CACHE_TTL", 24*time.Hour),
		},
		Schedule: ScheduleConfig{
			Enabled: getBool("SCHEDULE_ENABLED", false),
			// First day of the month, 06:00.
			Cron: getString("SCHEDULE_CRON", "0 6 1 * *"),
		},
		Context: ContextConfig{
			RunTimeout:      getDuration("RUN_TIMEOUT", 10*time.Minute),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "console"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
