package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`
	// sentry
	SentryEnabled bool `toml:"sentry_enabled"`
	// database; backend is either "postgres" or "sqlite"
	DBBackend      string `toml:"db_backend"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	SQLitePath     string `toml:"sqlite_path"`
	// import source
	SourceFolderPath    string `toml:"source_folder_path"`
	SourceFileExtension string `toml:"source_file_extension"`
	DriveFolderID       string `toml:"drive_folder_id"`
	// google sheets mirror
	SpreadsheetID  string `toml:"spreadsheet_id"`
	SpreadsheetTab string `toml:"spreadsheet_tab"`
	// workout policy
	ValidWorkoutTypes []string `toml:"valid_workout_types"`
	StoreRoutes       bool     `toml:"store_routes"`
	// email notifications
	SMTPHost       string `toml:"smtp_host"`
	SMTPPort       string `toml:"smtp_port"`
	EmailSender    string `toml:"email_sender"`
	EmailRecipient string `toml:"email_recipient"`
	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var configToml Toml
	if _, err := toml.DecodeFile(path, &configToml); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	cfg, err := configToml.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section missing for env: %s", env)
	}

	cfg.Environment = env

	if cfg.SpreadsheetTab == "" {
		cfg.SpreadsheetTab = "Sheet1"
	}
	if cfg.SourceFileExtension == "" {
		cfg.SourceFileExtension = "csv"
	}
	if cfg.DBBackend == "" {
		cfg.DBBackend = "postgres"
	}

	return cfg, nil
}
