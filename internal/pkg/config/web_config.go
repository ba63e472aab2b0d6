package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// WebConfig is the root configuration shared by the web server and the CLI.
type WebConfig struct {
	Port     string           `mapstructure:"port" validate:"required,numeric"`
	BaseURL  string           `mapstructure:"base_url" validate:"required,url"`
	Database DatabaseSettings `mapstructure:"database"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Auth     AuthSettings     `mapstructure:"auth"`
	Mail     MailSettings     `mapstructure:"mail"`
}

// envBindings maps configuration keys to the environment variables that
// override them.
var envBindings = map[string]string{
	"port":                      "PORT",
	"base_url":                  "PUBLIC_BASE_URL",
	"database.type":             "DATABASE_TYPE",
	"database.dsn":              "DATABASE_URL",
	"database.name":             "DATABASE_NAME",
	"logger.log_level":          "LOG_LEVEL",
	"logger.log_type":           "LOG_TYPE",
	"logger.file_path":          "LOG_FILE_PATH",
	"auth.secret":               "AUTH_SECRET",
	"auth.url":                  "AUTH_URL",
	"auth.cookie_name":          "AUTH_COOKIE_NAME",
	"auth.github.client_id":     "GITHUB_CLIENT_ID",
	"auth.github.client_secret": "GITHUB_CLIENT_SECRET",
	"auth.google.client_id":     "GOOGLE_CLIENT_ID",
	"auth.google.client_secret": "GOOGLE_CLIENT_SECRET",
	"mail.api_key":              "RESEND_API_KEY",
	"mail.from":                 "EMAIL_FROM",
	"mail.contact_recipient":    "CONTACT_RECIPIENT",
}

// InitializeWebConfig loads the configuration from the YAML file at path, a
// .env file and the environment, in increasing order of precedence.
// A missing YAML file is not an error.
func InitializeWebConfig(path string) (*WebConfig, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg WebConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.URL == "" {
		cfg.Auth.URL = cfg.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.Auth.URL = strings.TrimRight(cfg.Auth.URL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the root fields and every nested settings block.
func (c *WebConfig) Validate() error {
	validate := validator.New()
	if err := validate.StructPartial(c, "Port", "BaseURL"); err != nil {
		return fmt.Errorf("validation failed for WebConfig: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Mail.Validate()
}

// SecureCookies reports whether cookies must carry the Secure attribute.
func (c *WebConfig) SecureCookies() bool {
	return strings.HasPrefix(c.BaseURL, "https://")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("base_url", "http://localhost:3000")
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.name", "")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.url", "")
	v.SetDefault("auth.cookie_name", DefaultSessionCookieName)
	v.SetDefault("auth.session_ttl", 7*24*time.Hour)
	v.SetDefault("auth.session_update_age", 24*time.Hour)
	v.SetDefault("auth.magic_link_ttl", 5*time.Minute)
	v.SetDefault("auth.oauth_state_ttl", 10*time.Minute)
	v.SetDefault("auth.bcrypt_cost", 0)
	v.SetDefault("mail.api_key", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.contact_recipient", "")
}

// loadEnvFile loads ENV_FILE (default .env) into the process environment
// without overriding variables that are already set.
func loadEnvFile() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
