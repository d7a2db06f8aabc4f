package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvFileVariable points at an optional dotenv file loaded before the env overlay
const EnvFileVariable = "SCHOOLMS_ENV_FILE"

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port          string `yaml:"port" env:"SERVER_PORT"`
		Mode          string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath   string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		PublicBaseURL string `yaml:"public_base_url" env:"SERVER_PUBLIC_BASE_URL"`
		MaxUploadMB   int    `yaml:"max_upload_mb" env:"SERVER_MAX_UPLOAD_MB"`

		AllowedOrigins []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                 string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Mail struct {
		Provider       string `yaml:"provider" env:"MAIL_PROVIDER"`
		FromName       string `yaml:"from_name" env:"MAIL_FROM_NAME"`
		FromEmail      string `yaml:"from_email" env:"MAIL_FROM_EMAIL"`
		LoginURL       string `yaml:"login_url" env:"MAIL_LOGIN_URL"`
		SMTPHost       string `yaml:"smtp_host" env:"MAIL_SMTP_HOST"`
		SMTPPort       int    `yaml:"smtp_port" env:"MAIL_SMTP_PORT"`
		SMTPUsername   string `yaml:"smtp_username" env:"MAIL_SMTP_USERNAME"`
		SMTPPassword   string `yaml:"smtp_password" env:"MAIL_SMTP_PASSWORD"`
		SMTPUseTLS     bool   `yaml:"smtp_use_tls" env:"MAIL_SMTP_USE_TLS"`
		SendGridAPIKey string `yaml:"sendgrid_api_key" env:"MAIL_SENDGRID_API_KEY"`
	} `yaml:"mail"`

	Registration struct {
		MaxVoucherBatch int `yaml:"max_voucher_batch" env:"REGISTRATION_MAX_VOUCHER_BATCH"`
		PasswordLength  int `yaml:"password_length" env:"REGISTRATION_PASSWORD_LENGTH"`
	} `yaml:"registration"`

	Import struct {
		MaxRows int `yaml:"max_rows" env:"IMPORT_MAX_ROWS"`
		MinAge  int `yaml:"min_age" env:"IMPORT_MIN_AGE"`
		MaxAge  int `yaml:"max_age" env:"IMPORT_MAX_AGE"`
	} `yaml:"import"`

	Seed struct {
		SuperuserUsername string `yaml:"superuser_username" env:"SEED_SUPERUSER_USERNAME"`
		SuperuserPassword string `yaml:"superuser_password" env:"SEED_SUPERUSER_PASSWORD"`
		SuperuserEmail    string `yaml:"superuser_email" env:"SEED_SUPERUSER_EMAIL"`
		DemoSchool        bool   `yaml:"demo_school" env:"SEED_DEMO_SCHOOL"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file, an optional dotenv file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadDotEnv(dotEnvPath(configPath)); err != nil {
		return nil, err
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// dotEnvPath returns SCHOOLMS_ENV_FILE when set, otherwise ".env" beside the YAML file.
func dotEnvPath(configPath string) string {
	if p := os.Getenv(EnvFileVariable); p != "" {
		return p
	}
	dir := "."
	if idx := strings.LastIndexAny(configPath, `/\`); idx >= 0 {
		dir = configPath[:idx]
	}
	return dir + string(os.PathSeparator) + ".env"
}

// loadDotEnv loads a dotenv file if present. Variables already in the process environment win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.PublicBaseURL = "http://localhost:8080"
	config.Server.MaxUploadMB = 2

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "schoolms"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.RefreshTokenExpiration = "720h"
	config.JWT.Issuer = "schoolms"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Mail.Provider = "log"
	config.Mail.FromName = "School Management"
	config.Mail.FromEmail = "noreply@localhost"
	config.Mail.LoginURL = "http://localhost:8080/login"
	config.Mail.SMTPPort = 587

	config.Registration.MaxVoucherBatch = 300
	config.Registration.PasswordLength = 8

	config.Import.MaxRows = 1000
	config.Import.MinAge = 10
	config.Import.MaxAge = 25

	config.Seed.SuperuserUsername = "superadmin"
	config.Seed.SuperuserEmail = "superadmin@localhost"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if config.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}
	if _, err := time.ParseDuration(config.JWT.RefreshTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT refresh token expiration format: %w", err)
	}
	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid database connection lifetime: %w", err)
	}

	switch strings.ToLower(config.Mail.Provider) {
	case "log", "":
	case "smtp":
		if config.Mail.SMTPHost == "" {
			return fmt.Errorf("mail.smtp_host is required for the smtp provider")
		}
	case "sendgrid":
		if config.Mail.SendGridAPIKey == "" {
			return fmt.Errorf("mail.sendgrid_api_key is required for the sendgrid provider")
		}
	default:
		return fmt.Errorf("unknown mail provider %q", config.Mail.Provider)
	}

	if config.Registration.MaxVoucherBatch < 1 {
		return fmt.Errorf("registration.max_voucher_batch must be positive")
	}
	if config.Registration.PasswordLength < 8 {
		return fmt.Errorf("registration.password_length must be at least 8")
	}
	if config.Import.MaxRows < 1 {
		return fmt.Errorf("import.max_rows must be positive")
	}
	if config.Import.MinAge < 0 || config.Import.MaxAge < config.Import.MinAge {
		return fmt.Errorf("import age bounds are inconsistent (%d..%d)", config.Import.MinAge, config.Import.MaxAge)
	}
	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + c.Database.Port,
		Path:     "/" + c.Database.DBName,
		RawQuery: "sslmode=" + sslMode,
	}
	return u.String()
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}
