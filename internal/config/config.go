package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Log        LogConfig
	Parser     ParserConfig
	Processing ProcessingConfig
	Validation ValidationConfig
	CORS       CORSConfig
	Email      EmailConfig
	UI         UIConfig
}

// EmailConfig holds reviewer notification settings.
type EmailConfig struct {
	Provider        string `mapstructure:"provider"`
	Region          string `mapstructure:"region"`
	FromAddress     string `mapstructure:"from_address"`
	FromName        string `mapstructure:"from_name"`
	ReviewerAddress string `mapstructure:"reviewer_address"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UIConfig holds settings for the server-rendered upload page.
type UIConfig struct {
	// BackendURL is the origin the page submits claims to; /process-claim is appended.
	BackendURL string `mapstructure:"backend_url"`
	Title      string `mapstructure:"title"`
}

// ProcessingURL returns the full claim-processing endpoint.
func (u *UIConfig) ProcessingURL() string {
	return strings.TrimRight(u.BackendURL, "/") + "/process-claim"
}

// ProcessingConfig bounds the work done for a single claim.
type ProcessingConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ValidationConfig selects the validation rules run for every claim.
type ValidationConfig struct {
	Rules []string `mapstructure:"rules"`
}

// ParserProviderConfig holds settings for a single LLM parser provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds LLM document parser settings with multi-provider support.
type ParserConfig struct {
	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
	Tertiary  ParserProviderConfig `mapstructure:"tertiary"`

	// RequestsPerSecond throttles calls across all providers. Zero disables throttling.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Providers returns the configured provider chain in fallback order.
func (p *ParserConfig) Providers() []ParserProviderConfig {
	var out []ParserProviderConfig
	for _, c := range []ParserProviderConfig{p.Primary, p.Secondary, p.Tertiary} {
		if c.Provider != "" {
			out = append(out, c)
		}
	}
	return out
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for the document archive.
type S3Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the MEDCLAIM_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MEDCLAIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_mb", 64)

	// DB defaults
	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "medclaim")
	v.SetDefault("db.password", "medclaim_secret")
	v.SetDefault("db.name", "medclaim_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "medclaim-documents")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// The upload page may be served from another origin.
	v.SetDefault("cors.allowed_origins", "*")

	// Parser defaults
	v.SetDefault("parser.primary.provider", "gemini")
	v.SetDefault("parser.primary.api_key", "")
	v.SetDefault("parser.primary.default_model", "gemini-2.5-flash")
	v.SetDefault("parser.primary.max_retries", 2)
	v.SetDefault("parser.primary.timeout_secs", 120)
	v.SetDefault("parser.secondary.provider", "")
	v.SetDefault("parser.secondary.api_key", "")
	v.SetDefault("parser.secondary.default_model", "")
	v.SetDefault("parser.secondary.max_retries", 2)
	v.SetDefault("parser.secondary.timeout_secs", 120)
	v.SetDefault("parser.tertiary.provider", "")
	v.SetDefault("parser.tertiary.api_key", "")
	v.SetDefault("parser.tertiary.default_model", "")
	v.SetDefault("parser.tertiary.max_retries", 2)
	v.SetDefault("parser.tertiary.timeout_secs", 120)
	v.SetDefault("parser.requests_per_second", 2.0)
	v.SetDefault("parser.burst", 4)

	// Processing defaults
	v.SetDefault("processing.concurrency", 4)
	v.SetDefault("processing.timeout", "5m")

	// Validation defaults
	v.SetDefault("validation.rules", "required_documents,patient_name_consistency,admission_discharge_order")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@medclaim.local")
	v.SetDefault("email.from_name", "Medical Claim Processor")
	v.SetDefault("email.reviewer_address", "")

	// UI defaults
	// ui.backend_url defaults to this server's own listen port; see localURL.
	v.SetDefault("ui.backend_url", "")
	v.SetDefault("ui.title", "Medical Claim AI Processor")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "MEDCLAIM_SERVER_PORT",
		"server.read_timeout":            "MEDCLAIM_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "MEDCLAIM_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout":        "MEDCLAIM_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":             "MEDCLAIM_SERVER_ENVIRONMENT",
		"server.max_upload_mb":           "MEDCLAIM_SERVER_MAX_UPLOAD_MB",
		"db.enabled":                     "MEDCLAIM_DB_ENABLED",
		"db.host":                        "MEDCLAIM_DB_HOST",
		"db.port":                        "MEDCLAIM_DB_PORT",
		"db.user":                        "MEDCLAIM_DB_USER",
		"db.password":                    "MEDCLAIM_DB_PASSWORD",
		"db.name":                        "MEDCLAIM_DB_NAME",
		"db.sslmode":                     "MEDCLAIM_DB_SSLMODE",
		"db.max_open":                    "MEDCLAIM_DB_MAX_OPEN",
		"db.max_idle":                    "MEDCLAIM_DB_MAX_IDLE",
		"s3.enabled":                     "MEDCLAIM_S3_ENABLED",
		"s3.region":                      "MEDCLAIM_S3_REGION",
		"s3.bucket":                      "MEDCLAIM_S3_BUCKET",
		"s3.endpoint":                    "MEDCLAIM_S3_ENDPOINT",
		"s3.access_key":                  "MEDCLAIM_S3_ACCESS_KEY",
		"s3.secret_key":                  "MEDCLAIM_S3_SECRET_KEY",
		"log.level":                      "MEDCLAIM_LOG_LEVEL",
		"log.format":                     "MEDCLAIM_LOG_FORMAT",
		"cors.allowed_origins":           "MEDCLAIM_CORS_ALLOWED_ORIGINS",
		"parser.primary.provider":        "MEDCLAIM_PARSER_PRIMARY_PROVIDER",
		"parser.primary.api_key":         "MEDCLAIM_PARSER_PRIMARY_API_KEY",
		"parser.primary.default_model":   "MEDCLAIM_PARSER_PRIMARY_DEFAULT_MODEL",
		"parser.primary.max_retries":     "MEDCLAIM_PARSER_PRIMARY_MAX_RETRIES",
		"parser.primary.timeout_secs":    "MEDCLAIM_PARSER_PRIMARY_TIMEOUT_SECS",
		"parser.secondary.provider":      "MEDCLAIM_PARSER_SECONDARY_PROVIDER",
		"parser.secondary.api_key":       "MEDCLAIM_PARSER_SECONDARY_API_KEY",
		"parser.secondary.default_model": "MEDCLAIM_PARSER_SECONDARY_DEFAULT_MODEL",
		"parser.secondary.max_retries":   "MEDCLAIM_PARSER_SECONDARY_MAX_RETRIES",
		"parser.secondary.timeout_secs":  "MEDCLAIM_PARSER_SECONDARY_TIMEOUT_SECS",
		"parser.tertiary.provider":       "MEDCLAIM_PARSER_TERTIARY_PROVIDER",
		"parser.tertiary.api_key":        "MEDCLAIM_PARSER_TERTIARY_API_KEY",
		"parser.tertiary.default_model":  "MEDCLAIM_PARSER_TERTIARY_DEFAULT_MODEL",
		"parser.tertiary.max_retries":    "MEDCLAIM_PARSER_TERTIARY_MAX_RETRIES",
		"parser.tertiary.timeout_secs":   "MEDCLAIM_PARSER_TERTIARY_TIMEOUT_SECS",
		"parser.requests_per_second":     "MEDCLAIM_PARSER_REQUESTS_PER_SECOND",
		"parser.burst":                   "MEDCLAIM_PARSER_BURST",
		"processing.concurrency":         "MEDCLAIM_PROCESSING_CONCURRENCY",
		"processing.timeout":             "MEDCLAIM_PROCESSING_TIMEOUT",
		"validation.rules":               "MEDCLAIM_VALIDATION_RULES",
		"email.provider":                 "MEDCLAIM_EMAIL_PROVIDER",
		"email.region":                   "MEDCLAIM_EMAIL_REGION",
		"email.from_address":             "MEDCLAIM_EMAIL_FROM_ADDRESS",
		"email.from_name":                "MEDCLAIM_EMAIL_FROM_NAME",
		"email.reviewer_address":         "MEDCLAIM_EMAIL_REVIEWER_ADDRESS",
		"ui.backend_url":                 "MEDCLAIM_UI_BACKEND_URL",
		"ui.title":                       "MEDCLAIM_UI_TITLE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if MEDCLAIM_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MEDCLAIM_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
		MaxUploadMB:     v.GetInt64("server.max_upload_mb"),
	}
	cfg.DB = DBConfig{
		Enabled:  v.GetBool("db.enabled"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Enabled:   v.GetBool("s3.enabled"),
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	cfg.Parser = ParserConfig{
		Primary:           providerConfig(v, "parser.primary"),
		Secondary:         providerConfig(v, "parser.secondary"),
		Tertiary:          providerConfig(v, "parser.tertiary"),
		RequestsPerSecond: v.GetFloat64("parser.requests_per_second"),
		Burst:             v.GetInt("parser.burst"),
	}

	cfg.Processing = ProcessingConfig{
		Concurrency: v.GetInt("processing.concurrency"),
		Timeout:     v.GetDuration("processing.timeout"),
	}
	if cfg.Processing.Concurrency <= 0 {
		cfg.Processing.Concurrency = 1
	}

	cfg.Validation = ValidationConfig{
		Rules: splitList(v.GetString("validation.rules")),
	}

	cfg.Email = EmailConfig{
		Provider:        v.GetString("email.provider"),
		Region:          v.GetString("email.region"),
		FromAddress:     v.GetString("email.from_address"),
		FromName:        v.GetString("email.from_name"),
		ReviewerAddress: v.GetString("email.reviewer_address"),
	}

	backendURL := v.GetString("ui.backend_url")
	if backendURL == "" {
		backendURL = localURL(serverPort)
	}
	cfg.UI = UIConfig{
		BackendURL: backendURL,
		Title:      v.GetString("ui.title"),
	}

	return cfg, nil
}

// localURL turns a listen address such as ":8080" or "0.0.0.0:8080" into a loopback URL.
func localURL(addr string) string {
	host, port, ok := strings.Cut(addr, ":")
	if !ok {
		port = addr
	}
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return "http://" + host + ":" + port
}

func providerConfig(v *viper.Viper, prefix string) ParserProviderConfig {
	return ParserProviderConfig{
		Provider:     v.GetString(prefix + ".provider"),
		APIKey:       v.GetString(prefix + ".api_key"),
		DefaultModel: v.GetString(prefix + ".default_model"),
		MaxRetries:   v.GetInt(prefix + ".max_retries"),
		TimeoutSecs:  v.GetInt(prefix + ".timeout_secs"),
	}
}

// splitList parses a comma-separated string, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
