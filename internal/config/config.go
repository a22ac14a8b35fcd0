package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/EquestrianHub/pkg/logger"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса (config.toml + переопределения секретов из окружения)
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	Verifier VerifierConfig `toml:"verifier"`
	Mailer   MailerConfig   `toml:"mailer"`
	Booking  BookingConfig  `toml:"booking"`
	Storage  StorageConfig  `toml:"storage"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret       string   `toml:"jwt_secret"`
	TokenTTLMinutes int      `toml:"token_ttl_minutes"`
	AdminEmails     []string `toml:"admin_emails"`
}

type RedisConfig struct {
	Enabled            bool   `toml:"enabled"`
	Addr               string `toml:"addr"`
	Password           string `toml:"password"`
	DB                 int    `toml:"db"`
	CartTTLHours       int    `toml:"cart_ttl_hours"`
	RateLimitPerMinute int    `toml:"rate_limit_per_minute"`
}

type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

type VerifierConfig struct {
	URL              string `toml:"url"`
	APIKey           string `toml:"api_key"`
	Model            string `toml:"model"`
	Timeout          int    `toml:"timeout"`
	MaxDocumentBytes int    `toml:"max_document_bytes"`
}

type MailerConfig struct {
	Enabled       bool   `toml:"enabled"`
	APIKey        string `toml:"api_key"`
	FromEmail     string `toml:"from_email"`
	FromName      string `toml:"from_name"`
	OperatorEmail string `toml:"operator_email"`
	TemplateID    string `toml:"template_id"`
	ProofsBaseURL string `toml:"proofs_base_url"`
	Timeout       int    `toml:"timeout"`
}

type BookingConfig struct {
	CompletionIntervalSeconds int `toml:"completion_interval_seconds"`
	CalendarMaxDays           int `toml:"calendar_max_days"`
}

type StorageConfig struct {
	ProofsDir string `toml:"proofs_dir"`
}

// Load читает TOML-файл, затем .env (если есть) и переменные окружения для секретов
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	// .env необязателен: в проде секреты приходят из окружения контейнера
	_ = godotenv.Load()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required (or JWT_SECRET)", ErrInvalidConfig)
	}
	if _, err := logger.ParseLevel(c.Logs.Level); err != nil {
		return fmt.Errorf("%w: logs.level: %v", ErrInvalidConfig, err)
	}
	if c.Mailer.Enabled && (c.Mailer.APIKey == "" || c.Mailer.OperatorEmail == "") {
		return fmt.Errorf("%w: mailer requires api_key and operator_email", ErrInvalidConfig)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when enabled", ErrInvalidConfig)
	}
	return nil
}

// IsAdminEmail true, если email указан в auth.admin_emails
func (c *Config) IsAdminEmail(email string) bool {
	for _, admin := range c.Auth.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(admin), strings.TrimSpace(email)) {
			return true
		}
	}
	return false
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "equestrian_hub"},
		Auth:    AuthConfig{TokenTTLMinutes: 24 * 60},
		Redis: RedisConfig{
			Addr:               "localhost:6379",
			CartTTLHours:       24 * 30,
			RateLimitPerMinute: 10,
		},
		RabbitMQ: RabbitMQConfig{Exchange: "equestrian.events"},
		Verifier: VerifierConfig{
			URL:              "https://generativelanguage.googleapis.com/v1beta",
			Model:            "gemini-1.5-flash",
			Timeout:          30,
			MaxDocumentBytes: 5 << 20,
		},
		Mailer:  MailerConfig{FromName: "Meadowbrook Equestrian", Timeout: 10},
		Booking: BookingConfig{CompletionIntervalSeconds: 3600, CalendarMaxDays: 62},
		Storage: StorageConfig{ProofsDir: "./data/payment-proofs"},
	}
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.Database.Password, "DB_PASSWORD")
	setFromEnv(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setFromEnv(&cfg.Verifier.APIKey, "VERIFIER_API_KEY")
	setFromEnv(&cfg.Mailer.APIKey, "MAILERSEND_API_KEY")
	setFromEnv(&cfg.Redis.Password, "REDIS_PASSWORD")
	setFromEnv(&cfg.RabbitMQ.URL, "RABBITMQ_URL")
}

func setFromEnv(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*target = v
	}
}
