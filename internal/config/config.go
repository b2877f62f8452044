package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultNutritionixURL = "https://trackapi.nutritionix.com/v2/natural/nutrients"
	DefaultTimeout        = 15 * time.Second
	DefaultSMTPHost       = "smtp.gmail.com"
	DefaultSMTPPort       = 465
	DefaultLogsDir        = "logs"
	DefaultHistoryDBPath  = "data/history.db"

	TransportSMTP = "smtp"
	TransportSES  = "ses"
)

// Config holds the configuration for the application.
type Config struct {
	Nutritionix NutritionixConfig `yaml:"nutritionix"`
	Delivery    DeliveryConfig    `yaml:"delivery"`
	Storage     StorageConfig     `yaml:"storage"`
	Telegram    TelegramConfig    `yaml:"telegram"`
	LogLevel    string            `yaml:"log_level"`
}

// NutritionixConfig configures the nutrient lookup API.
type NutritionixConfig struct {
	AppID   string        `yaml:"app_id"`
	APIKey  string        `yaml:"api_key"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// DeliveryConfig configures how reports are emailed.
type DeliveryConfig struct {
	Transport     string `yaml:"transport"` // smtp, ses
	SMTPHost      string `yaml:"smtp_host"`
	SMTPPort      int    `yaml:"smtp_port"`
	SMTPPassword  string `yaml:"smtp_password"`
	SenderEmail   string `yaml:"sender_email"`
	ReceiverEmail string `yaml:"receiver_email"`
	AWSRegion     string `yaml:"aws_region"`
}

// StorageConfig configures where artifacts and run history live.
type StorageConfig struct {
	WorkDir       string `yaml:"work_dir"`
	LogsDir       string `yaml:"logs_dir"`
	HistoryDBPath string `yaml:"history_db_path"`
	ArchiveBucket string `yaml:"archive_s3_bucket"`
}

// TelegramConfig is optional; both fields must be set to enable notifications.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

// Enabled reports whether Telegram notifications are configured.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != 0
}

// NewFromEnv creates a new Config object from environment variables and an optional .env file.
func NewFromEnv() (*Config, error) {
	return Load("")
}

// Load reads the YAML file at path (if any), then applies environment
// overrides and validates the required values.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without the credential checks. Commands that only touch
// local storage use it.
func Read(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Variables already present in the environment win over .env entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Nutritionix: NutritionixConfig{
			URL:     DefaultNutritionixURL,
			Timeout: DefaultTimeout,
		},
		Delivery: DeliveryConfig{
			Transport: TransportSMTP,
			SMTPHost:  DefaultSMTPHost,
			SMTPPort:  DefaultSMTPPort,
		},
		Storage: StorageConfig{
			WorkDir:       ".",
			LogsDir:       DefaultLogsDir,
			HistoryDBPath: DefaultHistoryDBPath,
		},
		LogLevel: "info",
	}
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.Nutritionix.AppID, "NUTRITIONIX_APP_ID")
	setString(&c.Nutritionix.APIKey, "NUTRITIONIX_API_KEY")
	setString(&c.Nutritionix.URL, "NUTRITIONIX_API_URL")

	// GMAIL_APP_PASSWORD is the historical name of the delivery credential.
	setString(&c.Delivery.SMTPPassword, "GMAIL_APP_PASSWORD")
	setString(&c.Delivery.SMTPPassword, "SMTP_PASSWORD")
	setString(&c.Delivery.SenderEmail, "SENDER_EMAIL")
	setString(&c.Delivery.ReceiverEmail, "RECEIVER_EMAIL")
	setString(&c.Delivery.Transport, "DELIVERY_TRANSPORT")
	setString(&c.Delivery.SMTPHost, "SMTP_HOST")
	setString(&c.Delivery.AWSRegion, "AWS_REGION")

	setString(&c.Storage.WorkDir, "WORK_DIR")
	setString(&c.Storage.LogsDir, "LOGS_DIR")
	setString(&c.Storage.HistoryDBPath, "HISTORY_DB_PATH")
	setString(&c.Storage.ArchiveBucket, "ARCHIVE_S3_BUCKET")

	setString(&c.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("NUTRITIONIX_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid NUTRITIONIX_TIMEOUT %q: %w", v, err)
		}
		c.Nutritionix.Timeout = d
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		c.Delivery.SMTPPort = port
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", v, err)
		}
		c.Telegram.ChatID = id
	}
	return nil
}

// Validate checks the values a report run cannot do without.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"NUTRITIONIX_APP_ID", c.Nutritionix.AppID},
		{"NUTRITIONIX_API_KEY", c.Nutritionix.APIKey},
		{"SMTP_PASSWORD", c.Delivery.SMTPPassword},
		{"SENDER_EMAIL", c.Delivery.SenderEmail},
		{"RECEIVER_EMAIL", c.Delivery.ReceiverEmail},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s environment variable not set", r.name)
		}
	}

	switch c.Delivery.Transport {
	case TransportSMTP, TransportSES:
	default:
		return fmt.Errorf("unsupported DELIVERY_TRANSPORT %q", c.Delivery.Transport)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
