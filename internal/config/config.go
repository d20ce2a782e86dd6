package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// AMQP change events
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets export
	SheetsSpreadsheetID   string
	SheetsSheetName       string
	GoogleCredentialsFile string
	GoogleCredentialsJSON string

	// Workers
	RecurringInterval time.Duration
	ExportBatchSize   int

	// HTTP layer tuning
	CacheTTL        time.Duration
	RateLimitPerMin int
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/smartspend.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "smartspend"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "record_changes"),

		SheetsSpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetsSheetName:       getEnv("SHEETS_SHEET_NAME", "Export"),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),

		RecurringInterval: getEnvDuration("RECURRING_INTERVAL", time.Hour),
		ExportBatchSize:   getEnvInt("EXPORT_BATCH_SIZE", 100),

		CacheTTL:        getEnvDuration("CACHE_TTL", 5*time.Minute),
		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 120),
	}
}

// Validate returns a combined error listing every invalid setting.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.SheetsSpreadsheetID != "" {
		hasFile := c.GoogleCredentialsFile != ""
		hasJSON := c.GoogleCredentialsJSON != ""
		if !hasFile && !hasJSON {
			errs = append(errs, "either GOOGLE_CREDENTIALS_FILE or GOOGLE_CREDENTIALS_JSON must be provided when Sheets export is configured")
		}
		if hasFile {
			if _, err := os.Stat(c.GoogleCredentialsFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("Google credentials file does not exist: %s", c.GoogleCredentialsFile))
			}
		}
		if c.SheetsSheetName == "" {
			errs = append(errs, "sheet name cannot be empty when Sheets export is configured")
		}
	}

	if c.RecurringInterval < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid recurring interval %v: must be at least 1 minute", c.RecurringInterval))
	}
	if c.ExportBatchSize < 1 || c.ExportBatchSize > 10000 {
		errs = append(errs, fmt.Sprintf("invalid export batch size %d: must be between 1 and 10000", c.ExportBatchSize))
	}
	if c.RateLimitPerMin < 1 {
		errs = append(errs, fmt.Sprintf("invalid rate limit %d: must be at least 1", c.RateLimitPerMin))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
