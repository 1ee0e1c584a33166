package config

import (
	"fmt"
	"strings"

	"github.com/hanline/hanline/internal/cache"
	"github.com/hanline/hanline/internal/ocr"
	"github.com/hanline/hanline/internal/plan"
)

// Config is the complete configuration for the hanline application. It covers
// all commands (text, fragments, image, batch, serve) and loads from
// configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`
	Plan     string `mapstructure:"plan" yaml:"plan" json:"plan"`

	OCR       OCRConfig       `mapstructure:"ocr" yaml:"ocr" json:"ocr"`
	Pinyin    PinyinConfig    `mapstructure:"pinyin" yaml:"pinyin" json:"pinyin"`
	Translate TranslateConfig `mapstructure:"translate" yaml:"translate" json:"translate"`
	Speech    SpeechConfig    `mapstructure:"speech" yaml:"speech" json:"speech"`
	Cache     CacheConfig     `mapstructure:"cache" yaml:"cache" json:"cache"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server" json:"server"`
	Batch     BatchConfig     `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// OCRConfig selects and configures the OCR provider.
type OCRConfig struct {
	// Engine is "tesseract" (local) or "vision" (cloud API).
	Engine    string   `mapstructure:"engine" yaml:"engine" json:"engine"`
	Languages []string `mapstructure:"languages" yaml:"languages" json:"languages"`

	Vision VisionConfig `mapstructure:"vision" yaml:"vision" json:"vision"`
}

// VisionConfig configures the cloud vision OCR client.
type VisionConfig struct {
	Endpoint   string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	APIKey     string `mapstructure:"api_key" yaml:"api_key" json:"api_key"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	MaxRetries int    `mapstructure:"max_retries" yaml:"max_retries" json:"max_retries"`
}

// PinyinConfig locates the character reading table. An empty path disables
// pinyin annotation.
type PinyinConfig struct {
	DictFile string `mapstructure:"dict_file" yaml:"dict_file" json:"dict_file"`
}

// TranslateConfig configures the translation client.
type TranslateConfig struct {
	Endpoint   string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	APIKey     string `mapstructure:"api_key" yaml:"api_key" json:"api_key"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	MaxRetries int    `mapstructure:"max_retries" yaml:"max_retries" json:"max_retries"`
}

// SpeechConfig configures the read-aloud client.
type SpeechConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	APIKey   string `mapstructure:"api_key" yaml:"api_key" json:"api_key"`
	Voice    string `mapstructure:"voice" yaml:"voice" json:"voice"`
}

// CacheConfig bounds the reconstruction cache.
type CacheConfig struct {
	MaxEntries int `mapstructure:"max_entries" yaml:"max_entries" json:"max_entries"`
	TTLMinutes int `mapstructure:"ttl_minutes" yaml:"ttl_minutes" json:"ttl_minutes"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host        string `mapstructure:"host" yaml:"host" json:"host"`
	Port        int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin  string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec  int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit" json:"rate_limit"`
}

// RateLimitConfig contains per-client request limits; zero values disable
// rate limiting.
type RateLimitConfig struct {
	Enabled           bool  `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	RequestsPerMinute int   `mapstructure:"requests_per_minute" yaml:"requests_per_minute" json:"requests_per_minute"`
	RequestsPerHour   int   `mapstructure:"requests_per_hour" yaml:"requests_per_hour" json:"requests_per_hour"`
	MaxRequestsPerDay int   `mapstructure:"max_requests_per_day" yaml:"max_requests_per_day" json:"max_requests_per_day"`
	MaxDataPerDay     int64 `mapstructure:"max_data_per_day" yaml:"max_data_per_day" json:"max_data_per_day"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int    `mapstructure:"workers" yaml:"workers" json:"workers"`
	Format          string `mapstructure:"format" yaml:"format" json:"format"`
	Recursive       bool   `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	ContinueOnError bool   `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Plan:     plan.Free.String(),
		OCR: OCRConfig{
			Engine:    "tesseract",
			Languages: ocr.DefaultLanguages,
			Vision: VisionConfig{
				TimeoutSec: 30,
				MaxRetries: 3,
			},
		},
		Pinyin: PinyinConfig{},
		Translate: TranslateConfig{
			TimeoutSec: 30,
			MaxRetries: 3,
		},
		Speech: SpeechConfig{},
		Cache: CacheConfig{
			MaxEntries: cache.DefaultMaxEntries,
			TTLMinutes: 24 * 60,
		},
		Server: ServerConfig{
			Host:        "localhost",
			Port:        8080,
			CORSOrigin:  "*",
			MaxUploadMB: 20,
			TimeoutSec:  60,
			RateLimit: RateLimitConfig{
				Enabled:           false,
				RequestsPerMinute: 60,
				RequestsPerHour:   1000,
				MaxRequestsPerDay: 5000,
				MaxDataPerDay:     500 * 1024 * 1024,
			},
		},
		Batch: BatchConfig{
			Workers:         4,
			Format:          "text",
			Recursive:       false,
			ContinueOnError: true,
		},
	}
}

// Validate validates the configuration and returns the first error found.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if _, err := plan.Parse(c.Plan); err != nil {
		return err
	}

	validEngines := []string{"tesseract", "vision"}
	if !contains(validEngines, c.OCR.Engine) {
		return fmt.Errorf("invalid ocr engine: %s (must be one of: %s)", c.OCR.Engine, strings.Join(validEngines, ", "))
	}
	if c.OCR.Engine == "vision" && c.OCR.Vision.Endpoint == "" {
		return fmt.Errorf("ocr.vision.endpoint is required when ocr.engine is vision")
	}

	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("invalid cache max entries: %d (must be positive)", c.Cache.MaxEntries)
	}
	if c.Cache.TTLMinutes <= 0 {
		return fmt.Errorf("invalid cache ttl: %d (must be positive)", c.Cache.TTLMinutes)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid max upload size: %d (must be positive)", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid timeout: %d (must be positive)", c.Server.TimeoutSec)
	}

	if c.Batch.Workers <= 0 {
		return fmt.Errorf("invalid batch workers: %d (must be positive)", c.Batch.Workers)
	}
	validFormats := []string{"text", "json", "yaml"}
	if !contains(validFormats, c.Batch.Format) {
		return fmt.Errorf("invalid batch format: %s (must be one of: %s)", c.Batch.Format, strings.Join(validFormats, ", "))
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
