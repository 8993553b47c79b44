package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Jens252/billbee-bricklink/internal/infrastructure/bricklink"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/ecommerce"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/logger"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/telemetry"
)

// EnvPrefix prefixes every environment override, e.g. BBL_BRICKLINK_CONSUMER_KEY.
const EnvPrefix = "BBL"

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Bricklink BricklinkConfig
	Billbee   BillbeeConfig
	Settings  SettingsConfig
	Telemetry TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds server settings for the custom-shop endpoint
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxBodySize    int64
	TrustedProxies []string
}

// BricklinkConfig holds store API credentials and transport settings
type BricklinkConfig struct {
	ConsumerKey    string
	ConsumerSecret string
	TokenValue     string
	TokenSecret    string
	UseHTTPS       bool
	BaseURL        string
	Timeout        time.Duration
	ConnectTimeout time.Duration
	HTTPErrors     bool
	Debug          bool
}

// BillbeeConfig holds the shared secret and mount path of the custom-shop endpoint
type BillbeeConfig struct {
	SecretKey string
	Path      string
}

// SettingsConfig holds the store-specific adapter switches
type SettingsConfig struct {
	ImportTypes        []string
	ImportStockroom    bool
	MultipleStockrooms bool
	MaxQuantityForSets *int
	GroupParts         bool
}

// TelemetryConfig holds OpenTelemetry settings
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
	MetricsEnabled    bool
	ExportInterval    time.Duration
}

// Load reads config.toml from the working directory, ./config or
// /etc/billbee-bricklink, or the file named by BBL_CONFIG, then applies
// environment overrides.
func Load() (*Config, error) {
	v := viper.New()

	if file := os.Getenv(EnvPrefix + "_CONFIG"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/billbee-bricklink")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, defaults and env vars still apply
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Booleans that default to true cannot be told apart from false after GetBool
	v.SetDefault("bricklink.use_https", true)
	v.SetDefault("bricklink.http_errors", true)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
		Bricklink: BricklinkConfig{
			ConsumerKey:    v.GetString("bricklink.consumer_key"),
			ConsumerSecret: v.GetString("bricklink.consumer_secret"),
			TokenValue:     v.GetString("bricklink.token_value"),
			TokenSecret:    v.GetString("bricklink.token_secret"),
			UseHTTPS:       v.GetBool("bricklink.use_https"),
			BaseURL:        v.GetString("bricklink.base_url"),
			Timeout:        v.GetDuration("bricklink.timeout"),
			ConnectTimeout: v.GetDuration("bricklink.connect_timeout"),
			HTTPErrors:     v.GetBool("bricklink.http_errors"),
			Debug:          v.GetBool("bricklink.debug"),
		},
		Billbee: BillbeeConfig{
			SecretKey: v.GetString("billbee.secret_key"),
			Path:      v.GetString("billbee.path"),
		},
		Settings: SettingsConfig{
			ImportTypes:        splitList(v.GetStringSlice("settings.import_types")),
			ImportStockroom:    v.GetBool("settings.import_stockroom"),
			MultipleStockrooms: v.GetBool("settings.multiple_stockrooms"),
			GroupParts:         v.GetBool("settings.group_parts"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			ExportInterval:    v.GetDuration("telemetry.export_interval"),
		},
	}
	if v.IsSet("settings.max_quantity_for_sets") {
		limit := v.GetInt("settings.max_quantity_for_sets")
		cfg.Settings.MaxQuantityForSets = &limit
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList accepts both TOML arrays and comma separated env values.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "billbee-bricklink"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 30 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// order listing fetches every order detail sequentially
		cfg.HTTP.WriteTimeout = 5 * time.Minute
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20
	}
	if cfg.Bricklink.Timeout == 0 {
		cfg.Bricklink.Timeout = 15 * time.Second
	}
	if cfg.Bricklink.ConnectTimeout == 0 {
		cfg.Bricklink.ConnectTimeout = 5 * time.Second
	}
	if cfg.Billbee.Path == "" {
		cfg.Billbee.Path = "/api/billbee"
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
}

func (c *Config) validate() error {
	if c.Bricklink.Timeout < 0 || c.Bricklink.ConnectTimeout < 0 {
		return fmt.Errorf("bricklink.timeout and bricklink.connect_timeout must be positive")
	}
	if c.Settings.MaxQuantityForSets != nil && *c.Settings.MaxQuantityForSets < 0 {
		return fmt.Errorf("settings.max_quantity_for_sets cannot be negative, got %d", *c.Settings.MaxQuantityForSets)
	}
	if !strings.HasPrefix(c.Billbee.Path, "/") {
		return fmt.Errorf("billbee.path must start with '/', got %q", c.Billbee.Path)
	}

	if c.IsProduction() {
		if c.Bricklink.ConsumerKey == "" || c.Bricklink.ConsumerSecret == "" {
			return fmt.Errorf("bricklink.consumer_key and bricklink.consumer_secret are required in production")
		}
		if c.Bricklink.TokenValue == "" || c.Bricklink.TokenSecret == "" {
			return fmt.Errorf("bricklink.token_value and bricklink.token_secret are required in production")
		}
		if c.Billbee.SecretKey == "" {
			return fmt.Errorf("billbee.secret_key is required in production")
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}
	return nil
}

// IsProduction reports whether the service runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LoggerConfig returns the logger settings.
func (c *Config) LoggerConfig() *logger.Config {
	cfg := logger.DefaultConfig()
	if c.IsProduction() {
		cfg = logger.ProductionConfig()
	}
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	cfg.Output = c.Log.Output
	return cfg
}

// StoreConfig returns the store API client settings.
func (c *Config) StoreConfig() *bricklink.Config {
	b := c.Bricklink
	cfg := bricklink.NewConfig(b.ConsumerKey, b.ConsumerSecret, b.TokenValue, b.TokenSecret)
	cfg.UseHTTPS = b.UseHTTPS
	cfg.BaseURL = b.BaseURL
	cfg.Timeout = b.Timeout
	cfg.ConnectTimeout = b.ConnectTimeout
	cfg.HTTPErrors = b.HTTPErrors
	cfg.Debug = b.Debug
	return cfg
}

// AdapterSettings returns the adapter switches.
func (c *Config) AdapterSettings() ecommerce.Settings {
	s := c.Settings
	return ecommerce.Settings{
		ImportTypes:        append([]string(nil), s.ImportTypes...),
		ImportStockroom:    s.ImportStockroom,
		MultipleStockrooms: s.MultipleStockrooms,
		MaxQuantityForSets: s.MaxQuantityForSets,
		GroupParts:         s.GroupParts,
	}
}

// TelemetrySettings returns the OpenTelemetry settings.
func (c *Config) TelemetrySettings() telemetry.Config {
	t := c.Telemetry
	return telemetry.Config{
		Enabled:           t.Enabled,
		CollectorEndpoint: t.CollectorEndpoint,
		SamplingRatio:     t.SamplingRatio,
		ServiceName:       t.ServiceName,
		Insecure:          t.Insecure,
		MetricsEnabled:    t.MetricsEnabled,
		ExportInterval:    t.ExportInterval,
	}
}
