package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"coinlens/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App     AppConfig      `mapstructure:"app"`
	Logging logging.Config `mapstructure:"logging"`
	Paths   PathsConfig    `mapstructure:"paths"`
	Fetcher FetcherConfig  `mapstructure:"fetcher"`
	Storage StorageConfig  `mapstructure:"storage"`
	Chart   ChartConfig    `mapstructure:"chart"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// PathsConfig locates raw exports, report logs and rendered charts.
type PathsConfig struct {
	Root           string `mapstructure:"root"`
	RawExports     string `mapstructure:"raw_exports"`
	Reports        string `mapstructure:"reports"`
	Visualizations string `mapstructure:"visualizations"`
}

// FetcherConfig captures ticker API connectivity.
type FetcherConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Start      int           `mapstructure:"start"`
	Limit      int           `mapstructure:"limit"`
	Timeout    time.Duration `mapstructure:"timeout"`
	UserAgent  string        `mapstructure:"user_agent"`
	FilePrefix string        `mapstructure:"file_prefix"`
}

// StorageConfig tunes the report log.
type StorageConfig struct {
	RotateBytes int64 `mapstructure:"rotate_bytes"`
	Indent      int   `mapstructure:"indent"`
}

// ChartConfig sets PNG dimensions.
type ChartConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Load builds configuration from file, environment (.env included), and defaults.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("COINLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "coinlens")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("paths.root", "reports")
	v.SetDefault("paths.raw_exports", "reports/data_raw_exports")
	v.SetDefault("paths.reports", "reports/analysis_outputs")
	v.SetDefault("paths.visualizations", "reports/visualizations")

	v.SetDefault("fetcher.base_url", "https://api.coinlore.net/api")
	v.SetDefault("fetcher.start", 0)
	v.SetDefault("fetcher.limit", 10)
	v.SetDefault("fetcher.timeout", "10s")
	v.SetDefault("fetcher.user_agent", "coinlens/1.0")
	v.SetDefault("fetcher.file_prefix", "consulta_tickers")

	v.SetDefault("storage.rotate_bytes", 0)
	v.SetDefault("storage.indent", 4)

	v.SetDefault("chart.width", 1280)
	v.SetDefault("chart.height", 720)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Fetcher.Limit <= 0 {
		return fmt.Errorf("fetcher.limit must be greater than zero")
	}
	if c.Fetcher.Start < 0 {
		return fmt.Errorf("fetcher.start cannot be negative")
	}
	if c.Fetcher.Timeout <= 0 {
		return fmt.Errorf("fetcher.timeout must be greater than zero")
	}
	if c.Storage.RotateBytes < 0 {
		return fmt.Errorf("storage.rotate_bytes cannot be negative")
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart.width and chart.height must be greater than zero")
	}
	if c.Paths.RawExports == "" || c.Paths.Reports == "" || c.Paths.Visualizations == "" {
		return fmt.Errorf("paths.raw_exports, paths.reports and paths.visualizations must be set")
	}
	return nil
}
