// Package config loads storefront settings from flags, STOREFRONT_*
// environment variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/3-lines-studio/storefront/internal/core"
)

const EnvPrefix = "STOREFRONT"

const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceSQL      = "sql"
	SourceAPI      = "api"
)

type Catalog struct {
	Source    string        `mapstructure:"source"`
	File      string        `mapstructure:"file"`
	SQLDriver string        `mapstructure:"sql_driver"`
	SQLDSN    string        `mapstructure:"sql_dsn"`
	DevURL    string        `mapstructure:"dev_url"`
	ProdURL   string        `mapstructure:"prod_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type Image struct {
	FallbackWidth  int    `mapstructure:"fallback_width"`
	FallbackHeight int    `mapstructure:"fallback_height"`
	PlaceholderURL string `mapstructure:"placeholder_url"`
}

type Cart struct {
	Action string `mapstructure:"action"`
}

type Server struct {
	Addr    string `mapstructure:"addr"`
	APIAddr string `mapstructure:"api_addr"`
}

type Config struct {
	Env         string  `mapstructure:"env"`
	StoreName   string  `mapstructure:"store_name"`
	LogLevel    string  `mapstructure:"log_level"`
	OutDir      string  `mapstructure:"out_dir"`
	PublicDir   string  `mapstructure:"public_dir"`
	Concurrency int     `mapstructure:"concurrency"`
	Catalog     Catalog `mapstructure:"catalog"`
	Image       Image   `mapstructure:"image"`
	Cart        Cart    `mapstructure:"cart"`
	Server      Server  `mapstructure:"server"`
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"env":            "env",
	"store-name":     "store_name",
	"log-level":      "log_level",
	"out-dir":        "out_dir",
	"public-dir":     "public_dir",
	"concurrency":    "concurrency",
	"catalog-source": "catalog.source",
	"catalog-file":   "catalog.file",
	"sql-driver":     "catalog.sql_driver",
	"sql-dsn":        "catalog.sql_dsn",
	"addr":           "server.addr",
	"api-addr":       "server.api_addr",
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("store_name", "Fastest Growing Trees")
	v.SetDefault("log_level", "info")
	v.SetDefault("out_dir", "out")
	v.SetDefault("public_dir", "public")
	v.SetDefault("concurrency", 0)

	v.SetDefault("catalog.source", SourceEmbedded)
	v.SetDefault("catalog.file", "")
	v.SetDefault("catalog.sql_driver", "sqlite")
	v.SetDefault("catalog.sql_dsn", "")
	v.SetDefault("catalog.dev_url", "http://localhost:8081")
	v.SetDefault("catalog.prod_url", "")
	v.SetDefault("catalog.timeout", 10*time.Second)

	v.SetDefault("image.fallback_width", 556)
	v.SetDefault("image.fallback_height", 554)
	v.SetDefault("image.placeholder_url", "https://via.placeholder.com")

	v.SetDefault("cart.action", "/cart")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.api_addr", ":8081")
}

// BindFlags binds every known flag present in fs. Flags a command does not
// define are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configFile when set, unmarshals and validates the result.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (c Config) Validate() error {
	if _, err := core.ParseMode(c.Env); err != nil {
		return fmt.Errorf("%w: env: %v", ErrInvalidConfig, err)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	if c.OutDir == "" {
		return fmt.Errorf("%w: out_dir is required", ErrInvalidConfig)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative", ErrInvalidConfig)
	}
	if c.Image.FallbackWidth <= 0 || c.Image.FallbackHeight <= 0 {
		return fmt.Errorf("%w: image fallback size must be positive", ErrInvalidConfig)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("%w: catalog.timeout must be positive", ErrInvalidConfig)
	}

	switch c.Catalog.Source {
	case SourceEmbedded:
	case SourceFile:
		if c.Catalog.File == "" {
			return fmt.Errorf("%w: catalog.file is required for the file source", ErrInvalidConfig)
		}
	case SourceSQL:
		if c.Catalog.SQLDriver != "sqlite" && c.Catalog.SQLDriver != "postgres" {
			return fmt.Errorf("%w: unsupported catalog.sql_driver %q", ErrInvalidConfig, c.Catalog.SQLDriver)
		}
		if c.Catalog.SQLDSN == "" {
			return fmt.Errorf("%w: catalog.sql_dsn is required for the sql source", ErrInvalidConfig)
		}
	case SourceAPI:
		if c.CatalogBaseURL() == "" {
			return fmt.Errorf("%w: no catalog url configured for %s", ErrInvalidConfig, c.Mode())
		}
	default:
		return fmt.Errorf("%w: unknown catalog.source %q", ErrInvalidConfig, c.Catalog.Source)
	}
	return nil
}

// Mode is the build environment. Validate guarantees Env parses.
func (c Config) Mode() core.Mode {
	mode, _ := core.ParseMode(c.Env)
	return mode
}

// CatalogBaseURL is the catalog API and site origin for the current
// environment.
func (c Config) CatalogBaseURL() string {
	if c.Mode().IsDev() {
		return strings.TrimSuffix(c.Catalog.DevURL, "/")
	}
	return strings.TrimSuffix(c.Catalog.ProdURL, "/")
}
