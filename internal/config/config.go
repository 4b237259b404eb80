package config

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/supplier-drilldown/internal/common"
	"github.com/Veraticus/supplier-drilldown/internal/source"
	"github.com/Veraticus/supplier-drilldown/internal/storage"
	"github.com/Veraticus/supplier-drilldown/internal/view"
)

// Input sources.
const (
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
)

// DataConfig locates the JSON input files. Relative file names are
// resolved against Dir.
type DataConfig struct {
	Dir         string `mapstructure:"dir" yaml:"dir"`
	Records     string `mapstructure:"records" yaml:"records"`
	Categories  string `mapstructure:"categories" yaml:"categories"`
	Performance string `mapstructure:"performance" yaml:"performance"`
}

// DatabaseConfig locates the SQLite snapshot.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// TrendConfig pins the reference date of trend views. Empty means today.
type TrendConfig struct {
	AsOf string `mapstructure:"as_of" yaml:"as_of,omitempty"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Config is the complete drill configuration.
type Config struct {
	Data     DataConfig     `mapstructure:"data" yaml:"data"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Trend    TrendConfig    `mapstructure:"trend" yaml:"trend"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Source   string         `mapstructure:"source" yaml:"source"`
	Views    []view.Config  `mapstructure:"views" yaml:"views,omitempty"`
}

// EnvPrefix prefixes environment overrides, as in DRILL_SERVER_ADDR.
const EnvPrefix = "DRILL"

// BindEnv lets DRILL_* environment variables override nested keys.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", ".")
	v.SetDefault("data.records", "records.json")
	v.SetDefault("data.categories", "categories.json")
	v.SetDefault("data.performance", "performance.json")
	v.SetDefault("database.path", "$HOME/.local/share/drill/drill.db")
	v.SetDefault("source", SourceJSON)
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load decodes v into a Config. Without configured views the stock
// dashboard is used.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	if len(cfg.Views) == 0 {
		cfg.Views = view.DefaultConfigs()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the source selection, logging settings and views.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceJSON, SourceSQLite:
	default:
		return fmt.Errorf("%w: unknown source %q", common.ErrInvalidConfig, c.Source)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := c.AsOf(time.Time{}); err != nil {
		return err
	}
	return view.ValidateAll(c.Views)
}

// JSONSource returns the JSON file source described by the data section.
func (c *Config) JSONSource() source.JSONSource {
	return source.JSONSource{
		RecordsPath:     ResolvePath(c.Data.Dir, c.Data.Records),
		CategoriesPath:  ResolvePath(c.Data.Dir, c.Data.Categories),
		PerformancePath: ResolvePath(c.Data.Dir, c.Data.Performance),
	}
}

// DatabasePath returns the expanded snapshot database path.
func (c *Config) DatabasePath() string {
	return ExpandPath(c.Database.Path)
}

// OpenSource opens the configured input. The returned closer releases the
// database when the source is SQLite and is a no-op otherwise.
func (c *Config) OpenSource(ctx context.Context) (source.Source, io.Closer, error) {
	if c.Source == SourceSQLite {
		store, err := storage.Open(ctx, c.DatabasePath())
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	}
	return c.JSONSource(), nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// AsOf returns the configured trend reference date, or now when unset.
func (c *Config) AsOf(now time.Time) (time.Time, error) {
	if c.Trend.AsOf == "" {
		return now, nil
	}
	t, err := time.Parse(time.DateOnly, c.Trend.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: trend.as_of %q is not a YYYY-MM-DD date", common.ErrInvalidConfig, c.Trend.AsOf)
	}
	return t, nil
}

// Default returns the configuration Load produces without any input.
func Default() *Config {
	cfg, err := Load(viper.New())
	if err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

// DefaultYAML renders the default configuration, stock views included, as
// a starting config file.
func DefaultYAML() ([]byte, error) {
	return yaml.Marshal(Default())
}
