package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/cloudchase/modelfetch/fetch"
	"github.com/cloudchase/modelfetch/registry"
)

// EnvPrefix prefixes every environment variable read by Load, e.g. MODELFETCH_MODEL_URL.
const EnvPrefix = "MODELFETCH"

// Config holds all application configuration.
type Config struct {
	Model    ModelConfig    `mapstructure:"model"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Progress ProgressConfig `mapstructure:"progress"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Registry RegistryConfig `mapstructure:"registry"`
}

// ModelConfig describes the file to download.
type ModelConfig struct {
	Name        string `mapstructure:"name"`
	URL         string `mapstructure:"url"`
	Path        string `mapstructure:"path"`
	FallbackURL string `mapstructure:"fallback_url"`
}

// HTTPConfig holds HTTP client configuration.
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	ChunkSize int           `mapstructure:"chunk_size"`
}

// ProgressConfig selects the progress renderer.
type ProgressConfig struct {
	Style string `mapstructure:"style"`
}

// LoggingConfig holds diagnostic logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// RegistryConfig holds the location of fetched model manifests. Fetches are
// only recorded when Record is set.
type RegistryConfig struct {
	Dir    string `mapstructure:"dir"`
	Record bool   `mapstructure:"record"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			URL:         fetch.DefaultURL,
			Path:        fetch.DefaultPath,
			FallbackURL: fetch.DefaultFallbackURL,
		},
		HTTP: HTTPConfig{
			UserAgent: "modelfetch",
			ChunkSize: fetch.DefaultChunkSize,
		},
		Progress: ProgressConfig{
			Style: "text",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Registry: RegistryConfig{
			Dir: defaultRegistryDir(),
		},
	}
}

// Load reads configuration from a .env file, a config file and environment variables.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, errors.Wrap(err, "failed to load .env")
		}
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("modelfetch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.modelfetch")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("model.name", d.Model.Name)
	v.SetDefault("model.url", d.Model.URL)
	v.SetDefault("model.path", d.Model.Path)
	v.SetDefault("model.fallback_url", d.Model.FallbackURL)

	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("http.chunk_size", d.HTTP.ChunkSize)

	v.SetDefault("progress.style", d.Progress.Style)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", d.Logging.Path)

	v.SetDefault("registry.dir", d.Registry.Dir)
	v.SetDefault("registry.record", d.Registry.Record)
}

// defaultRegistryDir returns ~/.modelfetch, or "" when there is no home
// directory. An empty dir is rejected when the registry is opened.
func defaultRegistryDir() string {
	dir, err := registry.DefaultBaseDir()
	if err != nil {
		return ""
	}
	return dir
}

// Target builds the download target from the model section.
func (c *Config) Target() fetch.Target {
	return fetch.Target{
		Name:        c.Model.Name,
		URL:         c.Model.URL,
		Path:        c.Model.Path,
		FallbackURL: c.Model.FallbackURL,
	}
}

// DownloadOptions builds downloader options from the http section.
func (c *Config) DownloadOptions() fetch.Options {
	return fetch.Options{
		Timeout:   c.HTTP.Timeout,
		UserAgent: c.HTTP.UserAgent,
		ChunkSize: c.HTTP.ChunkSize,
	}
}
