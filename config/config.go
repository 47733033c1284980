package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

// Config is filled from defaults, the YAML file and then the environment.
// Variables are named SECTION_FIELD (APP_NAME, WEATHER_API_KEY). Leaf fields
// must not carry envconfig tags: a tagged field also reads its bare name.
type Config struct {
	App     AppConfig     `yaml:"app" envconfig:"APP"`
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Log     LogConfig     `yaml:"log" envconfig:"LOG"`
	Weather WeatherConfig `yaml:"weather" envconfig:"WEATHER"`
	Rain    RainConfig    `yaml:"rain" envconfig:"RAIN"`
	Sentry  SentryConfig  `yaml:"sentry" envconfig:"SENTRY"`
}

type AppConfig struct {
	Name    string `yaml:"name" split_words:"true"`
	Version string `yaml:"version" split_words:"true"`
	Env     string `yaml:"env" split_words:"true"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port" split_words:"true"`
	ReadTimeout  int    `yaml:"read_timeout" split_words:"true"`
	WriteTimeout int    `yaml:"write_timeout" split_words:"true"`
	IdleTimeout  int    `yaml:"idle_timeout" split_words:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true"`
}

// WeatherConfig describes the OpenWeatherMap upstream. Timeout is in seconds,
// Backoff in milliseconds. A non-empty FallbackURL enables the keyless
// Open-Meteo provider for coordinate lookups OpenWeatherMap fails to answer.
type WeatherConfig struct {
	BaseURL     string `yaml:"base_url" split_words:"true"`
	APIKey      string `yaml:"api_key,omitempty" split_words:"true"`
	Timeout     int    `yaml:"timeout" split_words:"true"`
	MaxRetries  int    `yaml:"max_retries" split_words:"true"`
	Backoff     int    `yaml:"backoff" split_words:"true"`
	FallbackURL string `yaml:"fallback_url,omitempty" split_words:"true"`
}

// RainConfig points at the remote rain model. An empty URL disables rain
// prediction.
type RainConfig struct {
	URL        string `yaml:"url,omitempty" split_words:"true"`
	Timeout    int    `yaml:"timeout" split_words:"true"`
	MaxRetries int    `yaml:"max_retries" split_words:"true"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn,omitempty" split_words:"true"`
	Debug bool   `yaml:"debug" split_words:"true"`
}

// ConfigProvider loads and validates a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider layers defaults, a YAML file, optional dotenv files and
// the process environment, in that order.
type FileConfigProvider struct {
	path     string
	envFiles []string
}

func NewFileConfigProvider(path string, envFiles ...string) *FileConfigProvider {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	return &FileConfigProvider{
		path:     path,
		envFiles: envFiles,
	}
}

func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-lookup",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Weather: WeatherConfig{
			BaseURL:    "https://api.openweathermap.org/data/2.5",
			Timeout:    10,
			MaxRetries: 2,
			Backoff:    300,
		},
		Rain: RainConfig{
			Timeout:    5,
			MaxRetries: 1,
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := Default()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	if err := p.loadEnvFiles(); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

// loadFromFile overlays the YAML file on config. A missing file is not an error.
func (p *FileConfigProvider) loadFromFile(config *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, config); err != nil {
		return fmt.Errorf("failed to parse YAML config %s: %w", p.path, err)
	}

	return nil
}

// loadEnvFiles exports dotenv entries that are not already set in the environment.
func (p *FileConfigProvider) loadEnvFiles() error {
	for _, f := range p.envFiles {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	switch {
	case config.App.Name == "":
		return errors.New("app.name is required")
	case config.App.Version == "":
		return errors.New("app.version is required")
	case config.Server.Port == "":
		return errors.New("server.port is required")
	case config.Server.ReadTimeout <= 0, config.Server.WriteTimeout <= 0, config.Server.IdleTimeout <= 0:
		return errors.New("server timeouts must be positive")
	}

	switch config.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", config.Log.Level)
	}

	switch config.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q is not one of json, console", config.Log.Format)
	}

	if config.Weather.BaseURL == "" {
		return errors.New("weather.base_url is required")
	}
	if _, err := url.ParseRequestURI(config.Weather.BaseURL); err != nil {
		return fmt.Errorf("weather.base_url: %w", err)
	}
	if config.Weather.Timeout <= 0 {
		return errors.New("weather.timeout must be positive")
	}
	if config.Weather.MaxRetries < 0 || config.Rain.MaxRetries < 0 {
		return errors.New("max_retries must not be negative")
	}

	if config.Weather.FallbackURL != "" {
		if _, err := url.ParseRequestURI(config.Weather.FallbackURL); err != nil {
			return fmt.Errorf("weather.fallback_url: %w", err)
		}
	}

	if config.Rain.URL != "" {
		if _, err := url.ParseRequestURI(config.Rain.URL); err != nil {
			return fmt.Errorf("rain.url: %w", err)
		}
		if config.Rain.Timeout <= 0 {
			return errors.New("rain.timeout must be positive")
		}
	}

	return nil
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cnf, nil
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(DefaultPath))
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) RainEnabled() bool {
	return c.Rain.URL != ""
}

func (c *Config) FallbackEnabled() bool {
	return c.Weather.FallbackURL != ""
}
