package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// EnvPrefix is the prefix of environment variables that override file settings.
// Underscores separate nesting levels: INVTRACK_STORE_URL sets store.url.
const EnvPrefix = "INVTRACK_"

// Config represents the application configuration
type Config struct {
	Version    int              `koanf:"version" toml:"version"`
	Store      StoreConfig      `koanf:"store" toml:"store"`
	UISettings UISettings       `koanf:"ui" toml:"ui"`
	Validation ValidationConfig `koanf:"validation" toml:"validation"`
	Log        LogConfig        `koanf:"log" toml:"log"`
}

// StoreConfig describes how to reach the remote product store
type StoreConfig struct {
	URL string `koanf:"url" toml:"url" validate:"required,url"`
	// Timeout bounds each HTTP request; zero leaves timeouts to the transport.
	Timeout Duration `koanf:"timeout" toml:"timeout" validate:"gte=0"`
	Breaker BreakerConfig `koanf:"breaker" toml:"breaker"`
}

// BreakerConfig configures the circuit breaker in front of the store.
// Failures of zero disables it.
type BreakerConfig struct {
	Failures    uint32        `koanf:"failures" toml:"failures"`
	OpenTimeout Duration `koanf:"opentimeout" toml:"opentimeout" validate:"required_with=Failures,gte=0"`
}

// Duration is a time.Duration kept in the config file as text such as "30s"
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText accepts Go duration strings and bare nanosecond counts
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(n)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", s)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UISettings represents UI-related configuration
type UISettings struct {
	Currency        string `koanf:"currency" toml:"currency" validate:"max=4"`
	ShowDescription bool   `koanf:"showdescription" toml:"showdescription"`
}

// ValidationConfig controls how strictly new product input is checked
type ValidationConfig struct {
	// Strict rejects negative price and quantity. When false they are sent as typed.
	Strict bool `koanf:"strict" toml:"strict"`
}

// LogConfig controls the log file
type LogConfig struct {
	File   string `koanf:"file" toml:"file"`
	Level  string `koanf:"level" toml:"level" validate:"oneof=trace debug info warn warning error"`
	Format string `koanf:"format" toml:"format" validate:"oneof=text json"`
}

// Validate checks the configuration for values the client cannot work with
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
	envFile  string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "invtrack", "config.toml")
}

// NewConfigService creates a config service backed by the per-user config file
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath())
}

// NewConfigServiceAt creates a config service backed by the given file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{
		filePath: path,
		envFile:  ".env",
	}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration. A missing file yields defaults plus environment overrides.
func (cs *configService) Load() (*Config, error) {
	return cs.load(cs.filePath, false)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path, which must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	return cs.load(path, true)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// load layers defaults, the TOML file, the .env file and the environment, in that order
func (cs *configService) load(path string, required bool) (*Config, error) {
	k := koanf.New(".")

	defaults, err := toMap(DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileMap map[string]any
		if err := toml.Unmarshal(data, &fileMap); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
		if err := k.Load(confmap.Provider(fileMap, "."), nil); err != nil {
			return nil, errors.Wrapf(err, "failed to load config %s", path)
		}
	case os.IsNotExist(err):
		if required {
			return nil, errors.Errorf("config file not found: %s", path)
		}
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	if envFileMap, err := godotenv.Read(cs.envFile); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			if strings.HasPrefix(key, EnvPrefix) {
				envMap[envKey(key)] = value
			}
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.WithError(err).Warn("Error loading .env config")
		}
	} else if !os.IsNotExist(err) {
		log.WithError(err).Warn("Error reading .env file")
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		log.WithError(err).Warn("Error loading environment config")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}

// envKey maps INVTRACK_STORE_URL to store.url
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "_", ".")
}

// toMap flattens a config into the nested map koanf merges
func toMap(cfg *Config) (map[string]any, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal defaults")
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to parse defaults")
	}
	return m, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Store: StoreConfig{
			URL: "http://127.0.0.1:8000",
			Breaker: BreakerConfig{
				Failures:    5,
				OpenTimeout: Duration(30 * time.Second),
			},
		},
		UISettings: UISettings{
			Currency:        "$",
			ShowDescription: true,
		},
		Validation: ValidationConfig{
			Strict: true,
		},
		Log: LogConfig{
			File:   "invtrack.log",
			Level:  "info",
			Format: "text",
		},
	}
}
