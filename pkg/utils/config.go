package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cosmossdk.io/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/celestial-lookup/internal/types"
	"github.com/oxygene76/celestial-lookup/pkg/lookup"
	"github.com/oxygene76/celestial-lookup/pkg/sources"
)

// Config represents the lookup tool configuration
type Config struct {
	Client  ClientConfig            `yaml:"client" mapstructure:"client"`
	Sources map[string]SourceConfig `yaml:"sources" mapstructure:"sources"`
	Schemas map[string]SchemaConfig `yaml:"schemas,omitempty" mapstructure:"schemas"`
	Catalog CatalogConfig           `yaml:"catalog" mapstructure:"catalog"`
	Display DisplayConfig           `yaml:"display" mapstructure:"display"`
	Server  ServerConfig            `yaml:"server" mapstructure:"server"`
	Log     LogConfig               `yaml:"log" mapstructure:"log"`
}

// ClientConfig contains HTTP client settings
type ClientConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent" mapstructure:"user_agent"`
}

// SourceConfig points a source name at an endpoint and the schema that
// reads its documents. URL holds {id} (path-escaped) or {query_id}
// (query-escaped).
type SourceConfig struct {
	URL    string `yaml:"url" mapstructure:"url"`
	Schema string `yaml:"schema" mapstructure:"schema"`
}

// SchemaConfig declares a custom source shape
type SchemaConfig struct {
	Fields map[string]sources.FieldSpec `yaml:"fields" mapstructure:"fields"`
}

// CatalogConfig selects the body catalog; empty uses the built-in one
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// DisplayConfig orders the display lines
type DisplayConfig struct {
	Order []string `yaml:"order" mapstructure:"order"`
}

// ServerConfig contains HTTP service settings
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

const (
	configDirName = ".celestial"
	envPrefix     = "CELESTIAL"
)

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Client: ClientConfig{
			TimeoutSeconds: 15,
			UserAgent:      "celestial-lookup/1.0",
		},
		Sources: map[string]SourceConfig{
			sources.SolarSystemOpenData: {
				URL:    "https://api.le-systeme-solaire.net/rest/bodies/{id}",
				Schema: sources.SolarSystemOpenData,
			},
			sources.JPLSmallBodyDatabase: {
				URL:    "https://ssd-api.jpl.nasa.gov/sbdb.api?sstr={query_id}&phys-par=1",
				Schema: sources.JPLSmallBodyDatabase,
			},
			sources.NASAExoplanetArchive: {
				URL: "https://exoplanetarchive.ipac.caltech.edu/TAP/sync?query=" +
					"select+pl_name,pl_bmasse,pl_rade,pl_orbsmax,pl_orbper,pl_orbeccen+from+pscomppars" +
					"+where+pl_name='{query_id}'&format=json",
				Schema: sources.NASAExoplanetArchive,
			},
		},
		Display: DisplayConfig{
			Order: []string{
				"mass",
				"sidereal_orbit",
				"mean_radius",
				"sidereal_rotation",
				"semi_major_axis",
				"surface_gravity",
				"escape_velocity",
				"orbital_velocity",
				"centripetal_acceleration",
				"orbital_period",
			},
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from cfgFile, or searches the default
// locations when cfgFile is empty. A missing file yields the defaults.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, configDirName))
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	// Set environment variable prefix
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	config := DefaultConfig()
	setDefaults(v, config)

	if err := v.ReadInConfig(); err != nil {
		// Only a searched-for file may be missing
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// mapstructure does not truncate slices it decodes into
	if v.IsSet("display.order") {
		config.Display.Order = nil
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// setDefaults registers scalar keys so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("client.timeout_seconds", c.Client.TimeoutSeconds)
	v.SetDefault("client.user_agent", c.Client.UserAgent)
	v.SetDefault("catalog.path", c.Catalog.Path)
	v.SetDefault("server.addr", c.Server.Addr)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)
}

// SaveConfig writes configuration to path as YAML
func SaveConfig(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetConfigPath returns the default path of the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configDirName, "config.yaml"), nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Client.TimeoutSeconds <= 0 {
		return errors.Wrap(types.ErrInvalidConfig, "client timeout must be positive")
	}

	if len(config.Sources) == 0 {
		return errors.Wrap(types.ErrInvalidConfig, "at least one source must be configured")
	}

	registry, err := config.Registry()
	if err != nil {
		return err
	}

	for _, name := range config.SourceNames() {
		src := config.Sources[name]
		if !strings.Contains(src.URL, "{id}") && !strings.Contains(src.URL, "{query_id}") {
			return errors.Wrapf(types.ErrInvalidConfig, "source %s: url must contain {id} or {query_id}", name)
		}
		if _, err := registry.Get(src.Schema); err != nil {
			return errors.Wrapf(types.ErrInvalidConfig, "source %s: %v", name, err)
		}
	}

	if _, err := lookup.ParseOrder(config.Display.Order); err != nil {
		return errors.Wrapf(types.ErrInvalidConfig, "display order: %v", err)
	}

	if _, err := zerolog.ParseLevel(config.Log.Level); err != nil {
		return errors.Wrapf(types.ErrInvalidConfig, "log level %q", config.Log.Level)
	}

	switch config.Log.Format {
	case "text", "json":
	default:
		return errors.Wrapf(types.ErrInvalidConfig, "log format %q (want text or json)", config.Log.Format)
	}

	return nil
}

// Registry returns the built-in schemas plus the configured custom ones.
func (c *Config) Registry() (*sources.Registry, error) {
	registry := sources.Builtin()

	names := make([]string, 0, len(c.Schemas))
	for name := range c.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		schema, err := sources.NewSchema(name, c.Schemas[name].Fields)
		if err != nil {
			return nil, errors.Wrap(types.ErrInvalidConfig, err.Error())
		}
		registry.Register(schema)
	}
	return registry, nil
}

// SourceNames returns the configured source names, sorted
func (c *Config) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
