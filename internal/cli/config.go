package cli

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/generator"
	"github.com/toyz/testgen/internal/logger"
	"github.com/toyz/testgen/internal/utils"
)

// EnvPrefix prefixes every environment variable read by the configuration
const EnvPrefix = "TESTGEN"

// ConfigName is the base name of the config file searched in the working directory
const ConfigName = "testgen"

// Config holds the configuration for the CLI
type Config struct {
	// SourceDir is the root scanned for modules needing tests
	SourceDir string `mapstructure:"source_dir"`

	// TestDir is the root generated tests are staged from
	TestDir string `mapstructure:"test_dir"`

	Extensions  []string `mapstructure:"extensions"`
	ExcludeDirs []string `mapstructure:"exclude_dirs"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `mapstructure:"verbose"`
	Quiet   bool `mapstructure:"quiet"`

	// NoColor disables ANSI colors in console output
	NoColor bool `mapstructure:"no_color"`

	Watch WatchConfig `mapstructure:"watch"`
	Git   GitConfig   `mapstructure:"git"`
	Log   LogConfig   `mapstructure:"log"`

	// ConfigFile is the file the configuration was read from, empty when none was found
	ConfigFile string `mapstructure:"-"`
}

// WatchConfig configures the directory watcher
type WatchConfig struct {
	Path     string        `mapstructure:"path"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// GitConfig configures the version-control integration
type GitConfig struct {
	Repository string `mapstructure:"repository"`
	Compare    string `mapstructure:"compare"`
}

// LogConfig configures the structured log written to stderr
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}

// SetDefaults registers every default value on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source_dir", "src")
	v.SetDefault("test_dir", "src")
	v.SetDefault("extensions", utils.DefaultExtensions)
	v.SetDefault("exclude_dirs", utils.DefaultExcludeDirs)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("no_color", false)

	v.SetDefault("watch.path", "")
	v.SetDefault("watch.debounce", "300ms")

	v.SetDefault("git.repository", ".")
	v.SetDefault("git.compare", "HEAD~1")

	v.SetDefault("log.json", false)
}

// NewViper creates a viper instance with defaults and environment binding
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	return v
}

// LoadConfig reads configFile, or testgen.{toml,yaml,json} from the working
// directory when configFile is empty, and decodes the merged configuration.
// A missing implicit config file is not an error.
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			source := configFile
			if source == "" {
				source = ConfigName
			}
			return nil, errors.WrapConfigurationError(source, "read", err).
				WithSuggestions("check the file exists and is valid TOML, YAML or JSON")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.WrapConfigurationError("testgen", "decode", err)
	}
	config.ConfigFile = v.ConfigFileUsed()

	return &config, nil
}

// Validate checks the configuration for values the generator cannot use
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourceDir) == "" {
		return errors.ConfigurationError("source_dir", "source directory cannot be empty").
			WithSuggestions("set source_dir in testgen.toml or pass --src")
	}

	if len(c.Extensions) == 0 {
		return errors.ConfigurationError("extensions", "at least one module extension is required").
			WithSuggestions(`set extensions, e.g. [".ts", ".tsx", ".js", ".jsx"]`)
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return errors.ConfigurationError("extensions", "extension '"+ext+"' must start with a dot").
				WithContext("extension", ext).
				WithSuggestions("write extensions with a leading dot, e.g. \".tsx\"")
		}
	}

	if c.Watch.Debounce < 0 {
		return errors.ConfigurationError("watch.debounce", "debounce cannot be negative")
	}

	if c.Verbose && c.Quiet {
		return errors.ConfigurationError("verbose", "verbose and quiet cannot both be set")
	}

	return nil
}

// GeneratorOptions returns the generator options described by the configuration
func (c *Config) GeneratorOptions() generator.Options {
	return generator.Options{
		SourceRoot:  c.SourceDir,
		TestRoot:    c.TestDir,
		Extensions:  c.Extensions,
		ExcludeDirs: c.ExcludeDirs,
	}
}

// WatchPath returns the directory to watch, falling back to the source directory
func (c *Config) WatchPath() string {
	if c.Watch.Path != "" {
		return c.Watch.Path
	}
	return c.SourceDir
}

// Diagnostics creates the console output system matching the verbosity flags
func (c *Config) Diagnostics() *utils.DiagnosticSystem {
	var diag *utils.DiagnosticSystem
	switch {
	case c.Quiet:
		diag = utils.NewQuietDiagnostics()
	case c.Verbose:
		diag = utils.NewVerboseDiagnostics()
	default:
		diag = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if c.NoColor {
		diag.DisableColors()
	}
	return diag
}

// LoggerOptions returns the structured log options described by the configuration
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Verbose:    c.Verbose,
		JSONOutput: c.Log.JSON,
	}
}
