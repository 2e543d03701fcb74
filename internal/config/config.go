// Package config provides configuration management for confcheck using Viper.
package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/thoreinstein/confcheck/internal/configuration"
	"github.com/thoreinstein/confcheck/internal/errors"
	"github.com/thoreinstein/confcheck/internal/paths"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "CONFCHECK"

// Config is the tool's own configuration.
type Config struct {
	Version               int      `mapstructure:"version" yaml:"version" json:"version" validate:"eq=1"`
	Root                  string   `mapstructure:"root" yaml:"root,omitempty" json:"root,omitempty" validate:"omitempty,cleanpath"`
	PackagesDir           string   `mapstructure:"packages_dir" yaml:"packages_dir" json:"packages_dir" validate:"required,cleanpath"`
	ConfigurationDir      string   `mapstructure:"configuration_dir" yaml:"configuration_dir" json:"configuration_dir" validate:"required,cleanpath"`
	Contexts              []string `mapstructure:"contexts" yaml:"contexts" json:"contexts" validate:"min=1,unique,dive,appcontext"`
	Types                 []string `mapstructure:"types" yaml:"types" json:"types" validate:"min=1,unique,dive,configtype"`
	SchemaPackages        []string `mapstructure:"schema_packages" yaml:"schema_packages" json:"schema_packages" validate:"unique,dive,required"`
	ConfigurationPackages []string `mapstructure:"configuration_packages" yaml:"configuration_packages" json:"configuration_packages" validate:"unique,dive,required"`
	Workers               int      `mapstructure:"workers" yaml:"workers" json:"workers" validate:"gte=1,lte=64"`
	Output                string   `mapstructure:"output" yaml:"output" json:"output" validate:"oneof=text json"`
}

// DefaultSchemaPackages are the packages whose schemas are used.
var DefaultSchemaPackages = []string{"TYPO3.Flow"}

// DefaultConfigurationPackages are the packages whose configuration is merged.
var DefaultConfigurationPackages = []string{"TYPO3.Flow", "TYPO3.Fluid", "TYPO3.Eel", "TYPO3.Kickstart"}

// Default returns the configuration used when no file is present.
func Default() *Config {
	contexts := make([]string, 0, 3)
	for _, c := range configuration.DefaultContexts() {
		contexts = append(contexts, c.String())
	}
	return &Config{
		Version:               1,
		PackagesDir:           "Packages",
		ConfigurationDir:      paths.ConfigurationDirName,
		Contexts:              contexts,
		Types:                 configuration.TypeNames(),
		SchemaPackages:        DefaultSchemaPackages,
		ConfigurationPackages: DefaultConfigurationPackages,
		Workers:               1,
		Output:                "text",
	}
}

// Init resets Viper and installs search paths, environment binding and
// defaults. Call it once at startup before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.AppConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	def := Default()
	viper.SetDefault("version", def.Version)
	viper.SetDefault("root", def.Root)
	viper.SetDefault("packages_dir", def.PackagesDir)
	viper.SetDefault("configuration_dir", def.ConfigurationDir)
	viper.SetDefault("contexts", def.Contexts)
	viper.SetDefault("types", def.Types)
	viper.SetDefault("schema_packages", def.SchemaPackages)
	viper.SetDefault("configuration_packages", def.ConfigurationPackages)
	viper.SetDefault("workers", def.Workers)
	viper.SetDefault("output", def.Output)
}

// Load reads and validates the configuration.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, the search paths are tried and defaults are
// used when none has a config.yaml.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case path != "" && errors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrapf(errors.Mark(err, errors.ErrNotFound), "config file not found at %s", path)
		case path != "":
			return nil, errors.Wrapf(err, "reading config file %s", path)
		case errors.As(err, &notFound):
			// Implicit load without a file uses defaults.
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Mark(errors.Join(errs...), errors.ErrInvalidConfig), "validating config")
	}

	return &cfg, nil
}

// UsedFile returns the config file Viper read, or "" when defaults are used.
func UsedFile() string {
	return viper.ConfigFileUsed()
}

// AppContexts returns the configured contexts.
func (c *Config) AppContexts() []configuration.Context {
	out := make([]configuration.Context, 0, len(c.Contexts))
	for _, s := range c.Contexts {
		out = append(out, configuration.Context(s))
	}
	return out
}

// ConfigTypes returns the configured types.
func (c *Config) ConfigTypes() []configuration.Type {
	out := make([]configuration.Type, 0, len(c.Types))
	for _, s := range c.Types {
		if t, err := configuration.ParseType(s); err == nil {
			out = append(out, t)
		}
	}
	return out
}

// ResolveRoot picks the application root: override (the --root flag) if
// set, then the configured root, then the nearest directory above the
// working directory that has a Configuration/ directory.
func (c *Config) ResolveRoot(override string) (string, error) {
	for _, candidate := range []string{override, c.Root} {
		if candidate == "" {
			continue
		}
		expanded, err := paths.ExpandHome(candidate)
		if err != nil {
			return "", errors.Wrapf(err, "resolving root %s", candidate)
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return "", errors.Wrapf(err, "resolving root %s", candidate)
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			return "", errors.Wrapf(errors.ErrNotFound, "application root %s", abs)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "getting working directory")
	}
	return paths.FindRoot(wd)
}

// ConfigurationPath returns the global configuration directory under root.
func (c *Config) ConfigurationPath(root string) string {
	return underRoot(root, c.ConfigurationDir)
}

// PackagesPath returns the packages directory under root.
func (c *Config) PackagesPath(root string) string {
	return underRoot(root, c.PackagesDir)
}

func underRoot(root, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}
