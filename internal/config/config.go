package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/pareto-cli/internal/utils"
)

// Global configuration structure.
type Global struct {
	// Analysis defaults
	Language     string `mapstructure:"language" yaml:"language" validate:"required,bcp47_language_tag"`
	StrictQuotes bool   `mapstructure:"strict_quotes" yaml:"strict_quotes"`
	MaxRows      int    `mapstructure:"max_rows" yaml:"max_rows" validate:"gte=0"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format" validate:"oneof=markdown json yaml table"`

	// Fetching
	HTTPTimeoutSec   int   `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec" validate:"gte=1"`
	MaxFetchBytes    int64 `mapstructure:"max_fetch_bytes" yaml:"max_fetch_bytes" validate:"gte=1"`
	BatchConcurrency int   `mapstructure:"batch_concurrency" yaml:"batch_concurrency" validate:"gte=1,lte=64"`

	// HTTP server
	ServerAddr string `mapstructure:"server_addr" yaml:"server_addr" validate:"required"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" validate:"oneof=text json"`

	ProjectsDir string `mapstructure:"projects_dir" yaml:"projects_dir"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"language", "strict_quotes", "max_rows", "output_format",
	"http_timeout_sec", "max_fetch_bytes", "batch_concurrency",
	"server_addr", "log_level", "log_format", "projects_dir",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report errors by config key rather than Go field name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
	})
	return v
}

// Validate reports the first invalid setting by key name.
func (c *Global) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config %s=%v (%s)", fe.Field(), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.pareto/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := homeDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("PARETO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		dir, err := homeDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.ProjectsDir == "" {
		dir, err := homeDir()
		if err != nil {
			return nil, err
		}
		c.ProjectsDir = filepath.Join(dir, "projects")
	}
	dir, err := utils.ExpandHome(c.ProjectsDir)
	if err != nil {
		return nil, err
	}
	c.ProjectsDir = dir
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Set assigns one key from its string form and validates the result. Unknown
// keys are an error.
func (c *Global) Set(key, value string) error {
	next := *c
	var err error
	switch strings.ToLower(key) {
	case "language":
		next.Language = value
	case "strict_quotes":
		next.StrictQuotes, err = strconv.ParseBool(value)
	case "max_rows":
		next.MaxRows, err = strconv.Atoi(value)
	case "output_format":
		next.OutputFormat = strings.ToLower(value)
	case "http_timeout_sec":
		next.HTTPTimeoutSec, err = strconv.Atoi(value)
	case "max_fetch_bytes":
		next.MaxFetchBytes, err = strconv.ParseInt(value, 10, 64)
	case "batch_concurrency":
		next.BatchConcurrency, err = strconv.Atoi(value)
	case "server_addr":
		next.ServerAddr = value
	case "log_level":
		next.LogLevel = strings.ToLower(value)
	case "log_format":
		next.LogFormat = strings.ToLower(value)
	case "projects_dir":
		next.ProjectsDir = value
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %q", key, value)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Get returns the string form of one key.
func (c *Global) Get(key string) (string, error) {
	switch strings.ToLower(key) {
	case "language":
		return c.Language, nil
	case "strict_quotes":
		return fmt.Sprint(c.StrictQuotes), nil
	case "max_rows":
		return fmt.Sprint(c.MaxRows), nil
	case "output_format":
		return c.OutputFormat, nil
	case "http_timeout_sec":
		return fmt.Sprint(c.HTTPTimeoutSec), nil
	case "max_fetch_bytes":
		return fmt.Sprint(c.MaxFetchBytes), nil
	case "batch_concurrency":
		return fmt.Sprint(c.BatchConcurrency), nil
	case "server_addr":
		return c.ServerAddr, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	case "projects_dir":
		return c.ProjectsDir, nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

// Default returns the built-in defaults without reading any file or env.
// ProjectsDir is left empty.
func Default() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("language", "es")
	v.SetDefault("strict_quotes", false)
	v.SetDefault("max_rows", 0)
	v.SetDefault("output_format", "markdown")
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("max_fetch_bytes", 20<<20)
	v.SetDefault("batch_concurrency", 4)
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("projects_dir", "")
}

func homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".pareto"), nil
}
