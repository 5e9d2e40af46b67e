// Package config reads and writes the cvpg configuration file.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "cvpg.yaml"

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	ErrEmptyPath       = errors.New("configuration file path is empty")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidFormat   = errors.New("invalid log format")
	ErrInvalidJobs     = errors.New("jobs must be positive")
	ErrInvalidMaxAge   = errors.New("log max age must not be negative")
)

// Application configures logging.
type Application struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	// LogDir enables a rotating log file in that directory when set.
	LogDir    string        `yaml:"log_dir"`
	LogMaxAge time.Duration `yaml:"log_max_age"`
}

// Run holds the defaults of the run command.
type Run struct {
	Jobs      int    `yaml:"jobs"`
	OutputDir string `yaml:"output_dir"`
	GraphFile string `yaml:"graph_file"`
}

type Config struct {
	Application Application `yaml:"application"`
	Run         Run         `yaml:"run"`
}

func Default() *Config {
	return &Config{
		Application: Application{
			LogLevel:  logrus.InfoLevel.String(),
			LogFormat: FormatText,
			LogMaxAge: 7 * 24 * time.Hour,
		},
		Run: Run{
			Jobs:      4,
			OutputDir: "out",
		},
	}
}

// Validate checks the values that cannot be used as is.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Application.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalidLogLevel, "%q", c.Application.LogLevel)
	}
	switch c.Application.LogFormat {
	case FormatText, FormatJSON:
	default:
		return errors.Wrapf(ErrInvalidFormat, "%q", c.Application.LogFormat)
	}
	if c.Application.LogMaxAge < 0 {
		return errors.Wrapf(ErrInvalidMaxAge, "%s", c.Application.LogMaxAge)
	}
	if c.Run.Jobs <= 0 {
		return errors.Wrapf(ErrInvalidJobs, "%d", c.Run.Jobs)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.Application.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Load reads the configuration at path. Missing keys keep their default
// value. When the file does not exist, it is created with the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	cfg := Default()
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "unable to read %s", path)
		}
		err = Save(path, cfg)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	err = yaml.Unmarshal(content, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse %s", path)
	}
	err = cfg.Validate()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid configuration %s", path)
	}

	return cfg, nil
}

// Save writes cfg to path, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return ErrEmptyPath
	}
	err := cfg.Validate()
	if err != nil {
		return err
	}

	content, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "unable to encode configuration")
	}
	if dir := filepath.Dir(path); dir != "." {
		err = os.MkdirAll(dir, 0o755)
		if err != nil {
			return errors.Wrapf(err, "unable to create %s", dir)
		}
	}
	err = os.WriteFile(path, content, 0o644)
	if err != nil {
		return errors.Wrapf(err, "unable to write %s", path)
	}
	return nil
}
