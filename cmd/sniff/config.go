package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golift.io/sniff"
	"golift.io/sniff/staged"
)

const envPrefix = "SNIFF"

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// ErrBadFormat is returned for an output format other than text, json or yaml.
var ErrBadFormat = errors.New("unknown output format")

// config is the merged result of flags, SNIFF_* environment variables and sniff.yaml.
type config struct {
	Peek          bool    `mapstructure:"peek"`
	Language      bool    `mapstructure:"language"`
	Debug         bool    `mapstructure:"debug"`
	Format        string  `mapstructure:"format"`
	MaxDiffSize   int     `mapstructure:"max_diff_size"`
	MinConfidence float64 `mapstructure:"min_confidence"`
	Placeholder   string  `mapstructure:"placeholder"`
}

// loadConfig reads the config file, if any, into v and decodes it.
// An explicit path must exist; the default search locations may be empty.
func loadConfig(v *viper.Viper, path string) (*config, error) {
	v.SetDefault("format", formatText)
	v.SetDefault("max_diff_size", staged.DefaultMaxDiffSize)
	v.SetDefault("min_confidence", staged.DefaultMinConfidence)
	v.SetDefault("placeholder", sniff.BinaryPlaceholder)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sniff")
		v.AddConfigPath(".")
		v.AddConfigPath(".sniff")

		if home, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "sniff"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	switch cfg.Format {
	case formatText, formatJSON, formatYAML:
	default:
		return nil, fmt.Errorf("%w: %s", ErrBadFormat, cfg.Format)
	}

	return cfg, nil
}

// classifier builds the library Classifier for this config.
func (c *config) classifier() *sniff.Classifier {
	return &sniff.Classifier{
		Logger:         &logger{debug: c.Debug},
		Peek:           c.Peek,
		DetectLanguage: c.Language,
	}
}

// staged builds the staged change Config for this config.
func (c *config) staged() *staged.Config {
	return &staged.Config{
		Classifier:    c.classifier(),
		MaxDiffSize:   c.MaxDiffSize,
		MinConfidence: c.MinConfidence,
		Placeholder:   c.Placeholder,
	}
}

// logger satisfies sniff.Logger with the standard log package.
type logger struct {
	debug bool
}

func (l *logger) Printf(msg string, v ...any) {
	log.Printf(msg, v...)
}

func (l *logger) Debugf(msg string, v ...any) {
	if l.debug {
		log.Printf("[DEBUG] "+msg, v...)
	}
}
