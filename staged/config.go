package staged

import (
	"errors"

	"golift.io/sniff"
)

// Defaults used when a Config field is left empty.
const (
	// DefaultMaxDiffSize is the largest diff, in bytes, embedded as text.
	// Anything larger is likely minified or generated and is treated as binary.
	DefaultMaxDiffSize = 100000
	// DefaultMinConfidence is the confidence a binary verdict must exceed to hide a diff.
	DefaultMinConfidence = 0.5
)

// ErrNoRepository is returned when no git repository is found at or above a path.
var ErrNoRepository = errors.New("no git repository found")

// Config is the input data to configure staged change collection.
// The zero value is usable; empty fields get defaults.
type Config struct {
	// Classifier decides text or binary. Nil uses a zero sniff.Classifier.
	Classifier *sniff.Classifier
	// MaxDiffSize in bytes. Larger diffs are replaced by the placeholder.
	MaxDiffSize int
	// MinConfidence a binary verdict must exceed before content is hidden.
	MinConfidence float64
	// Placeholder is embedded instead of binary content. Default: sniff.BinaryPlaceholder.
	Placeholder string
}

// withDefaults returns a copy of the config with empty values filled in.
func (c *Config) withDefaults() *Config {
	cfg := Config{}
	if c != nil {
		cfg = *c
	}

	if cfg.Classifier == nil {
		cfg.Classifier = &sniff.Classifier{}
	}

	if cfg.MaxDiffSize <= 0 {
		cfg.MaxDiffSize = DefaultMaxDiffSize
	}

	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = DefaultMinConfidence
	}

	if cfg.Placeholder == "" {
		cfg.Placeholder = sniff.BinaryPlaceholder
	}

	return &cfg
}
