package sniff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golift.io/sniff"
)

func TestExtension(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                    "",
		"README":              "",
		"notes.":              "",
		"notes.TXT":           ".txt",
		"archive.tar.gz":      ".gz",
		"/some/dir.d/file":    "",
		"/some/dir/main.go":   ".go",
		".gitignore":          ".gitignore",
		"src/.env":            ".env",
		"windows\\style.Md":   ".md",
		"deeply/nested/x.Yml": ".yml",
	}

	for input, expect := range tests {
		assert.Equal(t, expect, sniff.Extension(input), "input: %q", input)
	}
}

func TestExtensionPrior(t *testing.T) {
	t.Parallel()

	tests := map[string]sniff.Prior{
		"":        sniff.PriorUnknown,
		".qqq":    sniff.PriorUnknown,
		".md":     sniff.PriorText,
		".JSON":   sniff.PriorText,
		".png":    sniff.PriorBinary,
		".woff2":  sniff.PriorBinary,
		".swift":  sniff.PriorLikelyText,
		".bashrc": sniff.PriorLikelyText,
		".eot":    sniff.PriorLikelyBinary,
		".sqlite": sniff.PriorLikelyBinary,
		".lib":    sniff.PriorLikelyBinary,
	}

	for ext, expect := range tests {
		assert.Equal(t, expect, sniff.ExtensionPrior(ext), "extension: %q", ext)
	}

	assert.Equal(t, "likely-binary", sniff.PriorLikelyBinary.String())
	assert.Equal(t, "unknown", sniff.Prior(99).String())
}
