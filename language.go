package sniff

import (
	"path/filepath"

	"github.com/go-enry/go-enry/v2"
)

// detectLanguage names the programming or markup language of a text sample.
// Without a filename only modelines and shebangs can identify it.
// Returns "" when the language is unknown.
func detectLanguage(filename string, sample []byte) string {
	if filename != "" {
		filename = filepath.Base(filename)
	}

	return enry.GetLanguage(filename, sample)
}
