package staged

import (
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/utils/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// unifiedDiff renders a line diff of oldText against newText. Every line carries
// a "+", "-" or " " prefix; there are no hunk headers.
func unifiedDiff(filePath string, code git.StatusCode, oldText, newText string) string {
	from, to := "a/"+filePath, "b/"+filePath

	switch code { //nolint:exhaustive
	case git.Added:
		from = "/dev/null"
	case git.Deleted:
		to = "/dev/null"
	}

	var out strings.Builder

	fmt.Fprintf(&out, "--- %s\n+++ %s\n", from, to)

	for _, chunk := range diff.Do(oldText, newText) {
		prefix := " "

		switch chunk.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffEqual:
		}

		for _, line := range strings.SplitAfter(chunk.Text, "\n") {
			if line == "" {
				continue
			}

			out.WriteString(prefix)
			out.WriteString(line)

			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}

	return out.String()
}

// IsBinaryDiff decides whether a textual diff produced elsewhere should be hidden
// behind the placeholder. Git's own binary markers and the size limit are checked
// before the classifier. filePath supplies the extension. Returns the reason.
func IsBinaryDiff(diffText, filePath string, config *Config) (bool, string) {
	cfg := config.withDefaults()

	switch {
	case diffText == "":
		return false, "empty diff"
	case strings.Contains(diffText, "Binary files"),
		strings.Contains(diffText, "GIT binary patch"),
		strings.Contains(diffText, "differ") && strings.Contains(diffText, "Binary"):
		return true, "git marked the diff as binary"
	case len(diffText) > cfg.MaxDiffSize:
		return true, fmt.Sprintf("diff larger than %d bytes", cfg.MaxDiffSize)
	}

	result := cfg.Classifier.Classify([]byte(diffText), path.Base(filePath), "")
	if result.IsBinary && result.Confidence > cfg.MinConfidence {
		return true, result.Reason
	}

	return false, result.Reason
}
