package staged

import (
	"strings"

	"github.com/go-git/go-git/v5"
)

// Action describes the change in words: added, modified or deleted.
// Renames and copies count as modifications.
func (f *File) Action() string {
	switch f.Status { //nolint:exhaustive
	case git.Added:
		return "added"
	case git.Deleted:
		return "deleted"
	default:
		return "modified"
	}
}

// Format renders staged files as markdown grouped by action. Binary files get a
// one line note; text files get their diff in a fenced block.
func Format(files []*File) string {
	if len(files) == 0 {
		return "No staged files found"
	}

	groups := []struct {
		title  string
		action string
	}{
		{title: "Files Add", action: "added"},
		{title: "Files Edit", action: "modified"},
		{title: "Files Remove", action: "deleted"},
	}

	var out strings.Builder

	for _, group := range groups {
		var matched []*File

		for _, file := range files {
			if file.Action() == group.action {
				matched = append(matched, file)
			}
		}

		if len(matched) == 0 {
			continue
		}

		out.WriteString("# " + group.title + ":\n\n")

		for _, file := range matched {
			out.WriteString("## " + file.Path + "\n\n")

			if file.IsBinary {
				out.WriteString("**Binary file " + group.action + "**\n\n")
				continue
			}

			out.WriteString("### Description Change\n\n```diff\n")
			out.WriteString(strings.TrimSuffix(file.Diff, "\n"))
			out.WriteString("\n```\n\n")
		}
	}

	return out.String()
}
