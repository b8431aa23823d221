package sniff

/* Code to read and find files for classification. */

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ClassifyFile classifies the file at path by reading at most its first 8KiB.
func ClassifyFile(path string) (*Result, error) {
	return (&Classifier{}).ClassifyFile(path)
}

// ClassifyFile classifies the file at path. When Peek is enabled the whole file is
// read, because archives such as zip keep their index at the end. Otherwise only
// the first 8KiB is read.
func (c *Classifier) ClassifyFile(path string) (*Result, error) {
	return c.ClassifyFileMime(path, "")
}

// ClassifyFileMime is ClassifyFile with a declared MIME type, e.g. from an upload.
func (c *Classifier) ClassifyFileMime(path, mimeType string) (*Result, error) {
	if c == nil {
		c = &Classifier{}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file for classification: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file for classification: %w", err)
	}

	if !stat.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	readSize := min(stat.Size(), int64(deepWindow))
	if c.Peek {
		readSize = stat.Size()
	}

	buf := make([]byte, readSize)

	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading file for classification: %w", err)
	}

	return c.Classify(buf[:n], path, mimeType), nil
}

// FindFiles returns every regular file under path, sorted. Names starting with a
// dot are skipped, files and folders alike, so .git is never walked.
// If path is a file it is returned by itself.
func FindFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	files := []string{}

	err = filepath.WalkDir(path, func(walked string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		switch name := entry.Name(); {
		case walked == path:
			return nil
		case strings.HasPrefix(name, ".") && entry.IsDir():
			return filepath.SkipDir
		case strings.HasPrefix(name, "."), !entry.Type().IsRegular():
			return nil
		default:
			files = append(files, walked)
			return nil
		}
	})
	if err != nil {
		return files, fmt.Errorf("walking %s: %w", path, err)
	}

	sort.Strings(files)

	return files, nil
}
