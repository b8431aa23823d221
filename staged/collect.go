package staged

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"golift.io/sniff"
)

// File is one staged change.
type File struct {
	// Path is relative to the repository root, slash separated.
	Path string `json:"path" yaml:"path"`
	// Status is the staging status code: Added, Modified, Deleted, Renamed or Copied.
	Status git.StatusCode `json:"status" yaml:"status"`
	// Diff is a line diff of HEAD against the index, or the placeholder for binary files.
	Diff string `json:"diff" yaml:"diff"`
	// IsBinary is true when Diff holds the placeholder instead of content.
	IsBinary bool `json:"isBinary" yaml:"isBinary"`
	// Result is the classifier's verdict for the staged content (HEAD content for deletions).
	Result *sniff.Result `json:"result" yaml:"result"`
	// Reason explains why the file was hidden, when IsBinary is true.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// IsDeleted reports whether the file is staged for removal.
func (f *File) IsDeleted() bool {
	return f.Status == git.Deleted
}

// Open finds the repository containing path, searching parent directories.
func Open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%w: %s", ErrNoRepository, path)
	} else if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	return repo, nil
}

// isStaged reports staging codes that describe a change in the index.
func isStaged(code git.StatusCode) bool {
	switch code {
	case git.Added, git.Modified, git.Deleted, git.Renamed, git.Copied:
		return true
	default:
		return false
	}
}

// Collect returns every staged change in repo, sorted by path.
func Collect(repo *git.Repository, config *Config) ([]*File, error) {
	cfg := config.withDefaults()

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}

	paths := []string{}

	for path, fileStatus := range status {
		if isStaged(fileStatus.Staging) {
			paths = append(paths, path)
		}
	}

	sort.Strings(paths)

	head, err := headTree(repo)
	if err != nil {
		return nil, err
	}

	files := make([]*File, 0, len(paths))

	for _, path := range paths {
		file, err := collectFile(repo, head, path, status[path].Staging, cfg)
		if err != nil {
			return files, err
		}

		files = append(files, file)
	}

	return files, nil
}

// collectFile classifies one staged path and builds its diff.
func collectFile(repo *git.Repository, head *object.Tree, path string, code git.StatusCode, cfg *Config) (*File, error) {
	file := &File{Path: path, Status: code}

	oldData, oldSize, err := readTreeFile(head, path, cfg.MaxDiffSize)
	if err != nil {
		return nil, err
	}

	var newData []byte

	newSize := int64(0)

	if code != git.Deleted {
		if newData, newSize, err = readIndexFile(repo, path, cfg.MaxDiffSize); err != nil {
			return nil, err
		}
	}

	content := newData
	if code == git.Deleted {
		content = oldData
	}

	file.Result = cfg.Classifier.Classify(content, path, "")

	switch {
	case file.Result.IsBinary && file.Result.Confidence > cfg.MinConfidence:
		file.hide(cfg, file.Result.Reason)
	case oldSize > int64(cfg.MaxDiffSize) || newSize > int64(cfg.MaxDiffSize):
		file.hide(cfg, fmt.Sprintf("content larger than %d bytes", cfg.MaxDiffSize))
	default:
		file.Diff = unifiedDiff(path, code, string(oldData), string(newData))
		if len(file.Diff) > cfg.MaxDiffSize {
			file.hide(cfg, fmt.Sprintf("diff larger than %d bytes", cfg.MaxDiffSize))
		}
	}

	return file, nil
}

func (f *File) hide(cfg *Config, reason string) {
	f.IsBinary = true
	f.Diff = cfg.Placeholder
	f.Reason = reason
}

// headTree returns the tree of the HEAD commit, or nil before the first commit.
func headTree(repo *git.Repository) (*object.Tree, error) {
	ref, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil //nolint:nilnil // no commits yet; everything staged is an addition.
	} else if err != nil {
		return nil, fmt.Errorf("reading HEAD: %w", err)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("reading HEAD commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading HEAD tree: %w", err)
	}

	return tree, nil
}

// readTreeFile returns the content of path in tree, or nothing if it is not there.
func readTreeFile(tree *object.Tree, path string, limit int) ([]byte, int64, error) {
	if tree == nil {
		return nil, 0, nil
	}

	file, err := tree.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, 0, nil
	} else if err != nil {
		return nil, 0, fmt.Errorf("reading %s from HEAD: %w", path, err)
	}

	reader, err := file.Reader()
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s from HEAD: %w", path, err)
	}
	defer reader.Close()

	data, err := readLimited(reader, file.Size, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s from HEAD: %w", path, err)
	}

	return data, file.Size, nil
}

// readIndexFile returns the staged content of path.
func readIndexFile(repo *git.Repository, path string, limit int) ([]byte, int64, error) {
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, 0, fmt.Errorf("reading index: %w", err)
	}

	entry, err := idx.Entry(path)
	if err != nil {
		return nil, 0, fmt.Errorf("finding %s in index: %w", path, err)
	}

	blob, err := repo.BlobObject(entry.Hash)
	if err != nil {
		return nil, 0, fmt.Errorf("reading staged blob for %s: %w", path, err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, 0, fmt.Errorf("opening staged blob for %s: %w", path, err)
	}
	defer reader.Close()

	data, err := readLimited(reader, blob.Size, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("reading staged blob for %s: %w", path, err)
	}

	return data, blob.Size, nil
}

// readLimited reads a blob whole when it fits in limit. Larger blobs are never
// diffed, so only enough for classification is read.
func readLimited(reader io.Reader, size int64, limit int) ([]byte, error) {
	const classifyWindow = 8192

	if size > int64(limit) {
		reader = io.LimitReader(reader, classifyWindow)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading blob: %w", err)
	}

	return data, nil
}
