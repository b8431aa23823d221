package staged_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golift.io/sniff/staged"
)

var png = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 'I', 'H', 'D', 'R'}

type testRepo struct {
	repo     *git.Repository
	fs       billy.Filesystem
	worktree *git.Worktree
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	fs := memfs.New()

	repo, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err)

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	return &testRepo{repo: repo, fs: fs, worktree: worktree}
}

func (r *testRepo) stage(t *testing.T, name string, data []byte) {
	t.Helper()

	require.NoError(t, util.WriteFile(r.fs, name, data, 0o644))

	_, err := r.worktree.Add(name)
	require.NoError(t, err)
}

func (r *testRepo) commit(t *testing.T) {
	t.Helper()

	_, err := r.worktree.Commit("commit", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Unix(1700000000, 0)},
	})
	require.NoError(t, err)
}

func byPath(files []*staged.File) map[string]*staged.File {
	out := map[string]*staged.File{}
	for _, file := range files {
		out[file.Path] = file
	}

	return out
}

func TestCollect(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	repo.stage(t, "keep.txt", []byte("hello\n"))
	repo.stage(t, "old.md", []byte("bye\n"))
	repo.stage(t, "untouched.txt", []byte("same\n"))
	repo.commit(t)

	repo.stage(t, "keep.txt", []byte("hello world\n"))
	repo.stage(t, "new.go", []byte("package main\n"))
	repo.stage(t, "image.png", png)
	repo.stage(t, "big.txt", []byte(strings.Repeat("a line of text\n", 20)))

	_, err := repo.worktree.Remove("old.md")
	require.NoError(t, err)

	// Unstaged changes are ignored.
	require.NoError(t, util.WriteFile(repo.fs, "untouched.txt", []byte("changed\n"), 0o644))

	files, err := staged.Collect(repo.repo, &staged.Config{MaxDiffSize: 200})
	require.NoError(t, err)

	paths := []string{}
	for _, file := range files {
		paths = append(paths, file.Path)
	}

	assert.Equal(t, []string{"big.txt", "image.png", "keep.txt", "new.go", "old.md"}, paths)

	found := byPath(files)

	assert.Equal(t, git.Modified, found["keep.txt"].Status)
	assert.False(t, found["keep.txt"].IsBinary)
	assert.Equal(t, "--- a/keep.txt\n+++ b/keep.txt\n-hello\n+hello world\n", found["keep.txt"].Diff)
	assert.Equal(t, "modified", found["keep.txt"].Action())

	assert.Equal(t, "--- /dev/null\n+++ b/new.go\n+package main\n", found["new.go"].Diff)
	assert.Equal(t, "added", found["new.go"].Action())

	assert.True(t, found["old.md"].IsDeleted())
	assert.Equal(t, "--- a/old.md\n+++ /dev/null\n-bye\n", found["old.md"].Diff)
	assert.True(t, found["old.md"].Result.IsText, "deleted files are classified from HEAD")

	assert.True(t, found["image.png"].IsBinary)
	assert.Equal(t, "Binary file", found["image.png"].Diff)
	assert.Equal(t, "image/png", found["image.png"].Result.MimeType)
	assert.Contains(t, found["image.png"].Reason, "PNG")

	assert.True(t, found["big.txt"].IsBinary, "larger than MaxDiffSize")
	assert.True(t, found["big.txt"].Result.IsText)
	assert.Contains(t, found["big.txt"].Reason, "larger than 200 bytes")
}

func TestCollectWithoutCommits(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	repo.stage(t, "first.txt", []byte("first\n"))

	files, err := staged.Collect(repo.repo, nil)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, git.Added, files[0].Status)
	assert.Equal(t, "--- /dev/null\n+++ b/first.txt\n+first\n", files[0].Diff)
}

func TestCollectPlaceholder(t *testing.T) {
	t.Parallel()

	repo := newTestRepo(t)
	repo.stage(t, "logo.png", png)

	files, err := staged.Collect(repo.repo, &staged.Config{Placeholder: "[binary omitted]"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "[binary omitted]", files[0].Diff)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No staged files found", staged.Format(nil))

	repo := newTestRepo(t)
	repo.stage(t, "gone.txt", []byte("bye\n"))
	repo.commit(t)
	repo.stage(t, "logo.png", png)
	repo.stage(t, "notes.md", []byte("# Notes\n"))

	_, err := repo.worktree.Remove("gone.txt")
	require.NoError(t, err)

	files, err := staged.Collect(repo.repo, nil)
	require.NoError(t, err)

	output := staged.Format(files)
	assert.Equal(t, "# Files Add:\n\n"+
		"## logo.png\n\n**Binary file added**\n\n"+
		"## notes.md\n\n### Description Change\n\n```diff\n--- /dev/null\n+++ b/notes.md\n+# Notes\n```\n\n"+
		"# Files Remove:\n\n"+
		"## gone.txt\n\n### Description Change\n\n```diff\n--- a/gone.txt\n+++ /dev/null\n-bye\n```\n\n", output)
	assert.NotContains(t, output, "# Files Edit:")
}

func TestIsBinaryDiff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		diff     string
		path     string
		config   *staged.Config
		isBinary bool
	}{
		{"empty", "", "a.txt", nil, false},
		{"git marker", "Binary files a/logo.png and b/logo.png differ", "logo.png", nil, true},
		{"binary patch", "diff --git a/x b/x\nGIT binary patch\nliteral 12\n", "x", nil, true},
		{"text diff", "--- a/keep.txt\n+++ b/keep.txt\n-hello\n+hello world\n", "keep.txt", nil, false},
		{"too large", strings.Repeat("+line\n", 50), "keep.txt", &staged.Config{MaxDiffSize: 100}, true},
		{"control bytes", strings.Repeat("\x01\x02\x03\x04\x05", 50), "data", nil, true},
		{"null bytes", "+abc\x00def\n", "a.txt", nil, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			isBinary, reason := staged.IsBinaryDiff(test.diff, test.path, test.config)
			assert.Equal(t, test.isBinary, isBinary, reason)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := staged.Open(dir)
	require.ErrorIs(t, err, staged.ErrNoRepository)

	_, err = git.PlainInit(dir, false)
	require.NoError(t, err)

	sub := filepath.Join(dir, "sub", "dir")
	require.NoError(t, os.MkdirAll(sub, 0o700))

	repo, err := staged.Open(sub)
	require.NoError(t, err)

	files, err := staged.Collect(repo, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Equal(t, "No staged files found", staged.Format(files))
}
