package discover

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultOptions = Options{Pattern: ".txt", SkipHidden: true}

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("text\n"), 0644))
	}
}

func targetPaths(targets []Target) []string {
	paths := make([]string, 0, len(targets))
	for _, tg := range targets {
		paths = append(paths, tg.Path)
	}
	return paths
}

func TestExpand_Directory(t *testing.T) {
	tmpDir := t.TempDir()

	// tmpDir/
	//   a.txt
	//   b.md
	//   notes.txt.bak      (substring match)
	//   sub/
	//     c.txt
	//     deeper/d.txt
	//   .hidden/e.txt
	//   .f.txt
	//   archive.txt.d/g.md (directory name carries the pattern)
	writeTree(t, tmpDir,
		"a.txt",
		"b.md",
		"notes.txt.bak",
		"sub/c.txt",
		"sub/deeper/d.txt",
		".hidden/e.txt",
		".f.txt",
		"archive.txt.d/g.md",
	)

	result := Expand([]string{tmpDir}, defaultOptions)
	require.Empty(t, result.Failures)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "a.txt"),
		filepath.Join(tmpDir, "archive.txt.d", "g.md"),
		filepath.Join(tmpDir, "notes.txt.bak"),
		filepath.Join(tmpDir, "sub", "c.txt"),
		filepath.Join(tmpDir, "sub", "deeper", "d.txt"),
	}, targetPaths(result.Targets))

	for _, tg := range result.Targets {
		assert.Equal(t, tmpDir, tg.Root)
	}
}

func TestExpand_ExplicitFileIgnoresPattern(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "README.md", ".hidden.md")

	readme := filepath.Join(tmpDir, "README.md")
	hidden := filepath.Join(tmpDir, ".hidden.md")
	result := Expand([]string{readme, hidden}, defaultOptions)

	require.Empty(t, result.Failures)
	assert.Equal(t, []string{readme, hidden}, targetPaths(result.Targets))
}

func TestExpand_MissingPathIsRecorded(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "ok.txt")

	missing := filepath.Join(tmpDir, "nope")
	ok := filepath.Join(tmpDir, "ok.txt")
	result := Expand([]string{missing, ok}, defaultOptions)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, missing, result.Failures[0].Path)
	assert.Equal(t, "stat", result.Failures[0].Op)
	assert.ErrorIs(t, result.Failures[0].Err, os.ErrNotExist)
	assert.Equal(t, []string{ok}, targetPaths(result.Targets))
	assert.Equal(t, 0, result.Failures[0].Index)
}

func TestExpand_ShowHidden(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, ".hidden/e.txt", "a.txt")

	result := Expand([]string{tmpDir}, Options{Pattern: ".txt"})
	assert.Equal(t, []string{
		filepath.Join(tmpDir, ".hidden", "e.txt"),
		filepath.Join(tmpDir, "a.txt"),
	}, targetPaths(result.Targets))
}

func TestExpand_EmptyPatternSelectsAll(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "a.md", "b.go")

	result := Expand([]string{tmpDir}, Options{SkipHidden: true})
	assert.Len(t, result.Targets, 2)
}

func TestExpand_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "real/a.txt")
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "real", "a.txt"), filepath.Join(tmpDir, "link.txt")))
	require.NoError(t, os.Symlink(tmpDir, filepath.Join(tmpDir, "loop")))
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "gone"), filepath.Join(tmpDir, "dangling.txt")))

	result := Expand([]string{tmpDir}, defaultOptions)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "link.txt"),
		filepath.Join(tmpDir, "real", "a.txt"),
	}, targetPaths(result.Targets))
	require.Len(t, result.Failures, 1)
	assert.Equal(t, filepath.Join(tmpDir, "dangling.txt"), result.Failures[0].Path)
}

func TestExpand_UnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "locked/a.txt", "open.txt")
	locked := filepath.Join(tmpDir, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	result := Expand([]string{tmpDir}, defaultOptions)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, locked, result.Failures[0].Path)
	assert.Equal(t, "readdir", result.Failures[0].Op)
	assert.Equal(t, []string{filepath.Join(tmpDir, "open.txt")}, targetPaths(result.Targets))
}

func TestExpand_FailureIndexKeepsArgumentOrder(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "first/a.txt", "first/b.txt", "last.txt")

	first := filepath.Join(tmpDir, "first")
	missing := filepath.Join(tmpDir, "nope.txt")
	last := filepath.Join(tmpDir, "last.txt")
	result := Expand([]string{first, missing, last, missing}, defaultOptions)

	require.Len(t, result.Targets, 3)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, 2, result.Failures[0].Index)
	assert.Equal(t, 3, result.Failures[1].Index)
	assert.Equal(t, last, result.Targets[result.Failures[0].Index].Path)
}
