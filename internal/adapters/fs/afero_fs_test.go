package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemFileSystemRoundTrip(t *testing.T) {
	fsys := NewMemFileSystem()

	require.NoError(t, fsys.MkdirAll("out/product/t1", 0o755))
	require.NoError(t, fsys.WriteFile("out/product/t1/index.html", []byte("<html>t1</html>"), 0o644))

	assert.True(t, fsys.FileExists("out/product/t1/index.html"))
	assert.False(t, fsys.FileExists("out/product/t2/index.html"))

	data, err := fsys.ReadFile("out/product/t1/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>t1</html>", string(data))

	served, err := iofs.ReadFile(fsys.FS("out"), "product/t1/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>t1</html>", string(served))

	var files []string
	require.NoError(t, fsys.Walk("out", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, filepath.ToSlash(path))
		}
		return nil
	}))
	assert.Equal(t, []string{"out/product/t1/index.html"}, files)

	require.NoError(t, fsys.RemoveAll("out/product"))
	assert.False(t, fsys.FileExists("out/product/t1/index.html"))
}

func TestDryRunFileSystemDoesNotTouchDisk(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "favicon.ico")
	require.NoError(t, os.WriteFile(existing, []byte("icon"), 0o644))

	fsys := NewDryRunFileSystem()

	data, err := fsys.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "icon", string(data))

	target := filepath.Join(dir, "out", "index.html")
	require.NoError(t, fsys.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, fsys.WriteFile(target, []byte("page"), 0o644))
	assert.True(t, fsys.FileExists(target))

	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err), "dry run wrote to disk")
}

func TestDryRunRemoveAllKeepsDiskFiles(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "out", "product", "old", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	fsys := NewDryRunFileSystem()
	require.NoError(t, fsys.RemoveAll(filepath.Join(dir, "out", "product")))

	_, err := os.Stat(stale)
	assert.NoError(t, err)
}
