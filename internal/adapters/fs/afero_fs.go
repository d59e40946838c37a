package fs

import (
	iofs "io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

type AferoFileSystem struct {
	fs afero.Fs
	// layer is set for dry runs; removals never reach the base filesystem.
	layer afero.Fs
}

func NewAferoFileSystem(fs afero.Fs) *AferoFileSystem {
	return &AferoFileSystem{fs: fs}
}

func NewOSFileSystem() *AferoFileSystem {
	return NewAferoFileSystem(afero.NewOsFs())
}

// NewMemFileSystem returns an empty in-memory filesystem.
func NewMemFileSystem() *AferoFileSystem {
	return NewAferoFileSystem(afero.NewMemMapFs())
}

// NewDryRunFileSystem reads through to the OS but keeps every write in memory.
func NewDryRunFileSystem() *AferoFileSystem {
	base := afero.NewReadOnlyFs(afero.NewOsFs())
	layer := afero.NewMemMapFs()
	return &AferoFileSystem{fs: afero.NewCopyOnWriteFs(base, layer), layer: layer}
}

func (a *AferoFileSystem) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, path)
}

func (a *AferoFileSystem) WriteFile(path string, data []byte, perm iofs.FileMode) error {
	return afero.WriteFile(a.fs, path, data, perm)
}

func (a *AferoFileSystem) MkdirAll(path string, perm iofs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *AferoFileSystem) FileExists(path string) bool {
	ok, err := afero.Exists(a.fs, path)
	return err == nil && ok
}

func (a *AferoFileSystem) RemoveAll(path string) error {
	if a.layer != nil {
		return a.layer.RemoveAll(path)
	}
	return a.fs.RemoveAll(path)
}

func (a *AferoFileSystem) Walk(root string, fn filepath.WalkFunc) error {
	return afero.Walk(a.fs, root, fn)
}

func (a *AferoFileSystem) FS(root string) iofs.FS {
	return afero.NewIOFS(afero.NewBasePathFs(a.fs, root))
}
