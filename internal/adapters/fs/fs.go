package fs

import (
	iofs "io/fs"
	"path/filepath"
)

type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm iofs.FileMode) error
	MkdirAll(path string, perm iofs.FileMode) error
	FileExists(path string) bool
	RemoveAll(path string) error
	Walk(root string, fn filepath.WalkFunc) error
	// FS exposes the subtree at root for read-only serving.
	FS(root string) iofs.FS
}
