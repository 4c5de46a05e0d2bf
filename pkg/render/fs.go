package render

import (
	"io/fs"
	"os"
)

// FS is the filesystem seam for the rendering engine. The production
// implementation is the OS; tests may substitute their own.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error
}

// osFS implements FS against the real filesystem.
type osFS struct{}

// NewOSFilesystem returns the production FS implementation.
func NewOSFilesystem() FS {
	return osFS{}
}

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (osFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }

func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (osFS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }

func (osFS) Chmod(name string, mode fs.FileMode) error { return os.Chmod(name, mode) }
