package config

import (
	"os"
)

// FileSystem is the slice of file system access the config and thread
// loaders need. Tests substitute MockFileSystem.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
	UserHomeDir() (string, error)
	IsNotExist(err error) bool
}

// RealFileSystem implements FileSystem using the os package.
type RealFileSystem struct{}

// ReadFile reads the named file and returns the contents.
func (r *RealFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) // #nosec G304 -- paths come from the invoking user's own flags and thread files.
}

// WriteFile creates or truncates the named file with mode 0644.
func (r *RealFileSystem) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0o644) // #nosec G306 -- config files are not secret.
}

// UserHomeDir returns the current user's home directory.
func (r *RealFileSystem) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

// IsNotExist reports whether err means the file does not exist.
func (r *RealFileSystem) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}
