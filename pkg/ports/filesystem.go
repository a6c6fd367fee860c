package ports

import "io"

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// Open opens a file for streaming reads.
	Open(path string) (io.ReadCloser, error)

	// WriteFile writes data to a file, creating parent directories as needed.
	// Implementations must publish the file atomically: a reader sees either
	// the previous content or the complete new content.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	// ListFiles returns the names of the regular files directly inside dir,
	// sorted by name.
	ListFiles(dir string) ([]string, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error
}
