package api

import (
	"io"
)

// Storer abstracts the filesystem job files are read from and launch scripts
// are written to, so the CLI works the same against local disk or a mounted
// HDFS gateway.
type Storer interface {
	// OpenRead opens path for reading, starting at offset. A negative length
	// reads to the end of the file.
	OpenRead(path string, offset, length int64) (io.ReadCloser, error)

	// OpenWrite creates or truncates path, creating parent directories as
	// needed. The returned writer must be closed to persist the data.
	OpenWrite(path string) (io.WriteCloser, error)
}
