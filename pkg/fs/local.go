package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local is an api.Storer backed by the local filesystem.
type Local struct{}

func NewLocalStorage() *Local {
	return &Local{}
}

func (l *Local) OpenRead(path string, offset, length int64) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if offset == 0 && length < 0 {
		return f, nil
	}

	if length < 0 {
		stat, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, err
		}
		length = max(stat.Size()-offset, 0)
	}

	return &sectionReadCloser{
		Reader: io.NewSectionReader(f, offset, length),
		Closer: f,
	}, nil
}

func (l *Local) OpenWrite(path string) (io.WriteCloser, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("fs: failed to create directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return nil, err
	}

	return f, nil
}

type sectionReadCloser struct {
	io.Reader
	io.Closer
}
