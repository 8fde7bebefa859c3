package archive

import (
	"context"
	"path/filepath"

	"github.com/dmitrijs2005/expenses/internal/filex"
)

// FileSink writes documents into a directory, created on first use.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

func (s *FileSink) Put(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", ErrEmptyName
	}

	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := filex.WriteFileAtomic(path, data, 0o640); err != nil {
		return "", err
	}
	return path, nil
}
