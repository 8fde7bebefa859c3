package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/expenses/internal/filex"
)

type writer = io.Writer

// saveDownload streams fetch into dir/name. A partial file is removed when
// fetch fails.
func saveDownload(dir, name string, fetch func(w writer) (int64, error)) (string, error) {
	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, filepath.Base(name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	_, fetchErr := fetch(f)
	closeErr := f.Close()

	if fetchErr != nil {
		_ = os.Remove(path)
		return "", fetchErr
	}
	if closeErr != nil {
		_ = os.Remove(path)
		return "", closeErr
	}
	return path, nil
}
