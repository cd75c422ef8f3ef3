package watermark

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic replaces path with data through a dot-prefixed temporary
// file in the same directory. renameio does not build on Windows.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"*")
	if err != nil {
		return fmt.Errorf("watermark: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("watermark: write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("watermark: close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("watermark: chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("watermark: replace %s: %w", path, err)
	}
	return nil
}
