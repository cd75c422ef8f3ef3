//go:build !windows

package watermark

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomic replaces path with data, so path holds either its old
// content or all of data. The pending file lives next to path under a
// dot-prefixed name, which directory watchers skip.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := renameio.NewPendingFile(path, renameio.WithPermissions(perm), renameio.IgnoreUmask())
	if err != nil {
		return fmt.Errorf("watermark: create temp file: %w", err)
	}
	defer func() { _ = f.Cleanup() }()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("watermark: write temp file: %w", err)
	}
	if err := f.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("watermark: replace %s: %w", path, err)
	}
	return nil
}
