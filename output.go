package watermark

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// outputPath returns the absolute path a result for src is written to.
func outputPath(src string, f Format, policy OutputPolicy, newName func() string) (string, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", fmt.Errorf("watermark: resolve path: %w", err)
	}

	dir := filepath.Dir(abs)
	name := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	if name == "" {
		// ".hidden" keeps its full name.
		name = filepath.Base(abs)
	}
	if policy == NewFile {
		name = newName()
	}
	return filepath.Join(dir, name+"."+f.Extension()), nil
}

// sourcePerm returns the permission bits of path, or 0o644 when it cannot
// be read.
func sourcePerm(path string) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return 0o644
	}
	return info.Mode().Perm()
}

// removeOriginal deletes src after a ReplaceOriginal write landed on a
// different file. Paths that differ only in case on a case-insensitive
// filesystem name the same file and are left alone. A missing source is
// not an error.
func removeOriginal(src, dst string) error {
	abs, err := filepath.Abs(src)
	if err != nil || abs == dst {
		return err
	}
	srcInfo, err := os.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return nil
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
