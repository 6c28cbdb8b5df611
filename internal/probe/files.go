package probe

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileReadBytes is the maximum number of bytes read from a pseudo-file (1 MB).
const MaxFileReadBytes int64 = 1024 * 1024

// validatePath checks that a file path is absolute and free of traversal.
func validatePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path must not be empty")
	}

	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("path must be absolute, got %q", path)
	}

	cleaned := filepath.Clean(path)
	for _, part := range strings.Split(cleaned, string(filepath.Separator)) {
		if part == ".." {
			return "", fmt.Errorf("path traversal (..) not allowed in %q", path)
		}
	}

	return cleaned, nil
}

// readFileLimited reads a regular file with a bounded read. Files under /proc
// report a size of zero, so the limit is enforced while reading.
//
// Uses open-then-fstat to avoid TOCTOU races between stat and open.
func readFileLimited(path string) ([]byte, error) {
	cleaned, err := validatePath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cleaned)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot open file %q: %w", cleaned, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot stat file %q: %w", cleaned, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("refusing to read non-regular file %q (mode: %s)", cleaned, info.Mode().Type())
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileReadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", cleaned, err)
	}

	if int64(len(data)) > MaxFileReadBytes {
		return nil, fmt.Errorf("file %q exceeded size limit during read", cleaned)
	}

	return data, nil
}
