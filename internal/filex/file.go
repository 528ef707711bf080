package filex

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// EnsureParentDir creates the directory that will hold the SQLite database at
// dsn and returns it. In-memory and "file:" URI DSNs are left alone and give
// an empty result.
func EnsureParentDir(fsys afero.Fs, dsn string) (string, error) {
	if dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return "", nil
	}

	dir := filepath.Dir(dsn)
	if dir == "." {
		return dir, nil
	}

	if err := fsys.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
