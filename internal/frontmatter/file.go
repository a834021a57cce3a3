package frontmatter

import (
	"fmt"
	"os"

	"vaultindex/internal/fileutil"
)

// WriteState rewrites the state key of the document at path. The file is
// replaced atomically and keeps its permission bits. It reports whether the
// file content changed.
func WriteState(path, state string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read document: %w", err)
	}
	updated, err := SetState(string(data), state)
	if err != nil {
		return false, err
	}
	if updated == string(data) {
		return false, nil
	}
	if err := fileutil.WriteFileAtomic(path, []byte(updated), fileutil.FileMode(path, 0o644)); err != nil {
		return false, fmt.Errorf("write document: %w", err)
	}
	return true, nil
}
