package index

import (
	"fmt"
	"os"
	"path/filepath"

	"vaultindex/internal/fileutil"
)

// Encode renders the index as the JSON document served to the site.
func Encode(idx Index) ([]byte, error) {
	data, err := fileutil.MarshalJSON(idx)
	if err != nil {
		return nil, fmt.Errorf("encode index: %w", err)
	}
	return data, nil
}

// Write encodes idx and atomically replaces the file at path, creating
// its directory first.
func Write(path string, idx Index) error {
	data, err := Encode(idx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}
