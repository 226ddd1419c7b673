package loader

import (
	"errors"
	"os"
	"path/filepath"
)

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("spl loader: file path is required")
	}
	return os.ReadFile(filepath.Clean(path))
}
