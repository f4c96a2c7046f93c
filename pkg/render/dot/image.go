package dot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/critpathlabs/critpath/pkg/errors"
)

const (
	filenamePrefix = "CriticalPathGraph"
)

// SaveImage writes rendered image bytes into dir under a collision-free
// name: CriticalPathGraph-<uuid>.<ext>. Returns the full path of the
// written file.
//
// The directory must already exist; a fresh UUID per call means repeated
// runs never overwrite earlier renders.
func SaveImage(dir string, data []byte, ext string) (string, error) {
	if err := errors.ValidateOutputDir(dir); err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.ErrCodeInvalidPath, "output directory %s does not exist", dir)
		}
		return "", fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", errors.New(errors.ErrCodeInvalidPath, "output path %s is not a directory", dir)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.%s", filenamePrefix, uuid.New(), ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
