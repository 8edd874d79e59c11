package platform

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aretw0/slipbox/pkg/adapters/fs"
)

// ErrRootNotFound is returned by FindRoot when no marker exists above the start directory.
var ErrRootNotFound = errors.New("slip-box root not found")

// FindRoot looks upwards from startDir for the directory that holds the
// slip-box. Indicators are the system directory (e.g. .slipbox) and, as a
// fallback, a .git directory. A system directory anywhere above wins over a
// nearer .git.
func FindRoot(startDir, systemDir string) (string, error) {
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	var gitRoot string
	for dir := abs; ; {
		if hasDir(dir, systemDir) {
			return dir, nil
		}
		if gitRoot == "" && hasDir(dir, ".git") {
			gitRoot = dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if gitRoot != "" {
		return gitRoot, nil
	}
	return "", ErrRootNotFound
}

func hasDir(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && info.IsDir()
}
