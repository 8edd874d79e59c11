package fs

import (
	"fmt"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// GitignoreFile is read from the source root when Config.Gitignore is set.
const GitignoreFile = ".gitignore"

// loadIgnore compiles the root .gitignore. It returns nil when the option is
// off or the file does not exist.
func (s *Source) loadIgnore() (*ignore.GitIgnore, error) {
	if !s.config.Gitignore {
		return nil, nil
	}

	p := filepath.Join(s.Path, GitignoreFile)
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return nil, nil
	}

	gi, err := ignore.CompileIgnoreFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return gi, nil
}

func ignored(gi *ignore.GitIgnore, rel string) bool {
	return gi != nil && gi.MatchesPath(rel)
}
