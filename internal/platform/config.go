package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/slipbox/pkg/adapters/fs"
)

// ConfigFileName is the name of the settings file inside the system directory.
const ConfigFileName = "config.yaml"

// Settings mirrors the keys of the slip-box settings file.
type Settings struct {
	Patterns  []string `yaml:"patterns" mapstructure:"patterns"`
	Recursive bool     `yaml:"recursive" mapstructure:"recursive"`
	Gitignore bool     `yaml:"gitignore" mapstructure:"gitignore"`
	Strict    bool     `yaml:"strict" mapstructure:"strict"`
	Format    string   `yaml:"format" mapstructure:"format"`
}

// DefaultSettings returns the settings used when no file overrides them.
func DefaultSettings() Settings {
	patterns := make([]string, len(fs.DefaultPatterns))
	copy(patterns, fs.DefaultPatterns)
	return Settings{
		Patterns: patterns,
		Format:   "pretty",
	}
}

// ConfigPath returns where the settings file of the slip-box at root lives.
func ConfigPath(root, systemDir string) string {
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}
	return filepath.Join(root, systemDir, ConfigFileName)
}

// InitConfig writes the default settings file for the slip-box at root.
// An existing file is left untouched; the returned bool reports whether a
// file was created.
func InitConfig(root, systemDir string) (string, bool, error) {
	path := ConfigPath(root, systemDir)

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !os.IsNotExist(err) {
		return "", false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	data, err := yaml.Marshal(DefaultSettings())
	if err != nil {
		return "", false, fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := fs.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", false, err
	}
	return path, true, nil
}
