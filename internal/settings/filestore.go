package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileStore keeps preferences in a YAML file. Missing files read as empty.
type FileStore struct {
	path   string
	values map[string]string
}

// DefaultPath returns ~/.config/pf/preferences.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pf", "preferences.yaml"), nil
}

// OpenFileStore reads the preferences file at path.
func OpenFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, values: map[string]string{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}

	if err := yaml.Unmarshal(data, &fs.values); err != nil {
		return nil, fmt.Errorf("parsing preferences: %w", err)
	}
	if fs.values == nil {
		fs.values = map[string]string{}
	}
	return fs, nil
}

// Get returns the stored value for key.
func (f *FileStore) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Set stores value and rewrites the file.
func (f *FileStore) Set(key, value string) error {
	f.values[key] = value

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}

	data, err := yaml.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}
