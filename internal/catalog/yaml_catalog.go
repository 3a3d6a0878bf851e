package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported catalog file version")

type catalogFile struct {
	Version int    `yaml:"version"`
	Books   []Book `yaml:"books"`
}

func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if file.Version != fileVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, file.Version)
	}
	return New(file.Books)
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %q: %w", path, err)
	}
	return c, nil
}

func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(catalogFile{
		Version: fileVersion,
		Books:   c.books,
	})
}

// Write stores the catalog at path, replacing any existing file atomically.
func (c *Catalog) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}
