package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const CatalogEnv = "PAPERPULSE_CATALOG"

// EnvFiles are read in order; variables already set are never overridden.
var EnvFiles = []string{".env", ".env.local"}

type Config struct {
	CatalogPath string
	// Explicit is false when CatalogPath is the XDG default, in which case a
	// missing file means "use the embedded sample".
	Explicit bool
}

func loadEnvFiles(files []string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Load resolves the catalog path: flag value, then $PAPERPULSE_CATALOG, then
// DefaultCatalogPath.
func Load(flagPath string) (Config, error) {
	if err := loadEnvFiles(EnvFiles); err != nil {
		return Config{}, err
	}

	raw, explicit := flagPath, true
	if raw == "" {
		raw = os.Getenv(CatalogEnv)
	}
	if raw == "" {
		raw, explicit = DefaultCatalogPath(), false
	}

	path, err := ExpandPath(raw)
	if err != nil {
		return Config{}, err
	}
	return Config{CatalogPath: path, Explicit: explicit}, nil
}
