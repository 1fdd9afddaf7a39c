package registry

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// ModelManager provides high-level operations over fetched model records.
type ModelManager struct {
	store *Store
	now   func() time.Time
}

// NewModelManager creates a ModelManager and ensures the storage directories exist.
func NewModelManager(baseDir string) (*ModelManager, error) {
	store := NewStore(baseDir)
	if err := store.EnsureDirs(); err != nil {
		return nil, errors.Wrap(err, "create registry folders")
	}
	return &ModelManager{store: store, now: time.Now}, nil
}

// DefaultBaseDir returns the default base directory (~/.modelfetch).
func DefaultBaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "locate home directory")
	}
	return filepath.Join(home, ".modelfetch"), nil
}

// RecordFetch registers a downloaded file under name, replacing any earlier record.
func (m *ModelManager) RecordFetch(name, path, sourceURL string) (*ModelManifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrap(err, "model file not found")
	}
	manifest := &ModelManifest{
		Name:      name,
		Path:      abs,
		SourceURL: sourceURL,
		Size:      info.Size(),
		FetchedAt: m.now(),
	}
	if err := m.store.SaveManifest(manifest); err != nil {
		return nil, errors.Wrapf(err, "save manifest for %s", name)
	}
	return manifest, nil
}

// GetModel retrieves a model manifest by name.
func (m *ModelManager) GetModel(name string) (*ModelManifest, error) {
	return m.store.LoadManifest(name)
}

// ListModels returns all recorded model manifests.
func (m *ModelManager) ListModels() ([]ModelManifest, error) {
	return m.store.ListManifests()
}

// RemoveModel deletes a model's manifest. With purge set the downloaded file is
// deleted too; a file that is already gone is not an error.
func (m *ModelManager) RemoveModel(name string, purge bool) error {
	manifest, err := m.store.LoadManifest(name)
	if err != nil {
		return err
	}
	if purge {
		if err := os.Remove(manifest.Path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "remove %s", manifest.Path)
		}
	}
	return m.store.DeleteManifest(name)
}
