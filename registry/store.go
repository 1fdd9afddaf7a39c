package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidName is returned for model names that cannot be used as a file name.
var ErrInvalidName = errors.New("invalid model name")

// Store manages on-disk storage for model manifests.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// ManifestsDir returns the directory where model manifests are stored.
func (s *Store) ManifestsDir() string { return filepath.Join(s.baseDir, "models", "manifests") }

// EnsureDirs creates the required directory structure if it does not exist.
func (s *Store) EnsureDirs() error {
	return os.MkdirAll(s.ManifestsDir(), 0755)
}

func (s *Store) manifestPath(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return filepath.Join(s.ManifestsDir(), name+".json"), nil
}

// SaveManifest writes a model manifest to disk as JSON.
func (s *Store) SaveManifest(m *ModelManifest) error {
	path, err := s.manifestPath(m.Name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadManifest reads a model manifest from disk by name.
func (s *Store) LoadManifest(name string) (*ModelManifest, error) {
	path, err := s.manifestPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m ModelManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "decode manifest %s", path)
	}
	return &m, nil
}

// ListManifests returns all model manifests found in the manifests directory,
// ordered by name. Unreadable manifests are skipped.
func (s *Store) ListManifests() ([]ModelManifest, error) {
	entries, err := os.ReadDir(s.ManifestsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var manifests []ModelManifest
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		m, err := s.LoadManifest(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		manifests = append(manifests, *m)
	}
	return manifests, nil
}

// DeleteManifest removes a model manifest from disk.
func (s *Store) DeleteManifest(name string) error {
	path, err := s.manifestPath(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}
