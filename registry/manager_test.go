package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*ModelManager, string) {
	t.Helper()
	base := filepath.Join(t.TempDir(), "registry")
	mgr, err := NewModelManager(base)
	require.NoError(t, err)
	mgr.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return mgr, base
}

func TestDefaultBaseDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := DefaultBaseDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".modelfetch"), dir)

	t.Setenv("HOME", "")
	_, err = DefaultBaseDir()
	assert.Error(t, err)
}

func writeModel(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facenet.tflite")
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	return path
}

func TestModelManager_RecordAndGet(t *testing.T) {
	mgr, base := newTestManager(t)
	path := writeModel(t, 2048)

	m, err := mgr.RecordFetch("facenet", path, "https://example.com/facenet.tflite")
	require.NoError(t, err)
	assert.Equal(t, int64(2048), m.Size)
	assert.True(t, filepath.IsAbs(m.Path))

	assert.FileExists(t, filepath.Join(base, "models", "manifests", "facenet.json"))

	got, err := mgr.GetModel("facenet")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/facenet.tflite", got.SourceURL)
	assert.Equal(t, m.Path, got.Path)
	assert.True(t, got.FetchedAt.Equal(m.FetchedAt))
}

func TestModelManager_RecordReplaces(t *testing.T) {
	mgr, _ := newTestManager(t)
	path := writeModel(t, 10)

	_, err := mgr.RecordFetch("facenet", path, "https://a.example/m")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, make([]byte, 20), 0644))
	_, err = mgr.RecordFetch("facenet", path, "https://b.example/m")
	require.NoError(t, err)

	models, err := mgr.ListModels()
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, int64(20), models[0].Size)
	assert.Equal(t, "https://b.example/m", models[0].SourceURL)
}

func TestModelManager_RecordMissingFile(t *testing.T) {
	mgr, _ := newTestManager(t)
	_, err := mgr.RecordFetch("ghost", filepath.Join(t.TempDir(), "nope.bin"), "")
	assert.Error(t, err)
}

func TestModelManager_ListOrderedAndSkipsJunk(t *testing.T) {
	mgr, base := newTestManager(t)
	path := writeModel(t, 1)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := mgr.RecordFetch(name, path, "")
		require.NoError(t, err)
	}
	dir := filepath.Join(base, "models", "manifests")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	models, err := mgr.ListModels()
	require.NoError(t, err)
	require.Len(t, models, 3)
	assert.Equal(t, "alpha", models[0].Name)
	assert.Equal(t, "mid", models[1].Name)
	assert.Equal(t, "zeta", models[2].Name)
}

func TestModelManager_RemoveModel(t *testing.T) {
	mgr, _ := newTestManager(t)
	path := writeModel(t, 5)

	_, err := mgr.RecordFetch("keep-file", path, "")
	require.NoError(t, err)
	require.NoError(t, mgr.RemoveModel("keep-file", false))
	assert.FileExists(t, path)

	_, err = mgr.GetModel("keep-file")
	assert.True(t, os.IsNotExist(err))

	_, err = mgr.RecordFetch("purge", path, "")
	require.NoError(t, err)
	require.NoError(t, mgr.RemoveModel("purge", true))
	assert.NoFileExists(t, path)

	assert.Error(t, mgr.RemoveModel("purge", true))
}

func TestStore_RejectsPathNames(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.EnsureDirs())

	for _, name := range []string{"", "..", "../escape", `a\b`} {
		err := store.SaveManifest(&ModelManifest{Name: name})
		assert.Equal(t, ErrInvalidName, errors.Cause(err), name)
	}
}
