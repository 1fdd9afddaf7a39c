package fetch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultURL is the FaceNet TFLite model published with the FaceRecognition-Flutter app.
	DefaultURL = "https://github.com/kby-ai/FaceRecognition-Flutter/raw/main/assets/facenet.tflite"
	// DefaultPath is where the model is saved, relative to the working directory.
	DefaultPath = "assets/models/facenet.tflite"
	// DefaultFallbackURL is the page users can download the model from by hand.
	DefaultFallbackURL = "https://github.com/kby-ai/FaceRecognition-Flutter/tree/main/assets"
)

// Target is a single (URL, local path) pair to download.
type Target struct {
	Name        string
	URL         string
	Path        string
	FallbackURL string
}

// ModelName returns Name, or the file name without its extension when Name is empty.
func (t Target) ModelName() string {
	if t.Name != "" {
		return t.Name
	}
	base := filepath.Base(t.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Validate checks that both the URL and the path are set.
func (t Target) Validate() error {
	if t.URL == "" {
		return errors.New("download URL is empty")
	}
	if t.Path == "" {
		return errors.New("destination path is empty")
	}
	return nil
}

// EnsureDir creates the parent directory of path. It is a no-op when the
// directory already exists.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "create folder ["+dir+"] failed")
	}
	return nil
}
