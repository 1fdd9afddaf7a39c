package registry

import "time"

// ModelManifest records a model file fetched to local disk.
type ModelManifest struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	SourceURL string    `json:"source_url"`
	Size      int64     `json:"size"`
	FetchedAt time.Time `json:"fetched_at"`
}
