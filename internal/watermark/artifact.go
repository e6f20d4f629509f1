package watermark

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	imgproc "github.com/ironsheep/document-watermark-mcp/internal/imaging"
)

const (
	// MimeType is the media type of every exported artifact.
	MimeType = "image/png"

	// Filename is the suggested download name.
	Filename = "watermarked_document.png"

	handlePrefix = "artifact:"
)

// Artifact is an exported watermarked document.
type Artifact struct {
	Handle    string
	Holder    string
	MimeType  string
	Bytes     []byte
	Width     int
	Height    int
	Filename  string
	CreatedAt time.Time
}

func newArtifact(data []byte, width, height int, holder string) *Artifact {
	return &Artifact{
		Handle:    handlePrefix + uuid.NewString(),
		Holder:    holder,
		MimeType:  MimeType,
		Bytes:     data,
		Width:     width,
		Height:    height,
		Filename:  Filename,
		CreatedAt: time.Now(),
	}
}

// DataURI returns the artifact as a base64 data URI for direct display.
func (a *Artifact) DataURI() string {
	return imgproc.DataURI(a.MimeType, a.Bytes)
}

// Save writes the artifact to path. If path is an existing directory the
// suggested filename is appended. It returns the path written.
func (a *Artifact) Save(path string) (string, error) {
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		path = filepath.Join(path, a.Filename)
	}
	if err := os.WriteFile(path, a.Bytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to save artifact: %w", err)
	}
	return path, nil
}

// ArtifactStore holds artifacts until their handle is released.
//
// ArtifactStore is safe for concurrent use by multiple goroutines.
type ArtifactStore struct {
	mu    sync.RWMutex
	items map[string]*Artifact
}

// NewArtifactStore creates an empty store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{
		items: make(map[string]*Artifact),
	}
}

// Put stores a under its handle.
func (s *ArtifactStore) Put(a *Artifact) {
	s.mu.Lock()
	s.items[a.Handle] = a
	s.mu.Unlock()
}

// Get resolves handle.
func (s *ArtifactStore) Get(handle string) (*Artifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.items[handle]
	return a, ok
}

// Release drops handle and reports whether it was present. A released handle
// no longer resolves.
func (s *ArtifactStore) Release(handle string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[handle]; !ok {
		return false
	}
	delete(s.items, handle)
	return true
}

// Len returns the number of live artifacts.
func (s *ArtifactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Clear releases every artifact.
func (s *ArtifactStore) Clear() {
	s.mu.Lock()
	s.items = make(map[string]*Artifact)
	s.mu.Unlock()
}
