package watermark

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNewArtifact(t *testing.T) {
	a := newArtifact([]byte{1, 2, 3}, 10, 20, "John")

	if !strings.HasPrefix(a.Handle, "artifact:") {
		t.Errorf("Handle: got %q, want artifact: prefix", a.Handle)
	}
	if a.MimeType != "image/png" {
		t.Errorf("MimeType: got %q", a.MimeType)
	}
	if a.Filename != "watermarked_document.png" {
		t.Errorf("Filename: got %q", a.Filename)
	}
	if a.Holder != "John" {
		t.Errorf("Holder: got %q", a.Holder)
	}
	if a.Width != 10 || a.Height != 20 {
		t.Errorf("dimensions: got %dx%d", a.Width, a.Height)
	}
	if got := a.DataURI(); got != "data:image/png;base64,AQID" {
		t.Errorf("DataURI: got %q", got)
	}
}

func TestArtifact_HandlesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		h := newArtifact(nil, 1, 1, "").Handle
		if seen[h] {
			t.Fatalf("duplicate handle %s", h)
		}
		seen[h] = true
	}
}

func TestArtifact_Save(t *testing.T) {
	dir := t.TempDir()
	a := newArtifact([]byte("png bytes"), 1, 1, "")

	path, err := a.Save(dir)
	if err != nil {
		t.Fatalf("Save to dir failed: %v", err)
	}
	if path != filepath.Join(dir, Filename) {
		t.Errorf("path: got %s, want suggested filename in dir", path)
	}

	explicit := filepath.Join(dir, "custom.png")
	path, err = a.Save(explicit)
	if err != nil {
		t.Fatalf("Save to file failed: %v", err)
	}
	if path != explicit {
		t.Errorf("path: got %s, want %s", path, explicit)
	}

	data, err := os.ReadFile(explicit)
	if err != nil || string(data) != "png bytes" {
		t.Errorf("saved content: got %q, %v", data, err)
	}

	if _, err := a.Save(filepath.Join(dir, "missing", "x.png")); err == nil {
		t.Error("expected error for missing parent directory")
	}
}

func TestArtifactStore(t *testing.T) {
	store := NewArtifactStore()
	a := newArtifact([]byte{1}, 1, 1, "")
	store.Put(a)

	got, ok := store.Get(a.Handle)
	if !ok || got != a {
		t.Fatalf("Get: got %v, %v", got, ok)
	}
	if store.Len() != 1 {
		t.Errorf("Len: got %d, want 1", store.Len())
	}

	if !store.Release(a.Handle) {
		t.Error("Release should report a live handle")
	}
	if _, ok := store.Get(a.Handle); ok {
		t.Error("released handle still resolves")
	}
	if store.Release(a.Handle) {
		t.Error("second Release should report false")
	}

	store.Put(newArtifact(nil, 1, 1, ""))
	store.Put(newArtifact(nil, 1, 1, ""))
	store.Clear()
	if store.Len() != 0 {
		t.Errorf("Len after Clear: got %d", store.Len())
	}
}

func TestArtifactStore_Concurrent(t *testing.T) {
	store := NewArtifactStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := newArtifact(nil, 1, 1, "")
			store.Put(a)
			if _, ok := store.Get(a.Handle); !ok {
				t.Errorf("handle %s not found", a.Handle)
			}
		}()
	}
	wg.Wait()

	if store.Len() != 20 {
		t.Errorf("Len: got %d, want 20", store.Len())
	}
}
