package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// ErrDecode is returned when a source cannot be opened or decoded.
var ErrDecode = errors.New("failed to decode source image")

// Decode reads a PNG, JPEG or GIF image from r. JPEG images are rotated
// according to their EXIF orientation tag.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if b := img.Bounds(); b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	return img, nil
}

// DecodeConfig reads only the header of the image in r and returns its
// stored dimensions. No pixel data is allocated.
func DecodeConfig(r io.Reader) (image.Config, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width < 1 || cfg.Height < 1 {
		return image.Config{}, fmt.Errorf("%w: empty image", ErrDecode)
	}
	return cfg, nil
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %v", ErrDecode, err)
	}
	defer f.Close()

	return Decode(f)
}

// DecodeDataURI decodes a base64 data URI such as "data:image/png;base64,iVBOR...".
func DecodeDataURI(uri string) (image.Image, error) {
	data, err := ParseDataURI(uri)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data))
}

// ParseDataURI returns the payload of a base64 data URI.
func ParseDataURI(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data URI", ErrDecode)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: data URI has no payload", ErrDecode)
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: only base64 data URIs are supported", ErrDecode)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64 payload: %v", ErrDecode, err)
	}
	return data, nil
}

// DataURI encodes data as a base64 data URI of the given MIME type.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// SourceCache provides thread-safe caching of decoded source images keyed by path.
//
// A layout preview followed by a watermark run on the same file decodes it
// only once. Entries stay until Evict or Clear is called.
type SourceCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewSourceCache creates an empty cache.
func NewSourceCache() *SourceCache {
	return &SourceCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the cached image for path, decoding it on first use.
//
// The exact path string is the key; a relative and an absolute path to the same
// file are cached separately.
func (c *SourceCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Evict drops path from the cache.
func (c *SourceCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear drops every cached image.
func (c *SourceCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *SourceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// SourceInfo describes a source file.
type SourceInfo struct {
	// Width is the oriented image width in pixels.
	Width int `json:"width"`

	// Height is the oriented image height in pixels.
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif" or "unknown", detected from the file extension.
	Format string `json:"format"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadSourceInfo loads path through cache and describes it.
func LoadSourceInfo(cache *SourceCache, path string) (*SourceInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		switch f {
		case imaging.PNG:
			format = "png"
		case imaging.JPEG:
			format = "jpeg"
		case imaging.GIF:
			format = "gif"
		}
	}

	b := img.Bounds()
	return &SourceInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
