package imaging

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/disintegration/imaging"
)

// Cache provides thread-safe caching of decoded images keyed by file
// path, so the server mode can run several tools against the same sheet
// without re-reading it from disk.
//
// Cached images stay in memory until Evict or Clear is called. The CLI
// pipeline loads each image exactly once and does not need a cache.
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewCache creates an empty image cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{images: make(map[string]image.Image)}
}

// Load returns the image at path, decoding it from disk on the first
// call and serving the cached copy afterwards. PNG, JPEG, GIF, TIFF, and
// BMP inputs are supported.
func (c *Cache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
	return img, nil
}

// Evict removes one cached image. Unknown paths are ignored.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear drops every cached image.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// LoadImage decodes the image file at path. A missing or corrupt input
// image is the caller's fatal input error; no recovery is attempted.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading input image %s: %w", path, err)
	}
	return img, nil
}

// SaveImage encodes img to path, picking the format from the file
// extension.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("writing image %s: %w", path, err)
	}
	return nil
}

// Dimensions returns the pixel width and height of the image file at
// path without keeping the decoded image around.
func Dimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening image %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding image header %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
