package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ironsheep/seam-mcp/internal/seam"
)

// ErrTooLarge is returned when an image has more pixels than the cache allows.
var ErrTooLarge = errors.New("imaging: image exceeds pixel limit")

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// Carving is destructive on a private grid, never on the cached image, so one
// cached decode can feed any number of carve, energy or overlay requests.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). MaxPixels bounds the size of any single image; zero disables the
// check.
type ImageCache struct {
	mu        sync.RWMutex
	images    map[string]image.Image
	maxPixels int
}

// NewImageCache creates an empty cache. maxPixels limits the width×height of
// images Load accepts; 0 means unlimited.
func NewImageCache(maxPixels int) *ImageCache {
	return &ImageCache{
		images:    make(map[string]image.Image),
		maxPixels: maxPixels,
	}
}

// Load returns the decoded image at path, reading it from disk on first use.
// Supported formats are PNG, JPEG, and GIF.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	if c.maxPixels > 0 && b.Dx()*b.Dy() > c.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d has more than %d pixels", ErrTooLarge, b.Dx(), b.Dy(), c.maxPixels)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadGrid loads path and converts it to a fresh seam.Grid owned by the caller.
func (c *ImageCache) LoadGrid(path string) (*seam.Grid, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	return seam.GridFromImage(img)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes the image cached under path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif", or "unknown", by file extension.
	Format string `json:"format"`

	// HasAlpha is true when the source has an alpha channel. Carving drops it.
	HasAlpha bool `json:"has_alpha"`

	// MaxVerticalSeams is how many vertical seams can be removed (width-1).
	MaxVerticalSeams int `json:"max_vertical_seams"`

	// MaxHorizontalSeams is how many horizontal seams can be removed (height-1).
	MaxHorizontalSeams int `json:"max_horizontal_seams"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		hasAlpha = true
	}

	b := img.Bounds()
	return &ImageInfo{
		Width:              b.Dx(),
		Height:             b.Dy(),
		Format:             format,
		HasAlpha:           hasAlpha,
		MaxVerticalSeams:   b.Dx() - 1,
		MaxHorizontalSeams: b.Dy() - 1,
		FileSizeBytes:      stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of the image at path.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &DimensionsResult{Width: b.Dx(), Height: b.Dy()}, nil
}
