package assets

import "github.com/Faultbox/xgl/internal/engine/texture"

// Cache holds decoded images by key.
type Cache struct {
	images map[string]*texture.Image

	// Stats
	hits   int
	misses int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]*texture.Image),
	}
}

// Get retrieves an image from the cache.
func (c *Cache) Get(key string) (*texture.Image, bool) {
	img, ok := c.images[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return img, ok
}

// Set stores an image in the cache.
func (c *Cache) Set(key string, img *texture.Image) {
	c.images[key] = img
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	return len(c.images)
}

// Clear empties the cache and resets the statistics.
func (c *Cache) Clear() {
	c.images = make(map[string]*texture.Image)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
