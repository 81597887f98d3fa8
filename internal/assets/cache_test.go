package assets

import (
	"testing"

	"github.com/Faultbox/xgl/internal/engine/texture"
)

func TestCache(t *testing.T) {
	c := NewCache()
	img := &texture.Image{Width: 1, Height: 1, Pix: []byte{1, 2, 3}}

	if _, ok := c.Get("a"); ok {
		t.Fatal("empty cache returned a value")
	}
	c.Set("a", img)
	if got, ok := c.Get("a"); !ok || got != img {
		t.Fatal("cached image not returned")
	}
	if hits, misses := c.Stats(); hits != 1 || misses != 1 {
		t.Errorf("stats = %d/%d, want 1/1", hits, misses)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Error("Clear left entries")
	}
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Error("Clear should reset stats")
	}
}
