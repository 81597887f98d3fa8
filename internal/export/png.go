// Package export writes render results to image and point cloud files.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// RGBImage wraps tightly packed RGB8 pixels, first row at the top, as an
// opaque RGBA image.
func RGBImage(pix []byte, width, height int) (*image.RGBA, error) {
	if len(pix) != width*height*3 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*3, len(pix))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := pix[y*width*3 : (y+1)*width*3]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			dst[x*4] = src[x*3]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 0xff
		}
	}
	return img, nil
}

// EncodePNG writes RGB8 pixels as a PNG.
func EncodePNG(w io.Writer, pix []byte, width, height int) error {
	img, err := RGBImage(pix, width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// WritePNG saves RGB8 pixels to path, creating the parent directory.
func WritePNG(path string, pix []byte, width, height int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	return EncodePNG(file, pix, width, height)
}
