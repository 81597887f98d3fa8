// Package texture provides image decoding, RGB8 packing and 2D texture upload.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // BMP decoder registration

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/logger"
)

// Image is a tightly packed RGB8 image with the first row at the top.
type Image struct {
	Width, Height int
	Pix           []byte
}

// Decode reads a PNG, JPEG or BMP image and converts it to RGB8.
func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return FromImage(img), nil
}

// DecodeBytes decodes data, using name's extension to recognise TGA files,
// which carry no signature.
func DecodeBytes(data []byte, name string) (*Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, err
		}
		return FromImage(img), nil
	}
	return Decode(bytes.NewReader(data))
}

// LoadFile reads and decodes an image file. With flipV the rows are
// reversed so the first row is the bottom one, as OpenGL expects.
func LoadFile(path string, flipV bool) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading texture %s: %v: %w", path, err, errs.ErrAssetImport)
	}

	img, err := DecodeBytes(data, path)
	if err != nil {
		return nil, fmt.Errorf("loading texture %s: %v: %w", path, err, errs.ErrAssetImport)
	}

	if flipV {
		FlipV(img.Pix, img.Width, img.Height, 3)
	}

	logger.Named("texture").Debug("texture loaded",
		zap.String("path", path),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
	)
	return img, nil
}

// FromImage converts any image to RGB8, dropping alpha.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Rect, src, b.Min, draw.Src)
	}

	w, h := b.Dx(), b.Dy()
	out := &Image{Width: w, Height: h, Pix: make([]byte, w*h*3)}
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride:]
		for x := 0; x < w; x++ {
			copy(out.Pix[(y*w+x)*3:(y*w+x)*3+3], row[x*4:x*4+3])
		}
	}
	return out
}

// ToRGBA expands an RGB8 image to an opaque image.RGBA.
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for i := 0; i < img.Width*img.Height; i++ {
		copy(rgba.Pix[i*4:i*4+3], img.Pix[i*3:i*3+3])
		rgba.Pix[i*4+3] = 0xff
	}
	return rgba
}

// FlipV reverses the row order of an interleaved image in place.
func FlipV[T byte | float32](pix []T, width, height, channels int) {
	line := width * channels
	tmp := make([]T, line)
	for y := 0; y < height/2; y++ {
		top := pix[y*line : (y+1)*line]
		bottom := pix[(height-y-1)*line : (height-y)*line]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// Upload creates a 2D RGB8 texture holding img with REPEAT wrapping.
// Without mipmaps the min filter is LINEAR so the texture stays complete.
func Upload(dev gpu.Device, img *Image, mipmap bool) (uint32, error) {
	if img.Width < 1 || img.Height < 1 || len(img.Pix) < img.Width*img.Height*3 {
		return 0, fmt.Errorf("uploading %dx%d texture with %d bytes: %w",
			img.Width, img.Height, len(img.Pix), errs.ErrInvalidParameter)
	}

	id := dev.GenTexture()
	if id == 0 {
		return 0, fmt.Errorf("generating texture: %w", errs.ErrResourceCreation)
	}

	dev.BindTexture(gpu.Texture2D, id)
	WriteRGB8(dev, int32(img.Width), int32(img.Height), img.Pix, mipmap)
	dev.BindTexture(gpu.Texture2D, 0)

	logger.Named("texture").Debug("texture uploaded",
		zap.Uint32("id", id),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
	)
	return id, nil
}

// WriteRGB8 replaces the storage of the bound 2D texture with RGB8 pixels
// and sets its sampling parameters.
func WriteRGB8(dev gpu.Device, width, height int32, pix []byte, mipmap bool) {
	dev.PixelStore(gpu.UnpackAlignment, 1)
	dev.TexImage2D(gpu.Texture2D, gpu.RGB8, width, height, gpu.RGB, gpu.UnsignedByte, pix)

	minFilter := gpu.Linear
	if mipmap {
		dev.GenerateMipmap(gpu.Texture2D)
		minFilter = gpu.LinearMipmapLinear
	}
	dev.TexParameter(gpu.Texture2D, gpu.TextureWrapS, gpu.Repeat)
	dev.TexParameter(gpu.Texture2D, gpu.TextureWrapT, gpu.Repeat)
	dev.TexParameter(gpu.Texture2D, gpu.TextureMinFilter, minFilter)
	dev.TexParameter(gpu.Texture2D, gpu.TextureMagFilter, gpu.Linear)
}
