package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image types handled by DecodeTGA.
const (
	tgaUncompressed = 2
	tgaRLE          = 10
)

const tgaHeaderSize = 18

// DecodeTGA decodes an uncompressed or RLE compressed true-color TGA file.
// Alpha, when present, is kept in the returned image.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != tgaUncompressed && imageType != tgaRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	d := tgaDecoder{
		img:         image.NewNRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: topToBottom,
	}

	if imageType == tgaUncompressed {
		if len(d.src) < width*height*d.bpp {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for d.pixel < width*height {
			d.put(d.read())
		}
		return d.img, nil
	}

	d.decodeRLE()
	return d.img, nil
}

// tgaDecoder walks the pixel stream in file order, placing each pixel at
// its image position. Rows are stored bottom-up unless topToBottom is set.
type tgaDecoder struct {
	img         *image.NRGBA
	src         []byte
	pos         int
	pixel       int
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func (d *tgaDecoder) canRead() bool {
	return d.pos+d.bpp <= len(d.src)
}

// read consumes one BGR(A) pixel.
func (d *tgaDecoder) read() color.NRGBA {
	p := d.src[d.pos : d.pos+d.bpp]
	d.pos += d.bpp
	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 0xff}
	if d.bpp == 4 {
		c.A = p[3]
	}
	return c
}

func (d *tgaDecoder) put(c color.NRGBA) {
	x, y := d.pixel%d.width, d.pixel/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetNRGBA(x, y, c)
	d.pixel++
}

// decodeRLE reads run-length and raw packets until the image is full or
// the data runs out. A truncated stream leaves the remaining pixels zero.
func (d *tgaDecoder) decodeRLE() {
	total := d.width * d.height
	for d.pixel < total && d.pos < len(d.src) {
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			if !d.canRead() {
				return
			}
			c := d.read()
			for i := 0; i < count && d.pixel < total; i++ {
				d.put(c)
			}
			continue
		}

		for i := 0; i < count && d.pixel < total; i++ {
			if !d.canRead() {
				return
			}
			d.put(d.read())
		}
	}
}
