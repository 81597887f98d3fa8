package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRGBImage(t *testing.T) {
	pix := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 10, 20, 30,
	}
	img, err := RGBImage(pix, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b, a := img.At(1, 1).RGBA(); r>>8 != 10 || g>>8 != 20 || b>>8 != 30 || a>>8 != 255 {
		t.Errorf("pixel (1,1): %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r>>8 != 255 {
		t.Error("first row should be the top row")
	}

	if _, err := RGBImage(pix[:5], 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "render.png")
	pix := bytes.Repeat([]byte{1, 2, 3}, 6)
	if err := WritePNG(path, pix, 3, 2); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds: %v", b)
	}
}

func TestEncodePLY(t *testing.T) {
	xyz := []float32{
		0.5, -0.5, 1, 9,
		0, 0, 0, 9, // no depth
		1.5, -1.5, 2, 9,
	}
	var buf bytes.Buffer
	n, err := EncodePLY(&buf, xyz, 4)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("points: got %d, want 2", n)
	}

	out := buf.String()
	if !strings.Contains(out, "element vertex 2\n") {
		t.Errorf("header missing vertex count:\n%s", out)
	}
	body := out[strings.Index(out, "end_header\n")+len("end_header\n"):]
	if body != "0.5 -0.5 1\n1.5 -1.5 2\n" {
		t.Errorf("body:\n%s", body)
	}
}

func TestEncodePLYBadStride(t *testing.T) {
	if _, err := EncodePLY(&bytes.Buffer{}, []float32{1, 2, 3}, 2); err == nil {
		t.Error("expected stride error")
	}
}
