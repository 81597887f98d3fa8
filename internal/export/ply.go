package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// EncodePLY writes the points of xyz, stride floats apart, as an ASCII PLY
// vertex list. Points with z <= 0 carry no depth and are skipped. It
// returns the number of points written.
func EncodePLY(w io.Writer, xyz []float32, stride int) (int, error) {
	if stride < 3 {
		return 0, fmt.Errorf("point stride %d < 3", stride)
	}

	var points [][3]float32
	for i := 0; i+3 <= len(xyz); i += stride {
		if xyz[i+2] <= 0 {
			continue
		}
		points = append(points, [3]float32{xyz[i], xyz[i+1], xyz[i+2]})
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ply\nformat ascii 1.0\nelement vertex %d\n", len(points))
	fmt.Fprint(bw, "property float x\nproperty float y\nproperty float z\nend_header\n")
	for _, p := range points {
		fmt.Fprintf(bw, "%g %g %g\n", p[0], p[1], p[2])
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("writing PLY: %w", err)
	}
	return len(points), nil
}

// WritePLY saves a point cloud to path.
func WritePLY(path string, xyz []float32, stride int) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	n, err := EncodePLY(file, xyz, stride)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing %s: %w", path, cerr)
	}
	return n, err
}
