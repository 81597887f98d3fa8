package math

// Mat3 is a 3x3 matrix in column-major order, used for camera intrinsics.
type Mat3 [9]float32

// Mat3Identity returns an identity matrix.
func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// At returns the element at row, col.
func (m Mat3) At(row, col int) float32 {
	return m[col*3+row]
}

// Set writes the element at row, col.
func (m *Mat3) Set(row, col int, v float32) {
	m[col*3+row] = v
}
