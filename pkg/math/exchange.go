package math

// Hosts exchange dense matrices row-major: element (r, c) at index
// r*cols+c. These helpers translate between that layout and the
// column-major types above.

// Mat4FromRows builds a matrix from 16 row-major floats.
func Mat4FromRows(rows [16]float32) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[c*4+r] = rows[r*4+c]
		}
	}
	return m
}

// Rows returns the matrix as 16 row-major floats.
func (m Mat4) Rows() [16]float32 {
	var rows [16]float32
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			rows[r*4+c] = m[c*4+r]
		}
	}
	return rows
}

// Mat3FromRows builds a matrix from 9 row-major floats.
func Mat3FromRows(rows [9]float32) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[c*3+r] = rows[r*3+c]
		}
	}
	return m
}

// Rows returns the matrix as 9 row-major floats.
func (m Mat3) Rows() [9]float32 {
	var rows [9]float32
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			rows[r*3+c] = m[c*3+r]
		}
	}
	return rows
}
