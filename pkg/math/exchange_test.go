package math

import "testing"

func TestMat4RowsRoundTrip(t *testing.T) {
	rows := [16]float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}

	m := Mat4FromRows(rows)
	if m.At(0, 1) != 2 || m.At(1, 0) != 5 || m.At(2, 3) != 12 {
		t.Errorf("Mat4FromRows placed elements wrong: %v", m)
	}
	if m.Rows() != rows {
		t.Errorf("Rows() = %v, want %v", m.Rows(), rows)
	}
}

func TestMat4FromRowsTranslation(t *testing.T) {
	// A host pose with translation in the last column of each row
	rows := [16]float32{
		1, 0, 0, 4,
		0, 1, 0, 5,
		0, 0, 1, 6,
		0, 0, 0, 1,
	}
	if got := Mat4FromRows(rows); got != Translate(4, 5, 6) {
		t.Errorf("got %v, want Translate(4, 5, 6)", got)
	}
}

func TestMat3RowsRoundTrip(t *testing.T) {
	rows := [9]float32{
		1000, 0, 500,
		0, 1000, 500,
		0, 0, 1,
	}

	m := Mat3FromRows(rows)
	if m.At(0, 2) != 500 || m.At(1, 1) != 1000 || m.At(2, 2) != 1 {
		t.Errorf("Mat3FromRows placed elements wrong: %v", m)
	}
	if m.Rows() != rows {
		t.Errorf("Rows() = %v, want %v", m.Rows(), rows)
	}

	m.Set(0, 1, 3)
	if m.Rows()[1] != 3 {
		t.Errorf("Set(0, 1) should write row 0 column 1")
	}
	if Mat3Identity().At(1, 1) != 1 {
		t.Error("identity diagonal should be 1")
	}
}
