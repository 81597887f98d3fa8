package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec2{}).Normalize() != (Vec2{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	if got := a.Sub(b).Scale(-1); got != (Vec3{3, 3, 3}) {
		t.Errorf("(a-b)*-1 = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Array(); got != [3]float32{1, 2, 3} {
		t.Errorf("Array = %v", got)
	}
}

func TestVec4Components(t *testing.T) {
	c := Vec4{0.7, 0.7, 0.7, 1}
	if c.Vec3() != (Vec3{0.7, 0.7, 0.7}) {
		t.Errorf("Vec3 = %v", c.Vec3())
	}
	if c.Array() != [4]float32{0.7, 0.7, 0.7, 1} {
		t.Errorf("Array = %v", c.Array())
	}
}
