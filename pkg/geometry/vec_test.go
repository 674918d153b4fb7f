package geometry

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 5, Z: 6}

	if got := a.Add(b); got != (Vec3{X: 5, Y: 7, Z: 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{X: 3, Y: 3, Z: 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	z := x.Cross(y)
	if z != (Vec3{Z: 1}) {
		t.Fatalf("x cross y = %v, want (0, 0, 1)", z)
	}
	// Anticommutative.
	if got := y.Cross(x); got != (Vec3{Z: -1}) {
		t.Fatalf("y cross x = %v, want (0, 0, -1)", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{X: 3, Y: 4}
	n := v.Normalize()
	if !almostEqual(n.Norm(), 1) {
		t.Fatalf("normalized norm = %v, want 1", n.Norm())
	}
	if !almostEqual(n.X, 0.6) || !almostEqual(n.Y, 0.8) {
		t.Fatalf("normalized = %v", n)
	}

	// Zero vector stays zero.
	zero := Vec3{}
	if got := zero.Normalize(); got != zero {
		t.Fatalf("normalized zero = %v, want zero", got)
	}
}
