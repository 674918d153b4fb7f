package xsection

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/tomlaeven/qmt/pkg/geometry"
)

func vecAlmostEqual(a, b geometry.Vec3) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9 && math.Abs(a.Z-b.Z) < 1e-9
}

func TestNewFrameRejectsZeroAxis(t *testing.T) {
	if _, err := NewFrame(geometry.Vec3{}, 0); err == nil {
		t.Fatal("expected error for zero axis")
	}
}

func TestFrameWorldAxes(t *testing.T) {
	tests := []struct {
		name string
		axis geometry.Vec3
		u, v geometry.Vec3
	}{
		{"x cut", geometry.Vec3{X: 1}, geometry.Vec3{Y: 1}, geometry.Vec3{Z: 1}},
		{"y cut", geometry.Vec3{Y: 1}, geometry.Vec3{X: 1}, geometry.Vec3{Z: 1}},
		{"z cut", geometry.Vec3{Z: 1}, geometry.Vec3{X: 1}, geometry.Vec3{Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFrame(tt.axis, 0)
			if err != nil {
				t.Fatalf("NewFrame failed: %v", err)
			}
			if !vecAlmostEqual(f.u, tt.u) {
				t.Errorf("u = %v, want %v", f.u, tt.u)
			}
			if !vecAlmostEqual(f.v, tt.v) {
				t.Errorf("v = %v, want %v", f.v, tt.v)
			}
		})
	}
}

func TestFrameChiralityFlip(t *testing.T) {
	// For a cut along -X the raw cross product points along -Z and gets
	// flipped, so the second in-plane axis still points along world +Z.
	f, err := NewFrame(geometry.Vec3{X: -1}, 0)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	if f.v.Z <= 0 {
		t.Fatalf("v = %v, want positive Z component", f.v)
	}
}

func TestFrameOrthonormal(t *testing.T) {
	axes := []geometry.Vec3{
		{X: 1, Y: 1, Z: 1},
		{X: 0.3, Y: -0.8, Z: 0.2},
		{X: 2, Y: 0, Z: 0},
		{X: 0, Y: 5, Z: 5},
	}
	for _, axis := range axes {
		f, err := NewFrame(axis, 3)
		if err != nil {
			t.Fatalf("NewFrame(%v) failed: %v", axis, err)
		}
		checks := []struct {
			name string
			got  float64
			want float64
		}{
			{"|axis|", f.axis.Norm(), 1},
			{"|u|", f.u.Norm(), 1},
			{"|v|", f.v.Norm(), 1},
			{"axis.u", f.axis.Dot(f.u), 0},
			{"axis.v", f.axis.Dot(f.v), 0},
			{"u.v", f.u.Dot(f.v), 0},
		}
		for _, c := range checks {
			if math.Abs(c.got-c.want) > 1e-9 {
				t.Errorf("axis %v: %s = %v, want %v", axis, c.name, c.got, c.want)
			}
		}
	}
}

func TestFrameRoundTrip(t *testing.T) {
	f, err := NewFrame(geometry.Vec3{X: 1, Y: 2, Z: 3}, 4)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}

	pts := []orb.Point{{0, 0}, {1, 0}, {-3.5, 7.25}, {100, -0.001}}
	for _, pt := range pts {
		p3 := f.Unproject(pt)
		// The unprojected point lies in the cutting plane.
		if d := p3.Dot(f.Axis()) - f.Distance(); math.Abs(d) > 1e-9 {
			t.Errorf("Unproject(%v) off plane by %g", pt, d)
		}
		back := f.Project(p3)
		if math.Abs(back[0]-pt[0]) > 1e-9 || math.Abs(back[1]-pt[1]) > 1e-9 {
			t.Errorf("round trip %v -> %v", pt, back)
		}
	}
}

func TestFrameProjectZCut(t *testing.T) {
	f, err := NewFrame(geometry.Vec3{Z: 1}, 25)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	// A z-normal cut projects to plain (x, y).
	got := f.Project(geometry.Vec3{X: 7, Y: -3, Z: 25})
	if math.Abs(got[0]-7) > 1e-9 || math.Abs(got[1]+3) > 1e-9 {
		t.Fatalf("Project = %v, want (7, -3)", got)
	}
}
