package xsection

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/tomlaeven/qmt/pkg/geometry"
)

// Frame is an orthonormal 2D coordinate frame embedded in 3D, spanning
// the cutting plane at a signed distance along the cut axis. A Frame is
// stateless after construction and reusable for any number of points.
//
// The in-plane axes are aligned to the world axes as far as possible:
// the seed for the first in-plane axis is world Y when the cut axis is
// closest to world X, and world X otherwise, so that
//
//	axis (1,0,0) -> plane axes (0,1,0), (0,0,1)
//	axis (0,1,0) -> plane axes (1,0,0), (0,0,1)
//	axis (0,0,1) -> plane axes (1,0,0), (0,1,0)
type Frame struct {
	axis     geometry.Vec3 // unit cutting-plane normal
	u        geometry.Vec3 // first in-plane axis
	v        geometry.Vec3 // second in-plane axis
	distance float64
}

// NewFrame builds the frame for a cutting plane with the given normal and
// signed distance from the origin. The axis need not be unit length but
// must be nonzero.
func NewFrame(axis geometry.Vec3, distance float64) (*Frame, error) {
	if axis.Norm() == 0 {
		return nil, fmt.Errorf("xsection: cut axis must be nonzero")
	}
	x := axis.Normalize()

	// Seed the first in-plane axis from a fixed world axis that is not the
	// one x is most aligned with. Ties resolve in x, y, z order.
	seed := geometry.Vec3{Y: 1}
	if largestComponent(x) != 0 {
		seed = geometry.Vec3{X: 1}
	}

	u := seed.Sub(x.Scale(seed.Dot(x))).Normalize()
	v := x.Cross(u)
	// Flip so the second in-plane axis points along world +Z where
	// possible. This keeps chirality deterministic across cuts.
	if v.Z < 0 {
		v = v.Scale(-1)
	}
	return &Frame{axis: x, u: u, v: v, distance: distance}, nil
}

// largestComponent returns the index (0,1,2) of the component of v with
// the largest magnitude; the lowest index wins ties.
func largestComponent(v geometry.Vec3) int {
	abs := func(f float64) float64 {
		if f < 0 {
			return -f
		}
		return f
	}
	ind := 0
	best := abs(v.X)
	if abs(v.Y) > best {
		ind, best = 1, abs(v.Y)
	}
	if abs(v.Z) > best {
		ind = 2
	}
	return ind
}

// Axis returns the unit cutting-plane normal.
func (f *Frame) Axis() geometry.Vec3 { return f.axis }

// Distance returns the signed distance of the plane from the origin.
func (f *Frame) Distance() float64 { return f.distance }

// Project maps a 3D point to plane coordinates.
func (f *Frame) Project(p geometry.Vec3) orb.Point {
	rel := p.Sub(f.axis.Scale(f.distance))
	return orb.Point{rel.Dot(f.u), rel.Dot(f.v)}
}

// Unproject maps plane coordinates back to the 3D point in the cutting
// plane. For any point p in the plane, Unproject(Project(p)) == p up to
// floating tolerance.
func (f *Frame) Unproject(pt orb.Point) geometry.Vec3 {
	return f.axis.Scale(f.distance).
		Add(f.u.Scale(pt[0])).
		Add(f.v.Scale(pt[1]))
}
