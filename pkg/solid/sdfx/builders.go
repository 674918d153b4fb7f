package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Builders for the solid shapes device assemblies are made of. These are
// conveniences for tests, examples and the CLI; any sdf.SDF3 can go into
// a Library.

// Box creates a rectangular solid with its minimum corner at the origin,
// so stacking layers by translation works intuitively.
func Box(x, y, z float64) (sdf.SDF3, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: box: %w", err)
	}
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return sdf.Transform3D(s, m), nil
}

// Cylinder creates a cylinder of the given height and radius, centered at
// the origin with its axis along Z.
func Cylinder(height, radius float64) (sdf.SDF3, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: cylinder: %w", err)
	}
	return s, nil
}

// Extrude sweeps a closed 2D profile from z0 to z0+thickness. The profile
// is an open vertex list in plane coordinates.
func Extrude(profile [][2]float64, z0, thickness float64) (sdf.SDF3, error) {
	if len(profile) < 3 {
		return nil, fmt.Errorf("sdfx: extrude: profile has %d vertices, need at least 3", len(profile))
	}
	if thickness <= 0 {
		return nil, fmt.Errorf("sdfx: extrude: thickness must be positive, got %g", thickness)
	}
	verts := make([]v2.Vec, len(profile))
	for i, p := range profile {
		verts[i] = v2.Vec{X: p[0], Y: p[1]}
	}
	poly, err := sdf.Polygon2D(verts)
	if err != nil {
		return nil, fmt.Errorf("sdfx: extrude: %w", err)
	}
	s := sdf.Extrude3D(poly, thickness)
	// Extrude3D spans -thickness/2..thickness/2; shift so the base sits at z0.
	m := sdf.Translate3d(v3.Vec{Z: z0 + thickness/2})
	return sdf.Transform3D(s, m), nil
}

// Translate moves a solid by (x, y, z).
func Translate(s sdf.SDF3, x, y, z float64) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

// Union returns the union of solids.
func Union(a, b sdf.SDF3) sdf.SDF3 {
	return sdf.Union3D(a, b)
}

// Difference returns a minus b. A part with an embedded cavity (a gate
// inside a semiconductor block, say) is modeled this way.
func Difference(a, b sdf.SDF3) sdf.SDF3 {
	return sdf.Difference3D(a, b)
}

// Intersection returns the intersection of two solids.
func Intersection(a, b sdf.SDF3) sdf.SDF3 {
	return sdf.Intersect3D(a, b)
}
