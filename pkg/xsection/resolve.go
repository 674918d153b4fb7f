package xsection

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"

	"github.com/tomlaeven/qmt/pkg/solid"
)

// DefaultTolerance is the membership tolerance for the 3D inside test,
// in the geometry's length unit.
const DefaultTolerance = 1e-5

// Resolver subtracts a fragment's immediate children and decides whether
// the remainder is solid material or a cavity, by testing a representative
// interior point against the owning part's 3D solid.
type Resolver struct {
	Frame     *Frame
	Doc       solid.Document
	Tolerance float64 // zero means DefaultTolerance
}

// Resolve subtracts the child fragments from frag as hole rings and
// reports whether the remainder is material (inside the owning solid).
// Children are immediate containments, nested strictly inside frag and
// disjoint from each other, so the boolean difference reduces to
// inserting their boundaries as holes.
func (r *Resolver) Resolve(frag Fragment, children []Fragment) (orb.Polygon, bool, error) {
	poly := make(orb.Polygon, 0, 1+len(children))
	poly = append(poly, frag.Ring.Clone())
	for _, child := range children {
		poly = append(poly, child.Ring.Clone())
	}

	pt, err := interiorPoint(poly)
	if err != nil {
		return nil, false, fmt.Errorf("fragment %q: %w", frag.Name, err)
	}

	p3 := r.Frame.Unproject(pt)
	tol := r.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	inside, err := r.Doc.IsInside(frag.Owner, [3]float64{p3.X, p3.Y, p3.Z}, tol, true)
	if err != nil {
		return nil, false, fmt.Errorf("fragment %q: inside test: %w", frag.Name, err)
	}
	return poly, inside, nil
}

// interiorPoint finds a representative point inside a polygon with holes:
// it intersects the vertical line through the horizontal bounding-box
// center with the polygon boundary and takes the midpoint of the first
// (lowest) resulting interior segment.
//
// When the slice has multiple disjoint lobes along that line only the
// first segment is considered. That matches the established extraction
// behavior but is an approximation for such shapes.
func interiorPoint(poly orb.Polygon) (orb.Point, error) {
	b := poly[0].Bound()
	cx := (b.Min[0] + b.Max[0]) / 2

	// Crossings of the line x = cx with every ring. Between consecutive
	// sorted crossings the line alternates inside/outside, starting
	// outside, so the first pair bounds the first interior segment.
	var ys []float64
	for _, ring := range poly {
		n := len(ring)
		if n > 0 && ring[0] == ring[n-1] {
			n--
		}
		for i := 0; i < n; i++ {
			p1 := ring[i]
			p2 := ring[(i+1)%n]
			if (p1[0] <= cx && p2[0] > cx) || (p2[0] <= cx && p1[0] > cx) {
				t := (cx - p1[0]) / (p2[0] - p1[0])
				ys = append(ys, p1[1]+t*(p2[1]-p1[1]))
			}
		}
	}
	if len(ys) < 2 {
		return orb.Point{}, fmt.Errorf("no interior segment on the bounding-box midline x=%g", cx)
	}
	sort.Float64s(ys)
	return orb.Point{cx, (ys[0] + ys[1]) / 2}, nil
}
