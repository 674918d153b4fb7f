package geometry

import (
	"github.com/paulmach/orb"
)

// Polygon is a named, simple closed 2D boundary with optional interior
// hole boundaries. The vertex data is owned by the Polygon: construction
// deep-copies its input and accessors return copies, so two polygons never
// share mutable vertex storage.
type Polygon struct {
	name string
	poly orb.Polygon
}

// NewPolygon builds a polygon from an exterior ring and optional hole
// rings. Rings are closed automatically if the closing vertex is absent.
// A ring with fewer than three distinct vertices is rejected.
func NewPolygon(name string, exterior orb.Ring, holes ...orb.Ring) (*Polygon, error) {
	rings := make(orb.Polygon, 0, 1+len(holes))
	rings = append(rings, exterior)
	rings = append(rings, holes...)
	return NewPolygonFromRings(name, rings)
}

// NewPolygonFromRings builds a polygon from an orb.Polygon (exterior ring
// followed by hole rings), validating and deep-copying every ring.
func NewPolygonFromRings(name string, p orb.Polygon) (*Polygon, error) {
	if len(p) == 0 {
		return nil, InvalidPolygonError{Name: name, Reason: "no exterior ring"}
	}
	out := make(orb.Polygon, 0, len(p))
	for i, ring := range p {
		closed, err := closeRing(name, ring)
		if err != nil {
			return nil, err
		}
		if i > 0 && len(closed) == 0 {
			continue // drop empty hole rings
		}
		out = append(out, closed)
	}
	return &Polygon{name: name, poly: out}, nil
}

// closeRing validates a ring and returns a closed deep copy.
func closeRing(name string, ring orb.Ring) (orb.Ring, error) {
	distinct := len(ring)
	if distinct > 0 && ring[0] == ring[len(ring)-1] {
		distinct--
	}
	if distinct < 3 {
		return nil, InvalidPolygonError{Name: name, Reason: "ring has fewer than 3 distinct vertices"}
	}
	out := make(orb.Ring, 0, len(ring)+1)
	out = append(out, ring...)
	if !out.Closed() {
		out = append(out, out[0])
	}
	return out, nil
}

// Name returns the polygon's name.
func (p *Polygon) Name() string { return p.name }

// Exterior returns a copy of the exterior ring, including the closing vertex.
func (p *Polygon) Exterior() orb.Ring {
	return p.poly[0].Clone()
}

// Holes returns copies of the interior hole rings.
func (p *Polygon) Holes() []orb.Ring {
	if len(p.poly) <= 1 {
		return nil
	}
	holes := make([]orb.Ring, 0, len(p.poly)-1)
	for _, h := range p.poly[1:] {
		holes = append(holes, h.Clone())
	}
	return holes
}

// Rings returns a copy of all rings (exterior first) as an orb.Polygon.
func (p *Polygon) Rings() orb.Polygon {
	return p.poly.Clone()
}

// Coords returns the exterior vertex list with the closing vertex trimmed,
// the form expected by downstream meshing consumers.
func (p *Polygon) Coords() []orb.Point {
	ext := p.poly[0]
	n := len(ext)
	if n > 0 && ext[0] == ext[n-1] {
		n--
	}
	out := make([]orb.Point, n)
	copy(out, ext[:n])
	return out
}

// Bound returns the axis-aligned bounding box of the exterior ring.
func (p *Polygon) Bound() orb.Bound {
	return p.poly[0].Bound()
}

// Area returns the enclosed area: exterior area minus hole areas.
func (p *Polygon) Area() float64 {
	a := absRingArea(p.poly[0])
	for _, h := range p.poly[1:] {
		a -= absRingArea(h)
	}
	return a
}

// RingArea returns the unsigned area enclosed by a ring via the shoelace
// formula. The ring may be open or closed.
func RingArea(r orb.Ring) float64 {
	return absRingArea(r)
}

func absRingArea(r orb.Ring) float64 {
	a := signedRingArea(r)
	if a < 0 {
		return -a
	}
	return a
}

// signedRingArea is positive for counter-clockwise winding.
func signedRingArea(r orb.Ring) float64 {
	n := len(r)
	if n > 0 && r[0] == r[n-1] {
		n--
	}
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += r[i][0]*r[j][1] - r[j][0]*r[i][1]
	}
	return sum / 2
}
