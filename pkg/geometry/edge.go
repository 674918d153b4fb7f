package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Edge is a named open or closed boundary curve, used for boundary and
// surface conditions. Unlike Polygon it encloses no interior.
type Edge struct {
	name string
	line orb.LineString
}

// NewEdge builds an edge from an ordered vertex sequence. The vertex data
// is deep-copied. At least two vertices are required.
func NewEdge(name string, line orb.LineString) (*Edge, error) {
	if len(line) < 2 {
		return nil, fmt.Errorf("edge %q needs at least 2 vertices, got %d", name, len(line))
	}
	return &Edge{name: name, line: line.Clone()}, nil
}

// Name returns the edge's name.
func (e *Edge) Name() string { return e.name }

// Coords returns a copy of the edge's vertex list.
func (e *Edge) Coords() []orb.Point {
	out := make([]orb.Point, len(e.line))
	copy(out, e.line)
	return out
}

// Bound returns the axis-aligned bounding box of the edge.
func (e *Edge) Bound() orb.Bound {
	return e.line.Bound()
}

// Closed reports whether the first and last vertices coincide.
func (e *Edge) Closed() bool {
	return e.line[0] == e.line[len(e.line)-1]
}
