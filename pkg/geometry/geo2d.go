package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
)

// DefaultLengthUnit is the length unit assumed when none is given.
const DefaultLengthUnit = "nm"

// Geo2D holds a 2D geometry specification: named part polygons, named
// boundary edges, and a build-order sequence across both. The build order
// records insertion order and is used downstream to resolve rendering and
// meshing priority.
//
// Invariants: names are unique across parts and edges together, and the
// build order always lists exactly the current part and edge names.
type Geo2D struct {
	parts      map[string]*Polygon
	edges      map[string]*Edge
	buildOrder []string
	lunit      string
}

// NewGeo2D creates an empty 2D geometry with the given length unit.
// An empty unit defaults to DefaultLengthUnit.
func NewGeo2D(lunit string) *Geo2D {
	if lunit == "" {
		lunit = DefaultLengthUnit
	}
	return &Geo2D{
		parts: make(map[string]*Polygon),
		edges: make(map[string]*Edge),
		lunit: lunit,
	}
}

// LengthUnit returns the geometry's length unit.
func (g *Geo2D) LengthUnit() string { return g.lunit }

// AddPart adds a part polygon. Adding under a taken name fails unless
// overwrite is set; an overwrite keeps the name's build-order position.
func (g *Geo2D) AddPart(p *Polygon, overwrite bool) error {
	if p == nil {
		return fmt.Errorf("nil polygon")
	}
	return g.insert(p.Name(), "part", overwrite, func() {
		g.parts[p.Name()] = p
	})
}

// RemovePart removes a part and its build-order entry. Removing a missing
// name fails unless ignoreAbsent is set.
func (g *Geo2D) RemovePart(name string, ignoreAbsent bool) error {
	if _, ok := g.parts[name]; !ok {
		if ignoreAbsent {
			return nil
		}
		return NotFoundError{Kind: "part", Name: name}
	}
	delete(g.parts, name)
	g.removeFromBuildOrder(name)
	return nil
}

// AddEdge adds a boundary edge, with the same overwrite semantics as AddPart.
func (g *Geo2D) AddEdge(e *Edge, overwrite bool) error {
	if e == nil {
		return fmt.Errorf("nil edge")
	}
	return g.insert(e.Name(), "edge", overwrite, func() {
		g.edges[e.Name()] = e
	})
}

// RemoveEdge removes an edge and its build-order entry.
func (g *Geo2D) RemoveEdge(name string, ignoreAbsent bool) error {
	if _, ok := g.edges[name]; !ok {
		if ignoreAbsent {
			return nil
		}
		return NotFoundError{Kind: "edge", Name: name}
	}
	delete(g.edges, name)
	g.removeFromBuildOrder(name)
	return nil
}

// insert enforces cross-map name uniqueness and build-order bookkeeping.
func (g *Geo2D) insert(name, kind string, overwrite bool, store func()) error {
	_, isPart := g.parts[name]
	_, isEdge := g.edges[name]
	if isPart || isEdge {
		if !overwrite {
			k := "part"
			if isEdge {
				k = "edge"
			}
			return DuplicateNameError{Kind: k, Name: name}
		}
		// Replacing an entity of the other kind moves the name between maps.
		if isPart && kind == "edge" {
			delete(g.parts, name)
		}
		if isEdge && kind == "part" {
			delete(g.edges, name)
		}
		store()
		return nil
	}
	store()
	g.buildOrder = append(g.buildOrder, name)
	return nil
}

func (g *Geo2D) removeFromBuildOrder(name string) {
	for i, n := range g.buildOrder {
		if n == name {
			g.buildOrder = append(g.buildOrder[:i], g.buildOrder[i+1:]...)
			return
		}
	}
}

// Part returns the named part polygon.
func (g *Geo2D) Part(name string) (*Polygon, error) {
	p, ok := g.parts[name]
	if !ok {
		return nil, NotFoundError{Kind: "part", Name: name}
	}
	return p, nil
}

// Edge returns the named edge.
func (g *Geo2D) Edge(name string) (*Edge, error) {
	e, ok := g.edges[name]
	if !ok {
		return nil, NotFoundError{Kind: "edge", Name: name}
	}
	return e, nil
}

// PartCoords returns the named part's exterior vertex list with the
// closing vertex trimmed.
func (g *Geo2D) PartCoords(name string) ([]orb.Point, error) {
	p, err := g.Part(name)
	if err != nil {
		return nil, err
	}
	return p.Coords(), nil
}

// EdgeCoords returns the named edge's vertex list.
func (g *Geo2D) EdgeCoords(name string) ([]orb.Point, error) {
	e, err := g.Edge(name)
	if err != nil {
		return nil, err
	}
	return e.Coords(), nil
}

// HasPart reports whether a part with the given name exists.
func (g *Geo2D) HasPart(name string) bool {
	_, ok := g.parts[name]
	return ok
}

// BuildOrder returns a copy of the insertion order across parts and edges.
func (g *Geo2D) BuildOrder() []string {
	out := make([]string, len(g.buildOrder))
	copy(out, g.buildOrder)
	return out
}

// PartBuildOrder returns the build order restricted to parts.
func (g *Geo2D) PartBuildOrder() []string {
	var out []string
	for _, name := range g.buildOrder {
		if _, ok := g.parts[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// PartCount returns the number of parts.
func (g *Geo2D) PartCount() int { return len(g.parts) }

// EdgeCount returns the number of edges.
func (g *Geo2D) EdgeCount() int { return len(g.edges) }

// BoundingBox returns the bounding box over all parts and edges.
// An empty geometry has no bounding box.
func (g *Geo2D) BoundingBox() (orb.Bound, error) {
	var b orb.Bound
	first := true
	for _, name := range g.buildOrder {
		var nb orb.Bound
		if p, ok := g.parts[name]; ok {
			nb = p.Bound()
		} else if e, ok := g.edges[name]; ok {
			nb = e.Bound()
		} else {
			continue
		}
		if first {
			b = nb
			first = false
		} else {
			b = b.Union(nb)
		}
	}
	if first {
		return orb.Bound{}, fmt.Errorf("empty geometry has no bounding box")
	}
	return b, nil
}
