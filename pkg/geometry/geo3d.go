package geometry

import (
	"fmt"
	"sort"
)

// ExteriorBoundaryName is the conventional name of the exterior boundary
// condition region.
const ExteriorBoundaryName = "exterior"

// CrossSection is a named planar slice definition: the cutting plane and
// the raw polygon fragments produced by slicing the 3D assembly at that
// plane. Fragment names follow the convention "{part}_{suffix}", which
// establishes ownership by prefix match against the part build order.
type CrossSection struct {
	Axis      Vec3    // cutting plane normal
	Distance  float64 // signed distance along Axis
	Fragments map[string][]Vec3
}

// Geo3D holds a 3D geometry specification: named parts, a build-order
// sequence, and named cross-section definitions.
type Geo3D struct {
	parts      map[string]*Part
	buildOrder []string
	xsecs      map[string]CrossSection
}

// NewGeo3D creates an empty 3D geometry.
func NewGeo3D() *Geo3D {
	return &Geo3D{
		parts: make(map[string]*Part),
		xsecs: make(map[string]CrossSection),
	}
}

// AddPart adds a part keyed by its label, validating it first. Adding
// under a taken label fails unless overwrite is set; an overwrite keeps
// the label's build-order position.
func (g *Geo3D) AddPart(p *Part, overwrite bool) error {
	if p == nil {
		return fmt.Errorf("nil part")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := g.parts[p.Label]; ok {
		if !overwrite {
			return DuplicateNameError{Kind: "part", Name: p.Label}
		}
		g.parts[p.Label] = p
		return nil
	}
	g.parts[p.Label] = p
	g.buildOrder = append(g.buildOrder, p.Label)
	return nil
}

// RemovePart removes a part and its build-order entry. Removing a missing
// label fails unless ignoreAbsent is set.
func (g *Geo3D) RemovePart(label string, ignoreAbsent bool) error {
	if _, ok := g.parts[label]; !ok {
		if ignoreAbsent {
			return nil
		}
		return NotFoundError{Kind: "part", Name: label}
	}
	delete(g.parts, label)
	for i, n := range g.buildOrder {
		if n == label {
			g.buildOrder = append(g.buildOrder[:i], g.buildOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Part returns the part with the given label.
func (g *Geo3D) Part(label string) (*Part, error) {
	p, ok := g.parts[label]
	if !ok {
		return nil, NotFoundError{Kind: "part", Name: label}
	}
	return p, nil
}

// Parts returns all parts in build order.
func (g *Geo3D) Parts() []*Part {
	out := make([]*Part, 0, len(g.parts))
	for _, label := range g.buildOrder {
		out = append(out, g.parts[label])
	}
	return out
}

// BuildOrder returns a copy of the part build order.
func (g *Geo3D) BuildOrder() []string {
	out := make([]string, len(g.buildOrder))
	copy(out, g.buildOrder)
	return out
}

// PartCount returns the number of parts.
func (g *Geo3D) PartCount() int { return len(g.parts) }

// AddCrossSection registers a cross-section definition. The axis must be
// nonzero; fragment point lists, if present, need at least 3 vertices.
// Fragment data is deep-copied.
func (g *Geo3D) AddCrossSection(name string, cs CrossSection, overwrite bool) error {
	if name == "" {
		return fmt.Errorf("cross-section name must not be empty")
	}
	if cs.Axis.Norm() == 0 {
		return fmt.Errorf("cross-section %q: axis must be nonzero", name)
	}
	if _, ok := g.xsecs[name]; ok && !overwrite {
		return DuplicateNameError{Kind: "cross-section", Name: name}
	}
	stored := CrossSection{
		Axis:      cs.Axis,
		Distance:  cs.Distance,
		Fragments: make(map[string][]Vec3, len(cs.Fragments)),
	}
	for frag, pts := range cs.Fragments {
		if len(pts) < 3 {
			return fmt.Errorf("cross-section %q: fragment %q has %d vertices, need at least 3", name, frag, len(pts))
		}
		cp := make([]Vec3, len(pts))
		copy(cp, pts)
		stored.Fragments[frag] = cp
	}
	g.xsecs[name] = stored
	return nil
}

// AddFragment appends one polygon fragment to an existing cross-section.
// The fragment name carries ownership via its "{part}_" prefix.
func (g *Geo3D) AddFragment(xsecName, fragName string, pts []Vec3) error {
	cs, ok := g.xsecs[xsecName]
	if !ok {
		return NotFoundError{Kind: "cross-section", Name: xsecName}
	}
	if _, ok := cs.Fragments[fragName]; ok {
		return DuplicateNameError{Kind: "fragment", Name: fragName}
	}
	if len(pts) < 3 {
		return fmt.Errorf("cross-section %q: fragment %q has %d vertices, need at least 3", xsecName, fragName, len(pts))
	}
	cp := make([]Vec3, len(pts))
	copy(cp, pts)
	cs.Fragments[fragName] = cp
	return nil
}

// CrossSection returns the named cross-section definition.
func (g *Geo3D) CrossSection(name string) (CrossSection, error) {
	cs, ok := g.xsecs[name]
	if !ok {
		return CrossSection{}, NotFoundError{Kind: "cross-section", Name: name}
	}
	return cs, nil
}

// CrossSectionNames returns all cross-section names, sorted.
func (g *Geo3D) CrossSectionNames() []string {
	out := make([]string, 0, len(g.xsecs))
	for name := range g.xsecs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
