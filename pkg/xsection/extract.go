package xsection

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/tomlaeven/qmt/pkg/geometry"
	"github.com/tomlaeven/qmt/pkg/solid"
)

// Extract derives a 2D geometry from the named cross-section of g.
//
// It builds the cutting-plane frame, partitions and projects the
// fragments, resolves cavities for every physical part against a solid
// document loaded from svc, and passes virtual parts through untouched.
// The document is released on every exit path. A part whose fragments all
// resolve to cavities contributes nothing; that is a valid empty result,
// not an error.
//
// Output naming: a part with exactly one surviving polygon appears under
// its own label; with several, under "{label}_{i}" with positional
// indices in fragment order.
func Extract(g *geometry.Geo3D, xsecName string, svc solid.Service, lunit string) (*geometry.Geo2D, error) {
	xs, err := g.CrossSection(xsecName)
	if err != nil {
		return nil, err
	}
	frame, err := NewFrame(xs.Axis, xs.Distance)
	if err != nil {
		return nil, fmt.Errorf("cross-section %q: %w", xsecName, err)
	}
	physical, virtual, err := Partition(g, xs, frame)
	if err != nil {
		return nil, fmt.Errorf("cross-section %q: %w", xsecName, err)
	}

	doc, err := svc.LoadDocument()
	if err != nil {
		return nil, fmt.Errorf("cross-section %q: load solid document: %w", xsecName, err)
	}
	defer doc.Close()

	out := geometry.NewGeo2D(lunit)

	for _, pf := range physical {
		forest := BuildContainment(pf.Fragments)
		byName := make(map[string]Fragment, len(pf.Fragments))
		for _, frag := range pf.Fragments {
			byName[frag.Name] = frag
		}
		resolver := &Resolver{Frame: frame, Doc: doc}

		var kept []orb.Polygon
		for _, frag := range pf.Fragments {
			var children []Fragment
			for _, childName := range forest.Children(frag.Name) {
				children = append(children, byName[childName])
			}
			poly, material, err := resolver.Resolve(frag, children)
			if err != nil {
				return nil, fmt.Errorf("cross-section %q, part %q: %w", xsecName, pf.Part.Label, err)
			}
			if material {
				kept = append(kept, poly)
			}
		}
		if err := addNamed(out, pf.Part.Label, kept); err != nil {
			return nil, fmt.Errorf("cross-section %q: %w", xsecName, err)
		}
	}

	// Virtual parts are selection markers: their fragments pass through
	// without containment or cavity resolution, even when they overlap
	// physical material.
	for _, pf := range virtual {
		polys := make([]orb.Polygon, 0, len(pf.Fragments))
		for _, frag := range pf.Fragments {
			polys = append(polys, orb.Polygon{frag.Ring.Clone()})
		}
		if err := addNamed(out, pf.Part.Label, polys); err != nil {
			return nil, fmt.Errorf("cross-section %q: %w", xsecName, err)
		}
	}

	return out, nil
}

// addNamed adds a part's surviving polygons to the output under the
// one-vs-many naming rule.
func addNamed(out *geometry.Geo2D, label string, polys []orb.Polygon) error {
	if len(polys) == 0 {
		return nil
	}
	if len(polys) == 1 {
		p, err := geometry.NewPolygonFromRings(label, polys[0])
		if err != nil {
			return err
		}
		return out.AddPart(p, false)
	}
	for i, rings := range polys {
		name := fmt.Sprintf("%s%s%d", label, FragmentSeparator, i)
		p, err := geometry.NewPolygonFromRings(name, rings)
		if err != nil {
			return err
		}
		if err := out.AddPart(p, false); err != nil {
			return err
		}
	}
	return nil
}
