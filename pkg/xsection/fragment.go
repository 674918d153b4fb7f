package xsection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paulmach/orb"

	"github.com/tomlaeven/qmt/pkg/geometry"
)

// FragmentSeparator joins a part name and a fragment suffix in fragment
// names produced by the external slicer: "{part}_{suffix}".
const FragmentSeparator = "_"

// Fragment is one cross-section polygon fragment, projected into plane
// coordinates and paired explicitly with the part that produced it.
type Fragment struct {
	Owner string   // label of the owning part
	Name  string   // full fragment name from the cross-section input
	Ring  orb.Ring // closed boundary in plane coordinates
}

// PartFragments groups the fragments belonging to one part.
type PartFragments struct {
	Part      *geometry.Part
	Fragments []Fragment
}

// Partition assigns every fragment of a cross-section to its owning part
// by matching the "{part}_" name prefix against the build order, projects
// the fragment vertices through the frame, and splits the result into
// physical and virtual part groups. Both groups preserve build order;
// within a part, fragments are ordered by name so output indices are
// deterministic.
//
// Ownership is a structural naming contract: a part label that is a
// prefix of another label can claim the longer label's fragments if it
// comes first in build order. Fragments matching no part are ignored, as
// are parts with no fragments.
func Partition(g *geometry.Geo3D, xs geometry.CrossSection, f *Frame) (physical, virtual []PartFragments, err error) {
	claimed := make(map[string]bool, len(xs.Fragments))

	for _, label := range g.BuildOrder() {
		part, err := g.Part(label)
		if err != nil {
			return nil, nil, err
		}
		prefix := label + FragmentSeparator

		var names []string
		for name := range xs.Fragments {
			if !claimed[name] && strings.HasPrefix(name, prefix) {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)

		pf := PartFragments{Part: part, Fragments: make([]Fragment, 0, len(names))}
		for _, name := range names {
			claimed[name] = true
			ring, err := projectRing(f, xs.Fragments[name])
			if err != nil {
				return nil, nil, fmt.Errorf("fragment %q: %w", name, err)
			}
			pf.Fragments = append(pf.Fragments, Fragment{Owner: label, Name: name, Ring: ring})
		}

		if part.IsVirtual() {
			virtual = append(virtual, pf)
		} else {
			physical = append(physical, pf)
		}
	}
	return physical, virtual, nil
}

// projectRing projects raw 3D fragment vertices into a closed plane ring.
func projectRing(f *Frame, pts []geometry.Vec3) (orb.Ring, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("need at least 3 vertices, got %d", len(pts))
	}
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, f.Project(p))
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	if geometry.RingArea(ring) == 0 {
		return nil, fmt.Errorf("projected ring is degenerate")
	}
	return ring, nil
}
