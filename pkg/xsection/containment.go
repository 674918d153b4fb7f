package xsection

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/tomlaeven/qmt/pkg/geometry"
)

// Forest records immediate containment over a set of named fragments:
// container name -> names of the fragments it immediately contains. The
// relation is non-transitive: for a nesting chain A ⊃ B ⊃ C it holds
// A→B and B→C but never A→C.
type Forest map[string][]string

// Children returns the immediate children of a fragment, nil for roots.
func (f Forest) Children(name string) []string { return f[name] }

// BuildContainment computes the immediate-containment forest of a
// fragment set. Fragments are sorted ascending by area; each one is
// attached to the smallest larger fragment that geometrically contains
// it, if any. The sort is stable, so fragments of equal area keep their
// input order — an implementation-defined tie-break that callers must
// not rely on.
//
// Containment tests are O(n²), which is fine for the small per-part
// fragment counts a device cross-section produces.
func BuildContainment(frags []Fragment) Forest {
	byArea := make([]Fragment, len(frags))
	copy(byArea, frags)
	sort.SliceStable(byArea, func(i, j int) bool {
		return geometry.RingArea(byArea[i].Ring) < geometry.RingArea(byArea[j].Ring)
	})

	forest := make(Forest, len(frags))
	for _, frag := range frags {
		forest[frag.Name] = nil
	}

	for i, frag := range byArea {
		for _, bigger := range byArea[i+1:] {
			if ringContainsRing(bigger.Ring, frag.Ring) {
				forest[bigger.Name] = append(forest[bigger.Name], frag.Name)
				break
			}
		}
	}
	return forest
}

// ringContainsRing reports whether every vertex of inner lies inside or
// on outer. Cross-section fragments never partially overlap — they come
// from a planar arrangement — so vertex containment decides ring
// containment.
func ringContainsRing(outer, inner orb.Ring) bool {
	for _, p := range inner {
		if !planar.RingContains(outer, p) {
			return false
		}
	}
	return true
}
