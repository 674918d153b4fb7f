package xsection

import (
	"testing"

	"github.com/tomlaeven/qmt/pkg/geometry"
)

func squarePts(x0, y0, s, z float64) []geometry.Vec3 {
	return []geometry.Vec3{
		{X: x0, Y: y0, Z: z},
		{X: x0 + s, Y: y0, Z: z},
		{X: x0 + s, Y: y0 + s, Z: z},
		{X: x0, Y: y0 + s, Z: z},
	}
}

func buildGeo(t *testing.T) *geometry.Geo3D {
	t.Helper()
	g := geometry.NewGeo3D()
	wire, err := geometry.NewPart("wire", geometry.DirectiveWire, geometry.DomainSemiconductor)
	if err != nil {
		t.Fatal(err)
	}
	tag, err := geometry.NewPart("tag", geometry.DirectiveShape3D, geometry.DomainVirtual)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.AddPart(wire, false); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPart(tag, false); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestPartitionOwnershipAndOrder(t *testing.T) {
	g := buildGeo(t)
	xs := geometry.CrossSection{
		Axis:     geometry.Vec3{Z: 1},
		Distance: 0,
		Fragments: map[string][]geometry.Vec3{
			"wire_1":   squarePts(20, 0, 10, 0),
			"wire_0":   squarePts(0, 0, 10, 0),
			"tag_0":    squarePts(0, 0, 5, 0),
			"orphan_0": squarePts(50, 50, 5, 0),
		},
	}
	f := zFrame(t, 0)

	physical, virtual, err := Partition(g, xs, f)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	if len(physical) != 1 {
		t.Fatalf("physical groups = %d, want 1", len(physical))
	}
	pf := physical[0]
	if pf.Part.Label != "wire" {
		t.Fatalf("physical part = %q, want wire", pf.Part.Label)
	}
	// Fragments are sorted by name for deterministic output indices.
	if len(pf.Fragments) != 2 || pf.Fragments[0].Name != "wire_0" || pf.Fragments[1].Name != "wire_1" {
		t.Fatalf("wire fragments = %v", pf.Fragments)
	}
	for _, frag := range pf.Fragments {
		if frag.Owner != "wire" {
			t.Errorf("fragment %q owner = %q", frag.Name, frag.Owner)
		}
		if !frag.Ring.Closed() {
			t.Errorf("fragment %q ring not closed", frag.Name)
		}
	}

	if len(virtual) != 1 || virtual[0].Part.Label != "tag" {
		t.Fatalf("virtual groups = %v", virtual)
	}
	// orphan_0 matches no part and is dropped silently.
}

func TestPartitionPrefixRequiresSeparator(t *testing.T) {
	g := geometry.NewGeo3D()
	p, err := geometry.NewPart("wire", geometry.DirectiveWire, geometry.DomainSemiconductor)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.AddPart(p, false); err != nil {
		t.Fatal(err)
	}
	xs := geometry.CrossSection{
		Axis: geometry.Vec3{Z: 1},
		Fragments: map[string][]geometry.Vec3{
			"wirecoat_0": squarePts(0, 0, 10, 0), // not wire's: no "wire_" prefix
		},
	}
	physical, virtual, err := Partition(g, xs, zFrame(t, 0))
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	if len(physical) != 0 || len(virtual) != 0 {
		t.Fatalf("physical=%v virtual=%v, want empty", physical, virtual)
	}
}

func TestPartitionFirstPartInBuildOrderClaims(t *testing.T) {
	// "wire" precedes "wire_shell" in build order, so "wire_shell_0"
	// is claimed by "wire" under the prefix rule. The claim map keeps
	// "wire_shell" from claiming it again.
	g := geometry.NewGeo3D()
	wire, _ := geometry.NewPart("wire", geometry.DirectiveWire, geometry.DomainSemiconductor)
	shell, _ := geometry.NewPart("wire_shell", geometry.DirectiveWireShell, geometry.DomainMetalGate)
	if err := g.AddPart(wire, false); err != nil {
		t.Fatal(err)
	}
	if err := g.AddPart(shell, false); err != nil {
		t.Fatal(err)
	}
	xs := geometry.CrossSection{
		Axis: geometry.Vec3{Z: 1},
		Fragments: map[string][]geometry.Vec3{
			"wire_shell_0": squarePts(0, 0, 10, 0),
		},
	}
	physical, _, err := Partition(g, xs, zFrame(t, 0))
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	if len(physical) != 1 || physical[0].Part.Label != "wire" {
		t.Fatalf("physical = %v, want claim by wire", physical)
	}
}

func TestPartitionDegenerateFragment(t *testing.T) {
	g := geometry.NewGeo3D()
	p, _ := geometry.NewPart("wire", geometry.DirectiveWire, geometry.DomainSemiconductor)
	if err := g.AddPart(p, false); err != nil {
		t.Fatal(err)
	}
	// Collinear vertices project to a zero-area ring.
	xs := geometry.CrossSection{
		Axis: geometry.Vec3{Z: 1},
		Fragments: map[string][]geometry.Vec3{
			"wire_0": {{X: 0}, {X: 1}, {X: 2}},
		},
	}
	if _, _, err := Partition(g, xs, zFrame(t, 0)); err == nil {
		t.Fatal("expected error for degenerate fragment")
	}
}
