package sdfx

import (
	"testing"
)

func TestLoadDocumentEmptyLibrary(t *testing.T) {
	svc := NewService(Library{})
	if _, err := svc.LoadDocument(); err == nil {
		t.Fatal("expected error loading an empty library")
	}
}

func TestIsInsideBox(t *testing.T) {
	box, err := Box(100, 100, 50)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	svc := NewService(Library{"block": box})
	doc, err := svc.LoadDocument()
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	defer doc.Close()

	tests := []struct {
		name   string
		p      [3]float64
		inside bool
	}{
		{"center", [3]float64{50, 50, 25}, true},
		{"near corner inside", [3]float64{1, 1, 1}, true},
		{"outside above", [3]float64{50, 50, 60}, false},
		{"outside negative", [3]float64{-10, 50, 25}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := doc.IsInside("block", tt.p, 1e-5, true)
			if err != nil {
				t.Fatalf("IsInside failed: %v", err)
			}
			if got != tt.inside {
				t.Errorf("IsInside(%v) = %v, want %v", tt.p, got, tt.inside)
			}
		})
	}
}

func TestIsInsideUnknownSolid(t *testing.T) {
	box, err := Box(10, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(Library{"block": box})
	doc, err := svc.LoadDocument()
	if err != nil {
		t.Fatal(err)
	}
	defer doc.Close()

	if _, err := doc.IsInside("nope", [3]float64{0, 0, 0}, 1e-5, true); err == nil {
		t.Fatal("expected error for unknown solid")
	}
}

func TestClosedDocumentRejectsQueries(t *testing.T) {
	box, err := Box(10, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(Library{"block": box})
	doc, err := svc.LoadDocument()
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := doc.IsInside("block", [3]float64{5, 5, 5}, 1e-5, true); err == nil {
		t.Fatal("expected error querying a closed document")
	}
	// Close is idempotent.
	if err := doc.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestSolidsSorted(t *testing.T) {
	box, err := Box(10, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	cyl, err := Cylinder(20, 5)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(Library{"wire": cyl, "block": box})
	doc, err := svc.LoadDocument()
	if err != nil {
		t.Fatal(err)
	}
	defer doc.Close()

	names := doc.Solids()
	if len(names) != 2 || names[0] != "block" || names[1] != "wire" {
		t.Fatalf("Solids = %v, want [block wire]", names)
	}
}

func TestDifferenceCavity(t *testing.T) {
	outer, err := Box(100, 100, 50)
	if err != nil {
		t.Fatal(err)
	}
	inner, err := Box(20, 20, 10)
	if err != nil {
		t.Fatal(err)
	}
	block := Difference(outer, Translate(inner, 40, 40, 20))

	svc := NewService(Library{"block": block})
	doc, err := svc.LoadDocument()
	if err != nil {
		t.Fatal(err)
	}
	defer doc.Close()

	// A point in the cavity is not inside the block.
	in, err := doc.IsInside("block", [3]float64{50, 50, 25}, 1e-5, true)
	if err != nil {
		t.Fatal(err)
	}
	if in {
		t.Error("cavity point reported inside")
	}
	// A point in the remaining material is.
	in, err = doc.IsInside("block", [3]float64{10, 10, 25}, 1e-5, true)
	if err != nil {
		t.Fatal(err)
	}
	if !in {
		t.Error("material point reported outside")
	}
}

func TestExtrude(t *testing.T) {
	profile := [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	s, err := Extrude(profile, 5, 10)
	if err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}
	svc := NewService(Library{"layer": s})
	doc, err := svc.LoadDocument()
	if err != nil {
		t.Fatal(err)
	}
	defer doc.Close()

	in, err := doc.IsInside("layer", [3]float64{5, 5, 10}, 1e-5, true)
	if err != nil {
		t.Fatal(err)
	}
	if !in {
		t.Error("midpoint of extrusion reported outside")
	}
	in, err = doc.IsInside("layer", [3]float64{5, 5, 2}, 1e-5, true)
	if err != nil {
		t.Fatal(err)
	}
	if in {
		t.Error("point below z0 reported inside")
	}

	if _, err := Extrude(profile[:2], 0, 10); err == nil {
		t.Error("expected error for degenerate profile")
	}
	if _, err := Extrude(profile, 0, 0); err == nil {
		t.Error("expected error for zero thickness")
	}
}
