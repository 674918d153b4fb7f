package geometry

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

func unitSquare(s float64) orb.Ring {
	return orb.Ring{{0, 0}, {s, 0}, {s, s}, {0, s}}
}

func TestNewPolygonClosesRing(t *testing.T) {
	p, err := NewPolygon("sq", unitSquare(10))
	if err != nil {
		t.Fatalf("NewPolygon failed: %v", err)
	}
	ext := p.Exterior()
	if !ext.Closed() {
		t.Fatal("exterior ring not closed")
	}
	if len(ext) != 5 {
		t.Fatalf("exterior length = %d, want 5", len(ext))
	}
	if got := p.Coords(); len(got) != 4 {
		t.Fatalf("Coords length = %d, want 4", len(got))
	}
}

func TestNewPolygonRejectsDegenerate(t *testing.T) {
	tests := []struct {
		name string
		ring orb.Ring
	}{
		{"empty", orb.Ring{}},
		{"two points", orb.Ring{{0, 0}, {1, 1}}},
		{"closed pair", orb.Ring{{0, 0}, {1, 1}, {0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolygon("bad", tt.ring)
			var ie InvalidPolygonError
			if !errors.As(err, &ie) {
				t.Fatalf("error = %v, want InvalidPolygonError", err)
			}
		})
	}
}

func TestPolygonDeepCopies(t *testing.T) {
	ring := unitSquare(10)
	p, err := NewPolygon("sq", ring)
	if err != nil {
		t.Fatalf("NewPolygon failed: %v", err)
	}
	ring[0] = orb.Point{99, 99}
	if p.Exterior()[0] != (orb.Point{0, 0}) {
		t.Fatal("polygon shares storage with its input ring")
	}
	ext := p.Exterior()
	ext[1] = orb.Point{-1, -1}
	if p.Exterior()[1] != (orb.Point{10, 0}) {
		t.Fatal("accessor exposes internal storage")
	}
}

func TestPolygonArea(t *testing.T) {
	outer := unitSquare(10)
	hole := orb.Ring{{2, 2}, {4, 2}, {4, 4}, {2, 4}}
	p, err := NewPolygon("sq", outer, hole)
	if err != nil {
		t.Fatalf("NewPolygon failed: %v", err)
	}
	if got := p.Area(); !almostEqual(got, 100-4) {
		t.Fatalf("Area = %v, want 96", got)
	}
	if got := len(p.Holes()); got != 1 {
		t.Fatalf("Holes length = %d, want 1", got)
	}
}

func TestRingArea(t *testing.T) {
	// Unsigned regardless of winding.
	ccw := unitSquare(10)
	cw := orb.Ring{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	if got := RingArea(ccw); !almostEqual(got, 100) {
		t.Errorf("RingArea(ccw) = %v, want 100", got)
	}
	if got := RingArea(cw); !almostEqual(got, 100) {
		t.Errorf("RingArea(cw) = %v, want 100", got)
	}
	// Closed form gives the same answer.
	closed := append(ccw.Clone(), ccw[0])
	if got := RingArea(closed); !almostEqual(got, 100) {
		t.Errorf("RingArea(closed) = %v, want 100", got)
	}
}

func TestPolygonBound(t *testing.T) {
	p, err := NewPolygon("sq", orb.Ring{{1, 2}, {5, 2}, {5, 7}, {1, 7}})
	if err != nil {
		t.Fatalf("NewPolygon failed: %v", err)
	}
	b := p.Bound()
	if b.Min != (orb.Point{1, 2}) || b.Max != (orb.Point{5, 7}) {
		t.Fatalf("Bound = %v", b)
	}
}
