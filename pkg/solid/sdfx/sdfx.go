// Package sdfx implements the solid.Service interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Solids are signed
// distance fields, so the point-membership query is a single SDF
// evaluation against the tolerance.
package sdfx

import (
	"fmt"
	"sort"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/tomlaeven/qmt/pkg/solid"
)

// Compile-time interface checks.
var (
	_ solid.Service  = (*Service)(nil)
	_ solid.Document = (*Document)(nil)
)

// Library maps solid names to their SDF representations. It is the
// "source" a Service loads documents from.
type Library map[string]sdf.SDF3

// Service hands out documents backed by a solid library.
type Service struct {
	lib Library
}

// NewService creates a service over the given library.
func NewService(lib Library) *Service {
	return &Service{lib: lib}
}

// LoadDocument activates the library as a document. Loading an empty
// library is an error.
func (s *Service) LoadDocument() (solid.Document, error) {
	if len(s.lib) == 0 {
		return nil, fmt.Errorf("sdfx: cannot load a document from an empty solid library")
	}
	solids := make(map[string]sdf.SDF3, len(s.lib))
	for name, sd := range s.lib {
		if sd == nil {
			return nil, fmt.Errorf("sdfx: solid %q is nil", name)
		}
		solids[name] = sd
	}
	return &Document{solids: solids}, nil
}

// Document is an activated set of named SDF solids.
type Document struct {
	solids map[string]sdf.SDF3
	closed bool
}

// IsInside reports whether p lies inside the named solid within tol.
// The signed distance is negative inside the solid, so membership is
// Evaluate(p) <= tol. The exact flag is accepted for contract
// compatibility; SDF evaluation is already exact with respect to the model.
func (d *Document) IsInside(solidName string, p [3]float64, tol float64, exact bool) (bool, error) {
	if d.closed {
		return false, fmt.Errorf("sdfx: query on closed document")
	}
	s, ok := d.solids[solidName]
	if !ok {
		return false, fmt.Errorf("sdfx: no solid named %q in document", solidName)
	}
	dist := s.Evaluate(v3.Vec{X: p[0], Y: p[1], Z: p[2]})
	return dist <= tol, nil
}

// Solids returns the names of the solids in the document, sorted.
func (d *Document) Solids() []string {
	names := make([]string, 0, len(d.solids))
	for name := range d.solids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close releases the document. Further queries fail.
func (d *Document) Close() error {
	d.closed = true
	return nil
}
