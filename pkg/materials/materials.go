// Package materials provides the material property database consulted
// when mapping device parts to their physical materials.
package materials

import (
	_ "embed"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/tomlaeven/qmt/pkg/geometry"
)

//go:embed default.yaml
var defaultYAML []byte

// Material describes one material and its physical properties. Property
// keys are free-form (band offsets, permittivity, work function, ...);
// solvers pick out the ones they need.
type Material struct {
	Name       string             `yaml:"name"`
	Class      string             `yaml:"class"` // semiconductor, metal, dielectric
	Properties map[string]float64 `yaml:"properties,omitempty"`
}

// Database is a material lookup keyed by name.
type Database struct {
	materials map[string]Material
}

// Load reads a YAML material list.
func Load(r io.Reader) (*Database, error) {
	var list []Material
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("materials: decode: %w", err)
	}
	db := &Database{materials: make(map[string]Material, len(list))}
	for _, m := range list {
		if m.Name == "" {
			return nil, fmt.Errorf("materials: entry with empty name")
		}
		if _, ok := db.materials[m.Name]; ok {
			return nil, fmt.Errorf("materials: duplicate material %q", m.Name)
		}
		db.materials[m.Name] = m
	}
	return db, nil
}

// Default returns the built-in material set.
func Default() *Database {
	var list []Material
	if err := yaml.Unmarshal(defaultYAML, &list); err != nil {
		panic(fmt.Sprintf("materials: embedded database is invalid: %v", err))
	}
	db := &Database{materials: make(map[string]Material, len(list))}
	for _, m := range list {
		db.materials[m.Name] = m
	}
	return db
}

// Material returns the named material.
func (db *Database) Material(name string) (Material, error) {
	m, ok := db.materials[name]
	if !ok {
		return Material{}, fmt.Errorf("materials: unknown material %q", name)
	}
	return m, nil
}

// Names returns all material names, sorted.
func (db *Database) Names() []string {
	out := make([]string, 0, len(db.materials))
	for name := range db.materials {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MaterialOf returns the material assigned to a part.
func (db *Database) MaterialOf(p *geometry.Part) (Material, error) {
	if p.Material == "" {
		return Material{}, fmt.Errorf("materials: part %q has no material", p.Label)
	}
	return db.Material(p.Material)
}

// Mapping resolves the material of every non-virtual part of a geometry.
// Virtual parts are selection markers and carry no material.
func (db *Database) Mapping(g *geometry.Geo3D) (map[string]Material, error) {
	out := make(map[string]Material)
	for _, p := range g.Parts() {
		if p.IsVirtual() {
			continue
		}
		m, err := db.MaterialOf(p)
		if err != nil {
			return nil, err
		}
		out[p.Label] = m
	}
	return out, nil
}
