package geometry

import "fmt"

// Directive enumerates the construction methods used to build a part's 3D
// solid shape. The construction itself happens in the external solid
// modeler; the directive is carried here as metadata.
type Directive int

const (
	DirectiveExtrude     Directive = iota // simple extrusion of a 2D profile
	DirectiveWire                         // hexagonal nanowire about a polyline
	DirectiveWireShell                    // shell coating a specified nanowire
	DirectiveSAG                          // selective-area-growth structure
	DirectiveLithography                  // masked layer deposited on top
	DirectiveShape3D                      // take the 3D shape directly
)

func (d Directive) String() string {
	switch d {
	case DirectiveExtrude:
		return "extrude"
	case DirectiveWire:
		return "wire"
	case DirectiveWireShell:
		return "wire_shell"
	case DirectiveSAG:
		return "SAG"
	case DirectiveLithography:
		return "lithography"
	case DirectiveShape3D:
		return "3d_shape"
	default:
		return "unknown"
	}
}

// ParseDirective converts a directive name to its enum value.
func ParseDirective(s string) (Directive, error) {
	for d := DirectiveExtrude; d <= DirectiveShape3D; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid directive %q", s)
}

// Domain enumerates the physical domain classifications of a part.
type Domain int

const (
	DomainSemiconductor Domain = iota // permitted to self-consistently accumulate charge
	DomainMetalGate                   // an electrode
	DomainVirtual                     // used only for selection, ignores material
	DomainDielectric                  // no charge accumulation allowed
)

func (d Domain) String() string {
	switch d {
	case DomainSemiconductor:
		return "semiconductor"
	case DomainMetalGate:
		return "metal_gate"
	case DomainVirtual:
		return "virtual"
	case DomainDielectric:
		return "dielectric"
	default:
		return "unknown"
	}
}

// ParseDomain converts a domain name to its enum value.
func ParseDomain(s string) (Domain, error) {
	for d := DomainSemiconductor; d <= DomainDielectric; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid domain %q", s)
}

// MeshHints carries per-part meshing preferences, consumed by the external
// mesh generator.
type MeshHints struct {
	MaxSize     float64 // maximum element size, microns (0 = unset)
	MinSize     float64 // minimum element size, microns (0 = unset)
	GrowthRate  float64 // maximum element growth rate (0 = unset)
	ScaleVector Vec3    // per-axis mesh scaling (zero = unset)
}

// Part describes one 3D part: identity, construction directive, domain
// classification, material reference, and directive-specific parameters.
// Fields that only apply to some directives are zero-valued otherwise.
type Part struct {
	Label     string
	Directive Directive
	Domain    Domain
	Material  string

	// Extrude / wire / SAG / lithography parameters.
	Z0        float64
	Thickness float64

	// Wire shell parameters.
	TargetWire string // label of the wire this shell coats
	ShellVerts []int  // profile vertices used when rendering the coating
	DepoMode   string // "depo" or "etch"

	// SAG parameters.
	ZMiddle float64
	TIn     float64
	TOut    float64

	// Lithography parameters.
	LayerNum  int
	LithoBase []string

	Mesh MeshHints

	// BoundaryConditions maps condition type to value, e.g. "voltage" -> 1.0.
	BoundaryConditions map[string]float64

	// SubtractList names parts subtracted from this one when the final 3D
	// objects are formed.
	SubtractList []string

	chargeDensity *float64 // 1/cm^3, semiconductor and dielectric only
	neutralLevel  *float64 // eV above valence band maximum, semiconductor only
	trapDensity   *float64 // 1/(cm^2*eV)
}

// NewPart creates a part with the given identity, validating the directive
// and domain enumerations.
func NewPart(label string, directive Directive, domain Domain) (*Part, error) {
	if label == "" {
		return nil, fmt.Errorf("part label must not be empty")
	}
	if directive < DirectiveExtrude || directive > DirectiveShape3D {
		return nil, fmt.Errorf("part %q: invalid directive %d", label, int(directive))
	}
	if domain < DomainSemiconductor || domain > DomainDielectric {
		return nil, fmt.Errorf("part %q: invalid domain %d", label, int(domain))
	}
	return &Part{Label: label, Directive: directive, Domain: domain}, nil
}

// SetChargeDensity sets the volume charge density (1/cm^3). Only
// semiconductor and dielectric parts may carry one.
func (p *Part) SetChargeDensity(ns float64) error {
	if p.Domain != DomainSemiconductor && p.Domain != DomainDielectric {
		return fmt.Errorf("part %q: cannot set a volume charge density on a %s part", p.Label, p.Domain)
	}
	p.chargeDensity = &ns
	return nil
}

// ChargeDensity returns the volume charge density, if set.
func (p *Part) ChargeDensity() (float64, bool) {
	if p.chargeDensity == nil {
		return 0, false
	}
	return *p.chargeDensity, true
}

// SetNeutralLevel sets the neutral level for interface traps (eV above the
// valence band maximum). Semiconductor parts only.
func (p *Part) SetNeutralLevel(phi float64) error {
	if p.Domain != DomainSemiconductor {
		return fmt.Errorf("part %q: neutral level applies only to semiconductor parts", p.Label)
	}
	p.neutralLevel = &phi
	return nil
}

// NeutralLevel returns the interface-trap neutral level, if set.
func (p *Part) NeutralLevel() (float64, bool) {
	if p.neutralLevel == nil {
		return 0, false
	}
	return *p.neutralLevel, true
}

// SetTrapDensity sets the interface trap density (1/(cm^2*eV)).
func (p *Part) SetTrapDensity(ds float64) {
	p.trapDensity = &ds
}

// TrapDensity returns the interface trap density, if set.
func (p *Part) TrapDensity() (float64, bool) {
	if p.trapDensity == nil {
		return 0, false
	}
	return *p.trapDensity, true
}

// Validate re-checks the part's invariants. It is called by Geo3D.AddPart
// so parts assembled field-by-field cannot bypass construction rules.
func (p *Part) Validate() error {
	if _, err := NewPart(p.Label, p.Directive, p.Domain); err != nil {
		return err
	}
	if p.chargeDensity != nil && p.Domain != DomainSemiconductor && p.Domain != DomainDielectric {
		return fmt.Errorf("part %q: volume charge density set on a %s part", p.Label, p.Domain)
	}
	if p.neutralLevel != nil && p.Domain != DomainSemiconductor {
		return fmt.Errorf("part %q: neutral level set on a %s part", p.Label, p.Domain)
	}
	if p.DepoMode != "" && p.DepoMode != "depo" && p.DepoMode != "etch" {
		return fmt.Errorf("part %q: depo mode must be \"depo\" or \"etch\", got %q", p.Label, p.DepoMode)
	}
	return nil
}

// IsVirtual reports whether the part is a selection-only virtual part.
func (p *Part) IsVirtual() bool {
	return p.Domain == DomainVirtual
}
