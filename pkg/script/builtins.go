package script

import (
	"fmt"
	"strings"

	"github.com/deadsy/sdfx/sdf"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/tomlaeven/qmt/pkg/geometry"
	sdfxsolid "github.com/tomlaeven/qmt/pkg/solid/sdfx"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms geometry script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: charge-density -> charge_density
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a geometry.Vec3.
type sexpVec3 struct {
	vec geometry.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpVec2 wraps a 2D profile vertex.
type sexpVec2 struct {
	x, y float64
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", v.x, v.y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

// sexpSolid wraps an sdf.SDF3 so solid expressions can be composed and
// bound to names.
type sexpSolid struct {
	s sdf.SDF3
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	return "(solid)"
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_wire) and plain strings ("wire").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toDirective converts a keyword or string to a geometry.Directive.
// Keyword names keep their hyphens, so :wire-shell means wire_shell.
func toDirective(s zygo.Sexp) (geometry.Directive, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected directive keyword: %w", err)
	}
	return geometry.ParseDirective(strings.ReplaceAll(name, "-", "_"))
}

// toDomain converts a keyword or string to a geometry.Domain.
func toDomain(s zygo.Sexp) (geometry.Domain, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected domain keyword: %w", err)
	}
	return geometry.ParseDomain(strings.ReplaceAll(name, "-", "_"))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (geometry.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geometry.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toSolid extracts an sdf.SDF3 from a sexpSolid.
func toSolid(s zygo.Sexp) (sdf.SDF3, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.s, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all geometry DSL builtins into a zygomys
// environment. The builtins populate res during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, res *Result) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: geometry.Vec3{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (vec2 1 2)
	// -----------------------------------------------------------------------
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec2 requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: y: %w", err)
		}
		return &sexpVec2{x: x, y: y}, nil
	})

	// -----------------------------------------------------------------------
	// (part "wire" :directive :wire :domain :semiconductor :material "InAs"
	//       :z0 0 :thickness 10 :charge-density 1e18)
	// -----------------------------------------------------------------------
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("part requires a label argument")
		}
		label, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: label: %w", err)
		}

		directive := geometry.DirectiveShape3D
		if v, ok := pa.kw["directive"]; ok {
			directive, err = toDirective(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: directive: %w", label, err)
			}
		}
		domain := geometry.DomainSemiconductor
		if v, ok := pa.kw["domain"]; ok {
			domain, err = toDomain(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: domain: %w", label, err)
			}
		}

		p, err := geometry.NewPart(label, directive, domain)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: %w", err)
		}

		if v, ok := pa.kw["material"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: material: %w", label, err)
			}
			p.Material = s
		}
		if v, ok := pa.kw["z0"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: z0: %w", label, err)
			}
			p.Z0 = f
		}
		if v, ok := pa.kw["thickness"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: thickness: %w", label, err)
			}
			p.Thickness = f
		}
		if v, ok := pa.kw["target-wire"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: target-wire: %w", label, err)
			}
			p.TargetWire = s
		}
		if v, ok := pa.kw["depo-mode"]; ok {
			s, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: depo-mode: %w", label, err)
			}
			p.DepoMode = s
		}
		if v, ok := pa.kw["charge-density"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: charge-density: %w", label, err)
			}
			if err := p.SetChargeDensity(f); err != nil {
				return zygo.SexpNull, err
			}
		}
		if v, ok := pa.kw["neutral-level"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: neutral-level: %w", label, err)
			}
			if err := p.SetNeutralLevel(f); err != nil {
				return zygo.SexpNull, err
			}
		}
		if v, ok := pa.kw["trap-density"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: trap-density: %w", label, err)
			}
			p.SetTrapDensity(f)
		}
		if v, ok := pa.kw["subtract"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: subtract: %w", label, err)
			}
			for _, item := range items {
				s, err := toString(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("part %q: subtract entry: %w", label, err)
				}
				p.SubtractList = append(p.SubtractList, s)
			}
		}

		if err := res.Geo.AddPart(p, false); err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpStr{S: label}, nil
	})

	// -----------------------------------------------------------------------
	// (xsec "mid" :axis (vec3 0 0 1) :distance 25)
	// -----------------------------------------------------------------------
	env.AddFunction("xsec", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("xsec requires a name argument")
		}
		xsName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("xsec: name: %w", err)
		}

		cs := geometry.CrossSection{Axis: geometry.Vec3{Z: 1}}
		if v, ok := pa.kw["axis"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("xsec %q: axis: %w", xsName, err)
			}
			cs.Axis = vec
		}
		if v, ok := pa.kw["distance"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("xsec %q: distance: %w", xsName, err)
			}
			cs.Distance = f
		}

		if err := res.Geo.AddCrossSection(xsName, cs, false); err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpStr{S: xsName}, nil
	})

	// -----------------------------------------------------------------------
	// (fragment "mid" "wire_0" (vec3 ...) (vec3 ...) (vec3 ...) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("fragment", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("fragment requires a cross-section name and a fragment name")
		}
		xsName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fragment: cross-section name: %w", err)
		}
		fragName, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fragment: fragment name: %w", err)
		}

		rest := args[2:]
		// Points may be given inline or as a single list.
		if len(rest) == 1 {
			if _, ok := rest[0].(*sexpVec3); !ok {
				rest, err = sexpListToSlice(rest[0])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("fragment %q: points: %w", fragName, err)
				}
			}
		}
		pts := make([]geometry.Vec3, 0, len(rest))
		for i, item := range rest {
			vec, err := toVec3(item)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fragment %q: point %d: %w", fragName, i, err)
			}
			pts = append(pts, vec)
		}

		if err := res.Geo.AddFragment(xsName, fragName, pts); err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpStr{S: fragName}, nil
	})

	// -----------------------------------------------------------------------
	// (solid "wire" (cylinder 50 25))
	// -----------------------------------------------------------------------
	env.AddFunction("solid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("solid requires a name and a solid expression")
		}
		solidName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("solid: name: %w", err)
		}
		s, err := toSolid(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("solid %q: %w", solidName, err)
		}
		if _, ok := res.Solids[solidName]; ok {
			return zygo.SexpNull, fmt.Errorf("solid %q is already defined", solidName)
		}
		res.Solids[solidName] = s
		return &zygo.SexpStr{S: solidName}, nil
	})

	// -----------------------------------------------------------------------
	// (box 100 100 50) — minimum corner at the origin
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("box requires exactly 3 arguments, got %d", len(args))
		}
		dims := make([]float64, 3)
		for i := range dims {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: argument %d: %w", i, err)
			}
			dims[i] = f
		}
		s, err := sdfxsolid.Box(dims[0], dims[1], dims[2])
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: s}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder height radius) — axis along Z, centered at the origin
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("cylinder requires exactly 2 arguments, got %d", len(args))
		}
		h, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: height: %w", err)
		}
		r, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: radius: %w", err)
		}
		s, err := sdfxsolid.Cylinder(h, r)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: s}, nil
	})

	// -----------------------------------------------------------------------
	// (extrude (list (vec2 0 0) (vec2 10 0) (vec2 10 10)) :z0 0 :thickness 5)
	// -----------------------------------------------------------------------
	env.AddFunction("extrude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("extrude requires a profile argument")
		}
		items, err := sexpListToSlice(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extrude: profile: %w", err)
		}
		profile := make([][2]float64, 0, len(items))
		for i, item := range items {
			v, ok := item.(*sexpVec2)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("extrude: profile vertex %d: expected vec2, got %T", i, item)
			}
			profile = append(profile, [2]float64{v.x, v.y})
		}

		var z0, thickness float64
		if v, ok := pa.kw["z0"]; ok {
			z0, err = toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: z0: %w", err)
			}
		}
		if v, ok := pa.kw["thickness"]; ok {
			thickness, err = toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: thickness: %w", err)
			}
		}

		s, err := sdfxsolid.Extrude(profile, z0, thickness)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: s}, nil
	})

	// -----------------------------------------------------------------------
	// (translate solid x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("translate requires a solid and 3 offsets, got %d arguments", len(args))
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		off := make([]float64, 3)
		for i := range off {
			f, err := toFloat64(args[i+1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("translate: offset %d: %w", i, err)
			}
			off[i] = f
		}
		return &sexpSolid{s: sdfxsolid.Translate(s, off[0], off[1], off[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (union a b ...), (difference a b ...), (intersection a b ...)
	// -----------------------------------------------------------------------
	combine := func(opName string, op func(a, b sdf.SDF3) sdf.SDF3) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) < 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires at least 2 solids, got %d", opName, len(args))
			}
			acc, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: argument 0: %w", opName, err)
			}
			for i := 1; i < len(args); i++ {
				s, err := toSolid(args[i])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: argument %d: %w", opName, i, err)
				}
				acc = op(acc, s)
			}
			return &sexpSolid{s: acc}, nil
		}
	}
	env.AddFunction("union", combine("union", sdfxsolid.Union))
	env.AddFunction("difference", combine("difference", sdfxsolid.Difference))
	env.AddFunction("intersection", combine("intersection", sdfxsolid.Intersection))
}
