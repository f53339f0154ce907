package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/foilworks/pkg/airfoil"
	"github.com/chazu/foilworks/pkg/design"
	"github.com/chazu/foilworks/pkg/reynolds"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms airfoil script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: max-thickness -> max_thickness
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
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
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
			// Check for keyword: colon followed by a letter.
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
		// Only when hyphen sits between identifier characters (not a minus operator).
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

// sexpAirfoil wraps a generated airfoil so it can be passed between builtins.
type sexpAirfoil struct {
	foil *airfoil.Airfoil
}

func (a *sexpAirfoil) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(airfoil %q %s)", a.foil.Name, shortID(a.foil.ID))
}
func (a *sexpAirfoil) Type() *zygo.RegisteredType { return nil }

// sexpSection wraps a placed wing section.
type sexpSection struct {
	section *design.Section
}

func (s *sexpSection) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(section %q)", s.section.Name)
}
func (s *sexpSection) Type() *zygo.RegisteredType { return nil }

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

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
				// Keyword at end with no value: treat as flag with nil.
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

// toInt extracts an integer. Floats are accepted when integral.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) {
			return int(v.Val), nil
		}
		return 0, fmt.Errorf("expected integer, got %g", v.Val)
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a boolean from a SexpBool.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_63A) and plain strings ("63A").
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

// toAirfoil extracts an airfoil from a sexpAirfoil or a sexpSection.
func toAirfoil(s zygo.Sexp) (*airfoil.Airfoil, error) {
	switch v := s.(type) {
	case *sexpAirfoil:
		return v.foil, nil
	case *sexpSection:
		return v.section.Airfoil, nil
	}
	return nil, fmt.Errorf("expected airfoil, got %T (%s)", s, s.SexpString(nil))
}

// floatArg reads a required numeric keyword argument.
func floatArg(pa kwArgs, fn, key string) (float64, error) {
	v, ok := pa.kw[key]
	if !ok {
		return 0, fmt.Errorf("%s: missing :%s", fn, key)
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	return f, nil
}

// optFloatArg reads an optional numeric keyword argument.
func optFloatArg(pa kwArgs, fn, key string, def float64) (float64, error) {
	if _, ok := pa.kw[key]; !ok {
		return def, nil
	}
	return floatArg(pa, fn, key)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtinConfig carries engine settings into the builtins.
type builtinConfig struct {
	lib       airfoil.BaseLibrary
	maxPoints int
}

// generatorOptions reads the shared :n and :closed-te arguments.
func generatorOptions(pa kwArgs, fn string, cfg builtinConfig) ([]airfoil.Option, error) {
	var opts []airfoil.Option
	if v, ok := pa.kw["n"]; ok {
		n, err := toInt(v)
		if err != nil {
			return nil, fmt.Errorf("%s: n: %w", fn, err)
		}
		if cfg.maxPoints > 0 && n > cfg.maxPoints {
			return nil, fmt.Errorf("%s: %w: n=%d exceeds limit %d", fn, airfoil.ErrInvalidParameter, n, cfg.maxPoints)
		}
		opts = append(opts, airfoil.WithPoints(n))
	}
	if v, ok := pa.kw["closed-te"]; ok {
		b, err := toBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: closed-te: %w", fn, err)
		}
		opts = append(opts, airfoil.WithClosedTE(b))
	}
	return opts, nil
}

// registerBuiltins installs the airfoil builtins into a zygomys environment.
// Every generated airfoil and placed section is recorded in d.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, d *design.Design, cfg builtinConfig) {

	emit := func(foil *airfoil.Airfoil) zygo.Sexp {
		d.AddAirfoil(foil)
		return &sexpAirfoil{foil: foil}
	}

	// -----------------------------------------------------------------------
	// (naca4 :m 0.02 :p 0.4 :t 0.12 :n 100 :closed-te true)
	// -----------------------------------------------------------------------
	env.AddFunction("naca4", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		m, err := optFloatArg(pa, name, "m", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		p, err := optFloatArg(pa, name, "p", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		t, err := floatArg(pa, name, "t")
		if err != nil {
			return zygo.SexpNull, err
		}
		opts, err := generatorOptions(pa, name, cfg)
		if err != nil {
			return zygo.SexpNull, err
		}
		foil, err := airfoil.NACA4(m, p, t, opts...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("naca4: %w", err)
		}
		return emit(foil), nil
	})

	// -----------------------------------------------------------------------
	// (naca5 :p-pos 0.15 :t 0.12)
	// -----------------------------------------------------------------------
	env.AddFunction("naca5", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		pPos, err := floatArg(pa, name, "p-pos")
		if err != nil {
			return zygo.SexpNull, err
		}
		t, err := floatArg(pa, name, "t")
		if err != nil {
			return zygo.SexpNull, err
		}
		opts, err := generatorOptions(pa, name, cfg)
		if err != nil {
			return zygo.SexpNull, err
		}
		foil, err := airfoil.NACA5(pPos, t, opts...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("naca5: %w", err)
		}
		return emit(foil), nil
	})

	// -----------------------------------------------------------------------
	// (naca6 :family "63A" :t 0.12)
	// -----------------------------------------------------------------------
	env.AddFunction("naca6", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		v, ok := pa.kw["family"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("naca6: missing :family")
		}
		family, err := toKeywordString(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("naca6: family: %w", err)
		}
		t, err := floatArg(pa, name, "t")
		if err != nil {
			return zygo.SexpNull, err
		}
		opts, err := generatorOptions(pa, name, cfg)
		if err != nil {
			return zygo.SexpNull, err
		}
		foil, err := airfoil.NACA6(family, t, cfg.lib, opts...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("naca6: %w", err)
		}
		return emit(foil), nil
	})

	// -----------------------------------------------------------------------
	// (naca "2412" :n 100)
	// -----------------------------------------------------------------------
	env.AddFunction("naca", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("naca requires a designation string")
		}
		code, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("naca: designation: %w", err)
		}
		des, err := airfoil.ParseDesignation(code)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("naca: %w", err)
		}
		opts, err := generatorOptions(pa, name, cfg)
		if err != nil {
			return zygo.SexpNull, err
		}
		foil, err := airfoil.Generate(des, cfg.lib, opts...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("naca: %w", err)
		}
		return emit(foil), nil
	})

	// -----------------------------------------------------------------------
	// (reynolds :v 30 :c 1.2 :nu 1.5e-5) or (reynolds :v 30 :c 1.2 :rho 1.225 :mu 1.8e-5)
	// -----------------------------------------------------------------------
	env.AddFunction("reynolds", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var in reynolds.Input
		var err error
		if in.V, err = floatArg(pa, name, "v"); err != nil {
			return zygo.SexpNull, err
		}
		if in.C, err = floatArg(pa, name, "c"); err != nil {
			return zygo.SexpNull, err
		}
		for key, dst := range map[string]**float64{"rho": &in.Rho, "mu": &in.Mu, "nu": &in.Nu} {
			if _, ok := pa.kw[key]; !ok {
				continue
			}
			f, err := floatArg(pa, name, key)
			if err != nil {
				return zygo.SexpNull, err
			}
			*dst = reynolds.Float(f)
		}
		re, err := reynolds.Compute(in)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpFloat{Val: re}, nil
	})

	// -----------------------------------------------------------------------
	// (section "root" foil :station 0 :chord 1.2 :twist 2 :span 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("section", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("section requires a name and an airfoil")
		}
		sectionName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("section: name: %w", err)
		}
		foil, err := toAirfoil(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("section %q: %w", sectionName, err)
		}

		s := &design.Section{Name: sectionName, Airfoil: foil}
		fields := []struct {
			key string
			dst *float64
			def float64
		}{
			{"station", &s.Station, 0},
			{"chord", &s.Chord, design.DefaultChord},
			{"twist", &s.Twist, 0},
			{"span", &s.Span, design.DefaultSpan},
		}
		for _, f := range fields {
			v, err := optFloatArg(pa, "section", f.key, f.def)
			if err != nil {
				return zygo.SexpNull, err
			}
			*f.dst = v
		}

		if err := d.AddSection(s); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSection{section: s}, nil
	})

	// -----------------------------------------------------------------------
	// (thickness foil) -> maximum thickness as a chord fraction
	// -----------------------------------------------------------------------
	env.AddFunction("thickness", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("thickness requires exactly one airfoil")
		}
		foil, err := toAirfoil(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("thickness: %w", err)
		}
		_, t := foil.MaxThickness()
		return &zygo.SexpFloat{Val: t}, nil
	})

	// -----------------------------------------------------------------------
	// (fingerprint foil) -> hex id
	// -----------------------------------------------------------------------
	env.AddFunction("fingerprint", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("fingerprint requires exactly one airfoil")
		}
		foil, err := toAirfoil(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fingerprint: %w", err)
		}
		return &zygo.SexpStr{S: foil.ID}, nil
	})
}
