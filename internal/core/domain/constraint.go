package domain

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Comparator is the version comparison operator of a package constraint.
type Comparator string

const (
	// CompAny places no restriction on the version.
	CompAny Comparator = ""
	// CompExact pins an exact version.
	CompExact Comparator = "=="
	// CompMinimum requires at least the given version.
	CompMinimum Comparator = ">="
	// CompCompatible requires a compatible release (same major.minor line).
	CompCompatible Comparator = "~="
)

// Constraint is one validated {package, comparator, version} entry of an
// environment descriptor.
type Constraint struct {
	Name    string
	Op      Comparator
	Version string
}

// comparators ordered longest-first so "==" is tried before "=".
var comparators = []Comparator{CompExact, CompMinimum, CompCompatible}

// ParseConstraint parses a dependency entry such as "numpy>=1.21.0",
// "flake8==7.0.0", "scipy~=1.11" or a bare "matplotlib". The version literal
// is validated eagerly so malformed descriptors are rejected before any
// resolution is attempted.
func ParseConstraint(spec string) (Constraint, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Constraint{}, zerr.With(ErrMalformedConstraint, "spec", spec)
	}

	for _, op := range comparators {
		name, version, found := strings.Cut(spec, string(op))
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)
		if name == "" || version == "" {
			return Constraint{}, zerr.With(ErrMalformedConstraint, "spec", spec)
		}
		if _, err := semver.NewVersion(version); err != nil {
			malformed := zerr.With(ErrMalformedConstraint, "spec", spec)
			return Constraint{}, zerr.With(malformed, "version", version)
		}
		return Constraint{Name: name, Op: op, Version: version}, nil
	}

	// Bare package name. Reject anything that still smells like an operator,
	// e.g. "numpy=1.21" or "numpy<2".
	if strings.ContainsAny(spec, "=<>!~ ") {
		return Constraint{}, zerr.With(ErrMalformedConstraint, "spec", spec)
	}
	return Constraint{Name: spec, Op: CompAny}, nil
}

// String renders the constraint back to descriptor syntax.
func (c Constraint) String() string {
	if c.Op == CompAny {
		return c.Name
	}
	return c.Name + string(c.Op) + c.Version
}

// Allows reports whether the given concrete version satisfies the constraint.
// Unparseable resolved versions (conda builds occasionally use non-semver
// strings) are accepted for CompAny and rejected otherwise.
func (c Constraint) Allows(version string) bool {
	if c.Op == CompAny {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	var expr string
	switch c.Op {
	case CompExact:
		expr = "=" + c.Version
	case CompMinimum:
		expr = ">=" + c.Version
	case CompCompatible:
		expr = "~" + c.Version
	default:
		return true
	}
	constraint, err := semver.NewConstraint(expr)
	if err != nil {
		return false
	}
	return constraint.Check(v)
}
