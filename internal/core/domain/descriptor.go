// Package domain contains the core domain models for dependency resolution
// and validation: descriptors, resolution targets, lock artifacts, validation
// reports and update proposals.
package domain

// Descriptor is a named, human-edited set of package constraints together
// with the channels they resolve from. A descriptor may extend a parent
// descriptor, inheriting its channels and constraints.
type Descriptor struct {
	// Name is the descriptor identity used in target IDs (e.g. "base", "dev",
	// "lecture_01").
	Name string

	// Path is the descriptor file path relative to the workspace root.
	Path string

	// LockPrefix is the path prefix of this descriptor's lock artifacts
	// (e.g. "environment-dev" yields "environment-dev-linux-64.lock").
	LockPrefix string

	// Channels is the ordered channel list declared by this descriptor.
	Channels []string

	// Constraints is the ordered constraint list declared by this descriptor,
	// not including inherited ones.
	Constraints []Constraint

	// Parent is the resolved descriptor this one extends, or nil.
	Parent *Descriptor
}

// Files returns the descriptor file chain, parent first. This is the order
// the solver consumes composed environment files in.
func (d *Descriptor) Files() []string {
	if d.Parent == nil {
		return []string{d.Path}
	}
	return append(d.Parent.Files(), d.Path)
}

// EffectiveChannels returns the channel list with inherited channels first,
// deduplicated in order.
func (d *Descriptor) EffectiveChannels() []string {
	var chain []string
	if d.Parent != nil {
		chain = d.Parent.EffectiveChannels()
	}
	seen := make(map[string]bool, len(chain)+len(d.Channels))
	out := make([]string, 0, len(chain)+len(d.Channels))
	for _, c := range append(chain, d.Channels...) {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// EffectiveConstraints returns inherited constraints followed by this
// descriptor's own. A child constraint on a package the parent also pins
// replaces the parent's entry.
func (d *Descriptor) EffectiveConstraints() []Constraint {
	if d.Parent == nil {
		return append([]Constraint(nil), d.Constraints...)
	}

	inherited := d.Parent.EffectiveConstraints()
	overridden := make(map[string]bool, len(d.Constraints))
	for _, c := range d.Constraints {
		overridden[c.Name] = true
	}

	out := make([]Constraint, 0, len(inherited)+len(d.Constraints))
	for _, c := range inherited {
		if !overridden[c.Name] {
			out = append(out, c)
		}
	}
	return append(out, d.Constraints...)
}
