package domain

// Target is a (descriptor, platform) pair, the unit of resolution and
// validation. Targets are fully isolated from one another.
type Target struct {
	Descriptor *Descriptor
	Platform   Platform
}

// ID returns the "<descriptor>/<platform>" identity used in reports and logs.
func (t Target) ID() string {
	return t.Descriptor.Name + "/" + t.Platform.String()
}

// Workspace is the loaded workspace manifest: the descriptor set plus the
// parameters of the update cycle.
type Workspace struct {
	// Root is the workspace root directory.
	Root string

	// Descriptors are the declared environment descriptors, in manifest order.
	Descriptors []*Descriptor

	// Platforms is the resolution platform matrix.
	Platforms []Platform

	// LectureGlob matches the lecture source files validated by the pipeline,
	// relative to Root.
	LectureGlob string

	// LockDir is the directory lock artifacts are persisted to, relative to Root.
	LockDir string
}

// Targets expands the full (descriptor, platform) matrix in deterministic
// order: descriptors in manifest order, platforms in manifest order.
func (w *Workspace) Targets() []Target {
	targets := make([]Target, 0, len(w.Descriptors)*len(w.Platforms))
	for _, d := range w.Descriptors {
		for _, p := range w.Platforms {
			targets = append(targets, Target{Descriptor: d, Platform: p})
		}
	}
	return targets
}
