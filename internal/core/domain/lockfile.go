package domain

import (
	"fmt"
	"time"
)

// LockedPackage is one fully pinned transitive dependency inside a lock
// artifact.
type LockedPackage struct {
	Name     string `yaml:"name" json:"name"`
	Version  string `yaml:"version" json:"version"`
	Manager  string `yaml:"manager" json:"manager"`
	Platform string `yaml:"platform" json:"platform"`
	URL      string `yaml:"url" json:"url"`
	SHA256   string `yaml:"sha256,omitempty" json:"sha256,omitempty"`
	MD5      string `yaml:"md5,omitempty" json:"md5,omitempty"`
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
}

// LockArtifact is the fully resolved, pinned output of resolving one
// (descriptor, platform) target. Immutable once produced; a later successful
// resolution supersedes it, never mutates it.
type LockArtifact struct {
	// Descriptor is the name of the descriptor this artifact was resolved from.
	Descriptor string

	// Platform is the platform the artifact pins packages for.
	Platform Platform

	// SolverVersion records the conda-lock version that produced the artifact.
	// Resolution is deterministic only for a fixed solver version; recording
	// it lets maintainers see when the solver itself moved.
	SolverVersion string

	// GeneratedAt is the resolution timestamp.
	GeneratedAt time.Time

	// Packages is the pinned dependency closure.
	Packages []LockedPackage

	// Raw holds the exact solver output bytes. Artifacts are persisted
	// verbatim so installs reproduce the solver's closure bit for bit.
	Raw []byte

	// LockPrefix is the artifact filename prefix, carried from the descriptor.
	LockPrefix string
}

// Filename returns the on-disk artifact name, e.g.
// "environment-dev-linux-64.lock".
func (a *LockArtifact) Filename() string {
	return fmt.Sprintf("%s-%s.lock", a.LockPrefix, a.Platform)
}

// Find returns the locked entry for a package name, if present.
func (a *LockArtifact) Find(name string) (LockedPackage, bool) {
	for _, p := range a.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return LockedPackage{}, false
}
