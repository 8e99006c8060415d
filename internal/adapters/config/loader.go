// Package config provides the workspace manifest and descriptor loader.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rse-lectures/lockstep/internal/core/domain"
	"github.com/rse-lectures/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultManifest is the workspace manifest filename.
const DefaultManifest = "lockstep.yaml"

// Loader implements ports.ConfigLoader using YAML files: one workspace
// manifest naming the descriptors, plus one environment file per descriptor.
type Loader struct {
	// Filename is the manifest name inside the workspace root.
	Filename string

	logger ports.Logger
}

// NewLoader creates a new Loader reading the default manifest.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Filename: DefaultManifest, logger: logger}
}

// manifestDTO mirrors the lockstep.yaml structure.
type manifestDTO struct {
	Version     string          `yaml:"version"`
	Platforms   []string        `yaml:"platforms"`
	Lectures    string          `yaml:"lectures"`
	LockDir     string          `yaml:"lockDir"`
	Descriptors []descriptorRef `yaml:"descriptors"`
}

type descriptorRef struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// envFileDTO mirrors one environment descriptor file. The extends field is
// the path of the parent descriptor, relative to this file.
type envFileDTO struct {
	Name         string   `yaml:"name"`
	Extends      string   `yaml:"extends"`
	Channels     []string `yaml:"channels"`
	Dependencies []string `yaml:"dependencies"`
}

// Load reads the manifest from the workspace root, loads every descriptor
// file, resolves inheritance and validates all constraint entries. Malformed
// input is rejected here with file context, before resolution is attempted.
func (l *Loader) Load(root string) (*domain.Workspace, error) {
	path := filepath.Join(root, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read workspace manifest")
	}

	var manifest manifestDTO
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.Wrap(err, "failed to parse workspace manifest")
	}
	if len(manifest.Descriptors) == 0 {
		return nil, zerr.With(domain.ErrNoDescriptors, "manifest", path)
	}

	platforms, err := parsePlatforms(manifest.Platforms)
	if err != nil {
		return nil, err
	}

	ws := &domain.Workspace{
		Root:        root,
		Platforms:   platforms,
		LectureGlob: manifest.Lectures,
		LockDir:     manifest.LockDir,
	}
	if ws.LectureGlob == "" {
		ws.LectureGlob = "lecture_*/lecture_*.py"
	}
	if ws.LockDir == "" {
		ws.LockDir = "locks"
	}

	cache := make(map[string]*domain.Descriptor)
	seen := make(map[string]bool, len(manifest.Descriptors))
	for _, ref := range manifest.Descriptors {
		if ref.Name == "" || ref.File == "" {
			return nil, zerr.With(zerr.New("descriptor entry needs name and file"), "manifest", path)
		}
		if seen[ref.Name] {
			return nil, zerr.With(zerr.New("duplicate descriptor name"), "descriptor", ref.Name)
		}
		seen[ref.Name] = true

		desc, err := l.loadDescriptor(root, ref.File, cache, nil)
		if err != nil {
			return nil, err
		}
		desc.Name = ref.Name
		ws.Descriptors = append(ws.Descriptors, desc)
	}

	return ws, nil
}

// loadDescriptor reads one environment file and recursively resolves its
// parent chain. The visiting slice carries the chain currently being loaded
// for cycle detection; cache deduplicates shared parents.
func (l *Loader) loadDescriptor(
	root, relPath string,
	cache map[string]*domain.Descriptor,
	visiting []string,
) (*domain.Descriptor, error) {
	clean := filepath.Clean(relPath)
	if d, ok := cache[clean]; ok {
		return d, nil
	}
	for _, v := range visiting {
		if v == clean {
			return nil, zerr.With(domain.ErrDescriptorCycle, "chain", strings.Join(append(visiting, clean), " -> "))
		}
	}

	full := filepath.Join(root, clean)
	data, err := os.ReadFile(full) //nolint:gosec // path comes from the manifest
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(domain.ErrDescriptorNotFound, "file", clean)
		}
		return nil, zerr.Wrap(err, "failed to read descriptor file")
	}

	var dto envFileDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse descriptor file"), "file", clean)
	}

	desc := &domain.Descriptor{
		Name:       dto.Name,
		Path:       clean,
		LockPrefix: strings.TrimSuffix(clean, filepath.Ext(clean)),
		Channels:   dto.Channels,
	}

	for _, entry := range dto.Dependencies {
		c, err := domain.ParseConstraint(entry)
		if err != nil {
			return nil, zerr.With(err, "file", clean)
		}
		desc.Constraints = append(desc.Constraints, c)
	}
	if len(desc.Constraints) == 0 && l.logger != nil {
		l.logger.Warn("descriptor declares no dependencies: " + clean)
	}

	if dto.Extends != "" {
		parentPath := filepath.Join(filepath.Dir(clean), dto.Extends)
		parent, err := l.loadDescriptor(root, parentPath, cache, append(visiting, clean))
		if err != nil {
			return nil, err
		}
		desc.Parent = parent
	}

	cache[clean] = desc
	return desc, nil
}

func parsePlatforms(entries []string) ([]domain.Platform, error) {
	if len(entries) == 0 {
		return domain.DefaultPlatforms(), nil
	}
	platforms := make([]domain.Platform, 0, len(entries))
	for _, e := range entries {
		p, err := domain.ParsePlatform(e)
		if err != nil {
			return nil, err
		}
		platforms = append(platforms, p)
	}
	return platforms, nil
}

var _ ports.ConfigLoader = (*Loader)(nil)
