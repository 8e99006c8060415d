package condalock

import (
	"github.com/rse-lectures/lockstep/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// lockfileDTO mirrors the conda-lock v1 unified lockfile schema. Only the
// fields the workflow consumes are mapped; the full document is preserved
// verbatim in LockArtifact.Raw.
type lockfileDTO struct {
	Version  int `yaml:"version"`
	Metadata struct {
		Platforms []string `yaml:"platforms"`
	} `yaml:"metadata"`
	Package []packageDTO `yaml:"package"`
}

type packageDTO struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	Manager  string `yaml:"manager"`
	Platform string `yaml:"platform"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
	Hash     struct {
		MD5    string `yaml:"md5"`
		SHA256 string `yaml:"sha256"`
	} `yaml:"hash"`
}

// Parse decodes a conda-lock unified lockfile and projects the package list
// onto a single platform.
func Parse(raw []byte, platform domain.Platform) (*domain.LockArtifact, error) {
	var dto lockfileDTO
	if err := yaml.Unmarshal(raw, &dto); err != nil {
		return nil, zerr.Wrap(err, "failed to decode lockfile")
	}
	if dto.Version == 0 {
		return nil, zerr.New("lockfile is missing a schema version")
	}

	artifact := &domain.LockArtifact{
		Platform: platform,
		Raw:      raw,
	}
	for _, p := range dto.Package {
		if p.Platform != platform.String() {
			continue
		}
		artifact.Packages = append(artifact.Packages, domain.LockedPackage{
			Name:     p.Name,
			Version:  p.Version,
			Manager:  p.Manager,
			Platform: p.Platform,
			URL:      p.URL,
			SHA256:   p.Hash.SHA256,
			MD5:      p.Hash.MD5,
			Category: p.Category,
		})
	}
	if len(artifact.Packages) == 0 {
		return nil, zerr.With(zerr.New("lockfile contains no packages for platform"),
			"platform", platform.String())
	}
	return artifact, nil
}
