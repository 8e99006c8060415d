package domain_test

import (
	"errors"
	"testing"

	"github.com/rse-lectures/lockstep/internal/core/domain"
)

func mustConstraint(t *testing.T, spec string) domain.Constraint {
	t.Helper()
	c, err := domain.ParseConstraint(spec)
	if err != nil {
		t.Fatalf("ParseConstraint(%q): %v", spec, err)
	}
	return c
}

func TestDescriptor_EffectiveConstraints_Inheritance(t *testing.T) {
	base := &domain.Descriptor{
		Name:     "base",
		Path:     "environment.yml",
		Channels: []string{"conda-forge"},
		Constraints: []domain.Constraint{
			mustConstraint(t, "python>=3.11.0"),
			mustConstraint(t, "numpy>=1.21.0"),
		},
	}
	lecture := &domain.Descriptor{
		Name:     "lecture_03",
		Path:     "lecture_03/environment.yml",
		Channels: []string{"conda-forge", "bioconda"},
		Constraints: []domain.Constraint{
			mustConstraint(t, "numpy==1.26.4"), // overrides the base minimum
			mustConstraint(t, "networkx>=3.0.0"),
		},
		Parent: base,
	}

	got := lecture.EffectiveConstraints()
	want := []string{"python>=3.11.0", "numpy==1.26.4", "networkx>=3.0.0"}
	if len(got) != len(want) {
		t.Fatalf("expected %d constraints, got %d: %v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].String() != w {
			t.Errorf("constraint[%d] = %q, want %q", i, got[i].String(), w)
		}
	}

	channels := lecture.EffectiveChannels()
	if len(channels) != 2 || channels[0] != "conda-forge" || channels[1] != "bioconda" {
		t.Errorf("unexpected effective channels: %v", channels)
	}
}

func TestDescriptor_Files_ParentFirst(t *testing.T) {
	base := &domain.Descriptor{Name: "base", Path: "environment.yml"}
	lecture := &domain.Descriptor{Name: "lecture_01", Path: "lecture_01/environment.yml", Parent: base}

	files := lecture.Files()
	if len(files) != 2 || files[0] != "environment.yml" || files[1] != "lecture_01/environment.yml" {
		t.Errorf("unexpected file chain: %v", files)
	}
}

func TestParsePlatform(t *testing.T) {
	for _, s := range []string{"linux-64", "osx-64", "osx-arm64", "win-64"} {
		p, err := domain.ParsePlatform(s)
		if err != nil {
			t.Errorf("ParsePlatform(%q): unexpected error: %v", s, err)
		}
		if p.String() != s {
			t.Errorf("ParsePlatform(%q) = %q", s, p)
		}
	}

	_, err := domain.ParsePlatform("amiga-68k")
	if !errors.Is(err, domain.ErrUnsupportedPlatform) {
		t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestWorkspace_Targets_Matrix(t *testing.T) {
	base := &domain.Descriptor{Name: "base"}
	dev := &domain.Descriptor{Name: "dev"}
	ws := &domain.Workspace{
		Descriptors: []*domain.Descriptor{base, dev},
		Platforms:   []domain.Platform{domain.PlatformLinux64, domain.PlatformWin64},
	}

	targets := ws.Targets()
	if len(targets) != 4 {
		t.Fatalf("expected 4 targets, got %d", len(targets))
	}
	wantIDs := []string{"base/linux-64", "base/win-64", "dev/linux-64", "dev/win-64"}
	for i, want := range wantIDs {
		if targets[i].ID() != want {
			t.Errorf("target[%d] = %q, want %q", i, targets[i].ID(), want)
		}
	}
}
