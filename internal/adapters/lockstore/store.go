// Package lockstore persists lock artifact sets as whole generations.
package lockstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rse-lectures/lockstep/internal/core/domain"
	"github.com/rse-lectures/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
)

const indexFile = "index.json"

// index is the commit record for a persisted generation. It is written last,
// after every lock file is in place, so a reader that trusts the index never
// observes a partially published set.
type index struct {
	Generation  int       `json:"generation"`
	Digest      string    `json:"digest"`
	Files       []string  `json:"files"`
	PublishedAt time.Time `json:"published_at"`
}

// Store implements ports.LockStore on the workspace filesystem. Lock files
// live next to their descriptors; the index lives under the configured lock
// directory.
type Store struct {
	root    string
	lockDir string
	logger  ports.Logger
}

// NewStore creates a store rooted at the workspace directory. lockDir is
// relative to root and holds the generation index.
func NewStore(root, lockDir string, logger ports.Logger) *Store {
	return &Store{
		root:    root,
		lockDir: lockDir,
		logger:  logger,
	}
}

// Persist publishes the artifact set as one generation. Artifacts are staged
// under a scratch directory, moved into place with per-file renames, and the
// index is rewritten last. The index is the source of truth: until it is
// replaced, the previous generation remains the current one.
func (s *Store) Persist(artifacts []*domain.LockArtifact) error {
	if len(artifacts) == 0 {
		return zerr.New("refusing to persist an empty artifact set")
	}

	stage, err := os.MkdirTemp(s.root, ".lockstep-stage-")
	if err != nil {
		return zerr.Wrap(err, "failed to create staging directory")
	}
	defer func() { _ = os.RemoveAll(stage) }()

	type placement struct{ staged, final string }
	placements := make([]placement, 0, len(artifacts))
	for i, a := range artifacts {
		rel := a.Filename()
		staged := filepath.Join(stage, "artifact-"+strconv.Itoa(i)+".lock")
		if err := os.WriteFile(staged, a.Raw, 0o644); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stage lock artifact"), "file", rel)
		}
		placements = append(placements, placement{staged: staged, final: filepath.Join(s.root, rel)})
	}

	for _, p := range placements {
		if err := os.MkdirAll(filepath.Dir(p.final), 0o755); err != nil {
			return zerr.Wrap(err, "failed to prepare lock directory")
		}
		if err := os.Rename(p.staged, p.final); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to place lock artifact"), "file", p.final)
		}
	}

	prev, err := s.readIndex()
	if err != nil {
		return err
	}
	next := index{
		Generation:  prev.Generation + 1,
		Digest:      domain.ArtifactSetDigest(artifacts),
		PublishedAt: time.Now().UTC(),
	}
	for _, a := range artifacts {
		next.Files = append(next.Files, a.Filename())
	}
	if err := s.writeIndex(next); err != nil {
		return err
	}
	s.logger.Info("published lock generation " + strconv.Itoa(next.Generation))
	return nil
}

// CurrentDigest returns the digest committed by the last Persist, or the
// empty string when nothing has been persisted yet.
func (s *Store) CurrentDigest() (string, error) {
	idx, err := s.readIndex()
	if err != nil {
		return "", err
	}
	return idx.Digest, nil
}

func (s *Store) indexPath() string {
	return filepath.Join(s.root, s.lockDir, indexFile)
}

func (s *Store) readIndex() (index, error) {
	data, err := os.ReadFile(s.indexPath())
	if errors.Is(err, os.ErrNotExist) {
		return index{}, nil
	}
	if err != nil {
		return index{}, zerr.Wrap(err, "failed to read lock index")
	}
	var idx index
	if err := json.Unmarshal(data, &idx); err != nil {
		return index{}, zerr.Wrap(err, "failed to decode lock index")
	}
	return idx, nil
}

func (s *Store) writeIndex(idx index) error {
	if err := os.MkdirAll(filepath.Join(s.root, s.lockDir), 0o755); err != nil {
		return zerr.Wrap(err, "failed to create lock directory")
	}
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode lock index")
	}
	tmp := s.indexPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write lock index")
	}
	if err := os.Rename(tmp, s.indexPath()); err != nil {
		return zerr.Wrap(err, "failed to commit lock index")
	}
	return nil
}

var _ ports.LockStore = (*Store)(nil)
