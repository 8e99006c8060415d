package domain

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// ArtifactSetDigest computes a deterministic digest over a complete lock
// artifact set. Two cycles producing byte-identical artifacts yield the same
// digest regardless of slice order, which is what no-op detection compares.
func ArtifactSetDigest(artifacts []*LockArtifact) string {
	names := make([]string, 0, len(artifacts))
	byName := make(map[string]*LockArtifact, len(artifacts))
	for _, a := range artifacts {
		name := a.Filename()
		names = append(names, name)
		byName[name] = a
	}
	sort.Strings(names)

	h := xxhash.New()
	for _, name := range names {
		_, _ = h.WriteString(name)
		_, _ = h.Write([]byte{0})
		_, _ = h.Write(byName[name].Raw)
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
