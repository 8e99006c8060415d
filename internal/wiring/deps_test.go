package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
)

// TestGraftDependencies checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of
	// the interface used in Dep[T]. Since every node resolves interfaces from
	// the shared ports package, the inference expects a single node named
	// "ports", which does not match this architecture.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}
