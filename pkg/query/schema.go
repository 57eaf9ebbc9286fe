package query

import "github.com/obi1kenobi/semver-check-go/pkg/snapshot"

// Schema is the capability the evaluator needs from the Diff Adapter: type
// identity, interface membership, field lookup, and property/edge
// resolution. pkg/diffroot satisfies this with a thin adapter so that this
// package never imports pkg/diffroot directly.
type Schema interface {
	TypeOf(n snapshot.Node) string
	Implements(typeName, capability string) bool
	LookupField(typeName, field string) (isEdge bool, ok bool)
	Property(n snapshot.Node, name string) (snapshot.Value, error)
	Neighbors(n snapshot.Node, name string) ([]snapshot.Node, error)

	// EdgeTargets reports the possible concrete destination types of an
	// edge, for static field-name validation of nested selections. An
	// empty result means the validator skips checking that subtree.
	EdgeTargets(typeName, field string) []string
}
