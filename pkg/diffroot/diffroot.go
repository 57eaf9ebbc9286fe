// Package diffroot is the Diff Adapter (DA): it presents the pair
// (baseline?, current) through one synthetic root, and is the facade the
// query evaluator resolves every property and edge through — for both the
// synthetic root itself and for ordinary snapshot nodes, which it simply
// delegates to pkg/snapshot. This matches the design note that the
// evaluator should carry a single schema reference and never needs to know
// which snapshot a node came from (pkg/snapshot.Node values carry no
// snapshot back-pointer at all).
package diffroot

import (
	"errors"
	"fmt"

	"github.com/obi1kenobi/semver-check-go/pkg/snapshot"
)

// ErrMissingCurrent is a fatal configuration error: current is required.
var ErrMissingCurrent = errors.New("diffroot: current snapshot is required")

// RootTypeName is the concrete type name of the synthetic root, usable in
// "... on RootSchemaQuery" refinements if a query ever needs one (it never
// does for the lints in this catalogue, since the root has no ambiguity).
const RootTypeName = "RootSchemaQuery"

// Root is the synthetic root exposing baseline (0..1) and current (1..1).
type Root struct {
	Current  *snapshot.Snapshot
	Baseline *snapshot.Snapshot // nil means absent, not an error
}

func (r *Root) TypeName() string { return RootTypeName }

// New builds a DiffRoot. baseline may be nil.
func New(current, baseline *snapshot.Snapshot) (*Root, error) {
	if current == nil {
		return nil, ErrMissingCurrent
	}
	return &Root{Current: current, Baseline: baseline}, nil
}

// TypeOf mirrors snapshot.TypeOf but also recognizes the synthetic root.
func TypeOf(n snapshot.Node) string {
	if _, ok := n.(*Root); ok {
		return RootTypeName
	}
	return snapshot.TypeOf(n)
}

// Implements mirrors snapshot.Implements but also recognizes the
// synthetic root, which implements no interfaces.
func Implements(typeName, capability string) bool {
	if typeName == RootTypeName {
		return capability == RootTypeName
	}
	return snapshot.Implements(typeName, capability)
}

// LookupField mirrors snapshot.LookupField, adding the root's two edges.
func LookupField(typeName, field string) (isEdge bool, ok bool) {
	if typeName == RootTypeName {
		switch field {
		case "baseline", "current":
			return true, true
		default:
			return false, false
		}
	}
	return snapshot.LookupField(typeName, field)
}

// Property resolves a scalar property. The synthetic root has none.
func Property(n snapshot.Node, name string) (snapshot.Value, error) {
	if _, ok := n.(*Root); ok {
		return snapshot.Null, &snapshot.UnknownFieldError{TypeName: RootTypeName, Field: name}
	}
	return snapshot.Property(n, name)
}

// Neighbors resolves an edge. On the synthetic root, "current" always
// resolves to exactly the current Crate; "baseline" resolves to the
// baseline Crate if present, or no rows at all if absent — per spec.md
// §4.2, a missing baseline is not an error, it is simply empty.
func Neighbors(n snapshot.Node, name string) ([]snapshot.Node, error) {
	root, ok := n.(*Root)
	if !ok {
		return snapshot.Neighbors(n, name)
	}
	switch name {
	case "current":
		return []snapshot.Node{root.Current.Root()}, nil
	case "baseline":
		if root.Baseline == nil {
			return nil, nil
		}
		return []snapshot.Node{root.Baseline.Root()}, nil
	default:
		return nil, &snapshot.UnknownFieldError{TypeName: RootTypeName, Field: name}
	}
}

// Validate checks the fatal configuration error eagerly, surfaced before
// any query runs, per spec.md §4.2's failure semantics.
func Validate(r *Root) error {
	if r == nil || r.Current == nil {
		return fmt.Errorf("%w", ErrMissingCurrent)
	}
	return nil
}
