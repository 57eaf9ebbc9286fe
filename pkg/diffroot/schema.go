package diffroot

import "github.com/obi1kenobi/semver-check-go/pkg/snapshot"

// Schema adapts this package's functions to pkg/query.Schema, so the
// evaluator carries a single value and never has to know whether a node
// came from the synthetic root or from pkg/snapshot directly.
type Schema struct{}

func (Schema) TypeOf(n snapshot.Node) string                  { return TypeOf(n) }
func (Schema) Implements(typeName, capability string) bool    { return Implements(typeName, capability) }
func (Schema) LookupField(typeName, field string) (bool, bool) { return LookupField(typeName, field) }
func (Schema) Property(n snapshot.Node, name string) (snapshot.Value, error) {
	return Property(n, name)
}
func (Schema) Neighbors(n snapshot.Node, name string) ([]snapshot.Node, error) {
	return Neighbors(n, name)
}

// EdgeTargets adds the synthetic root's two edges to snapshot.EdgeTargets.
func (Schema) EdgeTargets(typeName, field string) []string {
	if typeName == RootTypeName && (field == "current" || field == "baseline") {
		return []string{"Crate"}
	}
	return snapshot.EdgeTargets(typeName, field)
}
