package query

import (
	"fmt"
	"strings"

	"github.com/obi1kenobi/semver-check-go/pkg/snapshot"
)

// Bindings is one result row: output names to scalar values.
type Bindings map[string]snapshot.Value

// Row is the evaluator's working state for one in-flight result: the
// outputs accumulated so far and the tags visible to filters that come
// later in document order.
type Row struct {
	Outputs map[string]snapshot.Value
	Tags    map[string]snapshot.Value
}

func newRow() Row {
	return Row{Outputs: map[string]snapshot.Value{}, Tags: map[string]snapshot.Value{}}
}

func (r Row) clone() Row {
	c := newRow()
	for k, v := range r.Outputs {
		c.Outputs[k] = v
	}
	for k, v := range r.Tags {
		c.Tags[k] = v
	}
	return c
}

// Evaluator runs a parsed Document against a Schema, starting from one
// root node, producing the cross-join of field traversals described in
// spec.md §4.3.2. It is eager rather than a lazy pull-stream: snapshots are
// fully in-memory, so materializing all rows up front costs nothing a
// pull-based evaluator would have saved, and it keeps this package free of
// generator/coroutine machinery the corpus never uses either.
type Evaluator struct {
	schema Schema
	args   map[string]snapshot.Value
}

// NewEvaluator builds an Evaluator bound to a schema and the lint's
// argument bindings (resolved via $name references in @filter values).
func NewEvaluator(schema Schema, args map[string]snapshot.Value) *Evaluator {
	return &Evaluator{schema: schema, args: args}
}

// Evaluate runs doc against root and returns one Bindings per result row.
func (e *Evaluator) Evaluate(doc *Document, root snapshot.Node) ([]Bindings, error) {
	rows, err := e.evalSelectionSet(root, newRow(), doc.Selection)
	if err != nil {
		return nil, err
	}
	out := make([]Bindings, len(rows))
	for i, r := range rows {
		out[i] = r.Outputs
	}
	return out, nil
}

func (e *Evaluator) evalSelectionSet(node snapshot.Node, row Row, sel *SelectionSet) ([]Row, error) {
	if sel == nil {
		return []Row{row}, nil
	}
	rows := []Row{row}
	for _, f := range sel.Fields {
		var next []Row
		for _, r := range rows {
			frows, err := e.evalField(node, r, f)
			if err != nil {
				return nil, err
			}
			next = append(next, frows...)
		}
		rows = next
		if len(rows) == 0 {
			break
		}
	}
	return rows, nil
}

func (e *Evaluator) evalField(node snapshot.Node, row Row, f *Field) ([]Row, error) {
	if f.IsFragment {
		if !e.schema.Implements(e.schema.TypeOf(node), f.FragmentType) {
			return nil, nil
		}
		return e.evalSelectionSet(node, row, f.Selection)
	}

	typeName := e.schema.TypeOf(node)
	isEdge, ok := e.schema.LookupField(typeName, f.Name)
	if !ok {
		return nil, &snapshot.UnknownFieldError{TypeName: typeName, Field: f.Name}
	}
	if !isEdge {
		return e.evalScalarField(node, row, f)
	}
	return e.evalEdgeField(node, row, f)
}

func (e *Evaluator) evalScalarField(node snapshot.Node, row Row, f *Field) ([]Row, error) {
	val, err := e.schema.Property(node, f.Name)
	if err != nil {
		return nil, err
	}
	row = row.clone()
	if d := f.directive("tag"); d != nil {
		row.Tags[tagName(d, f.Name)] = val
	}
	if d := f.directive("output"); d != nil {
		row.Outputs[outputName(d, f.Name)] = val
	}
	if d := f.directive("filter"); d != nil {
		keep, err := e.evalFilter(d, val, row)
		if err != nil {
			return nil, err
		}
		if !keep {
			return nil, nil
		}
	}
	return []Row{row}, nil
}

func (e *Evaluator) evalEdgeField(node snapshot.Node, row Row, f *Field) ([]Row, error) {
	optional := f.directive("optional") != nil
	fold := f.directive("fold") != nil

	neighbors, err := e.resolveNeighbors(node, f)
	if err != nil {
		return nil, err
	}

	if fold {
		return e.evalFold(row, f, neighbors)
	}

	if len(neighbors) == 0 {
		if optional {
			return []Row{e.bindNullDescendants(row, f.Selection)}, nil
		}
		return nil, nil
	}

	var out []Row
	for _, nb := range neighbors {
		sub, err := e.evalSelectionSet(nb, row.clone(), f.Selection)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

func (e *Evaluator) resolveNeighbors(node snapshot.Node, f *Field) ([]snapshot.Node, error) {
	d := f.directive("recurse")
	if d == nil {
		return e.schema.Neighbors(node, f.Name)
	}
	depth := int64(0)
	if a := d.arg("depth"); a != nil {
		depth = a.Value.Int
	}
	return e.collectRecursive(node, f.Name, depth)
}

// collectRecursive unions depths 0..maxDepth of the named edge. Depth 0 is
// the identity (just the starting node) per the resolved Open Question on
// @recurse(depth: 0). No visited-set is kept; the depth bound alone is
// relied on to terminate, per spec.md §4.3.2 rule 5.
func (e *Evaluator) collectRecursive(node snapshot.Node, edgeName string, maxDepth int64) ([]snapshot.Node, error) {
	result := []snapshot.Node{node}
	level := []snapshot.Node{node}
	for d := int64(1); d <= maxDepth; d++ {
		var next []snapshot.Node
		for _, n := range level {
			nbs, err := e.schema.Neighbors(n, edgeName)
			if err != nil {
				return nil, err
			}
			next = append(next, nbs...)
		}
		if len(next) == 0 {
			break
		}
		result = append(result, next...)
		level = next
	}
	return result, nil
}

// evalFold collapses the subtree rooted at each neighbor into exactly one
// outer row, per spec.md §4.3.2 rule 6. With @transform(op: "count") the
// fold escapes as a single int, filterable by @filter; the fold's own
// @output/@tag (if any) bind that count, and any @output/@tag inside the
// fold's selection are evaluated per item but discarded, since nothing
// there escapes once the bag is collapsed to a count. Without @transform, every
// @output-tagged descendant inside the fold escapes as a list of its
// per-item values, collected across the whole bag.
func (e *Evaluator) evalFold(row Row, f *Field, neighbors []snapshot.Node) ([]Row, error) {
	if t := f.directive("transform"); t != nil {
		op := ""
		if a := t.arg("op"); a != nil {
			op = a.Value.Str
		}
		if op != "count" {
			return nil, fmt.Errorf("query: unsupported @transform op %q", op)
		}
		n, err := e.countFoldRows(f.Selection, row.Tags, neighbors)
		if err != nil {
			return nil, err
		}
		count := snapshot.Int(int64(n))
		row = row.clone()
		if d := f.directive("tag"); d != nil {
			row.Tags[tagName(d, f.Name)] = count
		}
		if d := f.directive("output"); d != nil {
			row.Outputs[outputName(d, f.Name)] = count
		}
		if d := f.directive("filter"); d != nil {
			keep, err := e.evalFilter(d, count, row)
			if err != nil {
				return nil, err
			}
			if !keep {
				return nil, nil
			}
		}
		return []Row{row}, nil
	}

	lists, err := e.collectFoldOutputs(f.Selection, row.Tags, neighbors)
	if err != nil {
		return nil, err
	}
	row = row.clone()
	for name, vals := range lists {
		row.Outputs[name] = snapshot.StringList(vals)
	}
	return []Row{row}, nil
}

// countFoldRows is the cardinality @transform(op: "count") reports: the
// number of rows the fold's selection subtree would yield across the
// whole bag, after type refinement and nested @filter pruning — not the
// raw neighbor count. This is what makes invariant 4 (fold-count
// semantics) hold: a neighbor that a nested filter or "... on T" prunes
// contributes zero rows, exactly as if it were absent from the bag.
func (e *Evaluator) countFoldRows(sel *SelectionSet, outerTags map[string]snapshot.Value, neighbors []snapshot.Node) (int, error) {
	total := 0
	for _, nb := range neighbors {
		inner := newRow()
		for k, v := range outerTags {
			inner.Tags[k] = v
		}
		subrows, err := e.evalSelectionSet(nb, inner, sel)
		if err != nil {
			return 0, err
		}
		total += len(subrows)
	}
	return total, nil
}

// collectFoldOutputs evaluates sel once per neighbor, with tags inherited
// from outside the fold (visible inward, per rule 2) but a fresh, empty
// output scope (nothing escapes outward except the aggregated lists built
// here), then collects each @output name's rendered value across the bag.
func (e *Evaluator) collectFoldOutputs(sel *SelectionSet, outerTags map[string]snapshot.Value, neighbors []snapshot.Node) (map[string][]string, error) {
	lists := map[string][]string{}
	for _, name := range collectOutputNames(sel) {
		lists[name] = nil // ensure a present-but-empty list when the bag is empty
	}
	for _, nb := range neighbors {
		inner := newRow()
		for k, v := range outerTags {
			inner.Tags[k] = v
		}
		subrows, err := e.evalSelectionSet(nb, inner, sel)
		if err != nil {
			return nil, err
		}
		for _, sub := range subrows {
			for name, val := range sub.Outputs {
				lists[name] = append(lists[name], val.Render())
			}
		}
	}
	return lists, nil
}

func collectOutputNames(sel *SelectionSet) []string {
	outs, _ := collectDescendantNames(sel)
	return outs
}

func collectDescendantNames(sel *SelectionSet) (outputs []string, tags []string) {
	if sel == nil {
		return nil, nil
	}
	for _, f := range sel.Fields {
		if f.IsFragment {
			o, t := collectDescendantNames(f.Selection)
			outputs = append(outputs, o...)
			tags = append(tags, t...)
			continue
		}
		if d := f.directive("output"); d != nil {
			outputs = append(outputs, outputName(d, f.Name))
		}
		if d := f.directive("tag"); d != nil {
			tags = append(tags, tagName(d, f.Name))
		}
		o, t := collectDescendantNames(f.Selection)
		outputs = append(outputs, o...)
		tags = append(tags, t...)
	}
	return outputs, tags
}

// bindNullDescendants implements "absence produces a single row in which
// every descendant @output binds to null" for an @optional edge with no
// matching neighbors (spec.md §4.3.1, §4.3.2 rule 4).
func (e *Evaluator) bindNullDescendants(row Row, sel *SelectionSet) Row {
	row = row.clone()
	outs, tags := collectDescendantNames(sel)
	for _, name := range outs {
		row.Outputs[name] = snapshot.Null
	}
	for _, name := range tags {
		row.Tags[name] = snapshot.Null
	}
	return row
}

func outputName(d *Directive, fallback string) string {
	if a := d.arg("name"); a != nil {
		return a.Value.Str
	}
	return fallback
}

func tagName(d *Directive, fallback string) string {
	if a := d.arg("name"); a != nil {
		return a.Value.Str
	}
	return fallback
}

func (e *Evaluator) evalFilter(d *Directive, val snapshot.Value, row Row) (bool, error) {
	opArg := d.arg("op")
	if opArg == nil {
		return false, fmt.Errorf("query: @filter requires an 'op' argument")
	}
	op := opArg.Value.Str

	var operands []snapshot.Value
	if valueArg := d.arg("value"); valueArg != nil {
		for _, v := range valueArg.Value.List {
			resolved, err := e.resolveValue(v, row)
			if err != nil {
				return false, err
			}
			operands = append(operands, resolved)
		}
	}
	return applyFilter(op, val, operands)
}

func (e *Evaluator) resolveValue(v Value, row Row) (snapshot.Value, error) {
	switch v.Kind {
	case ValArgRef:
		val, ok := e.args[v.Str]
		if !ok {
			return snapshot.Null, fmt.Errorf("query: undefined argument $%s", v.Str)
		}
		return val, nil
	case ValTagRef:
		val, ok := row.Tags[v.Str]
		if !ok {
			return snapshot.Null, fmt.Errorf("query: undefined tag %%%s", v.Str)
		}
		return val, nil
	case ValString:
		return snapshot.String(v.Str), nil
	case ValInt:
		return snapshot.Int(v.Int), nil
	case ValBool:
		return snapshot.Bool(v.Bool), nil
	case ValList:
		strs := make([]string, len(v.List))
		for i, item := range v.List {
			strs[i] = item.Str
		}
		return snapshot.StringList(strs), nil
	default:
		return snapshot.Null, fmt.Errorf("query: unresolvable value kind %v", v.Kind)
	}
}

// applyFilter is the three-valued predicate of spec.md §4.3.2 rule 4: any
// comparison op other than is_null/not_null against a null operand (either
// side) excludes the row rather than erroring.
func applyFilter(op string, val snapshot.Value, operands []snapshot.Value) (bool, error) {
	switch op {
	case "is_null":
		return val.IsNull(), nil
	case "not_null":
		return !val.IsNull(), nil
	}
	if val.IsNull() {
		return false, nil
	}
	switch op {
	case "=":
		if len(operands) != 1 || operands[0].IsNull() {
			return false, nil
		}
		return val.Equal(operands[0]), nil
	case "!=":
		if len(operands) != 1 || operands[0].IsNull() {
			return false, nil
		}
		return !val.Equal(operands[0]), nil
	case "<", "<=", ">", ">=":
		if len(operands) != 1 || operands[0].IsNull() {
			return false, nil
		}
		cmp := val.Compare(operands[0])
		switch op {
		case "<":
			return cmp < 0, nil
		case "<=":
			return cmp <= 0, nil
		case ">":
			return cmp > 0, nil
		default:
			return cmp >= 0, nil
		}
	case "one_of":
		if len(operands) != 1 {
			return false, nil
		}
		for _, s := range operands[0].List() {
			if s == val.Render() {
				return true, nil
			}
		}
		return false, nil
	case "has_substring":
		if len(operands) != 1 || operands[0].IsNull() {
			return false, nil
		}
		return strings.Contains(val.String(), operands[0].String()), nil
	default:
		return false, fmt.Errorf("query: unsupported filter op %q", op)
	}
}
