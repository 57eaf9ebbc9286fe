package query

import "fmt"

// Validate runs the static checks required before a query may be
// evaluated (spec.md §4.3.3): unknown field names, directives placed on
// the wrong kind of field, and @filter value references to tags that are
// not yet in scope at that position in document order (rule 2).
//
// Field-name checking is best-effort: an edge whose declared destination
// types (Schema.EdgeTargets) come back empty is treated permissively,
// since this schema has no edge that is genuinely untyped — an empty
// result only ever means a gap in the target declarations, not a query
// error, and this validator would rather under- than over-reject.
func Validate(doc *Document, schema Schema, rootType string) error {
	return validateSelection([]string{rootType}, doc.Selection, map[string]bool{}, schema)
}

func validateSelection(typeNames []string, sel *SelectionSet, tags map[string]bool, schema Schema) error {
	for _, f := range sel.Fields {
		if err := validateField(typeNames, f, tags, schema); err != nil {
			return err
		}
	}
	return nil
}

func validateField(typeNames []string, f *Field, tags map[string]bool, schema Schema) error {
	if f.IsFragment {
		return validateSelection([]string{f.FragmentType}, f.Selection, tags, schema)
	}

	isEdge, found := lookupAny(typeNames, f.Name, schema)
	if len(typeNames) > 0 && !found {
		return &StaticError{Pos: f.Pos, Msg: fmt.Sprintf("unknown field %q on type %v", f.Name, typeNames)}
	}

	hasFold := f.directive("fold") != nil
	hasOptional := f.directive("optional") != nil
	hasRecurse := f.directive("recurse") != nil
	hasTransform := f.directive("transform") != nil
	hasTag := f.directive("tag") != nil
	hasFilter := f.directive("filter") != nil

	if found && !isEdge && (hasFold || hasOptional || hasRecurse) {
		return &StaticError{Pos: f.Pos, Msg: fmt.Sprintf("@fold/@optional/@recurse only apply to edge fields, %q is a scalar", f.Name)}
	}
	if hasTransform && !hasFold {
		return &StaticError{Pos: f.Pos, Msg: "@transform requires @fold"}
	}
	if hasOptional && hasFold {
		return &StaticError{Pos: f.Pos, Msg: "@optional and @fold are mutually exclusive: a fold already yields exactly one row when empty"}
	}

	if hasFilter {
		d := f.directive("filter")
		opArg := d.arg("op")
		if opArg == nil {
			return &StaticError{Pos: d.Pos, Msg: "@filter requires an 'op' argument"}
		}
		op := opArg.Value.Str
		va := d.arg("value")
		operandCount := 0
		if va != nil {
			operandCount = len(va.Value.List)
		}
		if arity, ok := filterArity[op]; ok && operandCount != arity {
			return &StaticError{Pos: d.Pos, Msg: fmt.Sprintf("@filter op %q takes %d operand(s), got %d", op, arity, operandCount)}
		}
		if va != nil {
			for _, v := range va.Value.List {
				if v.Kind == ValTagRef && !tags[v.Str] {
					return &StaticError{Pos: d.Pos, Msg: fmt.Sprintf("@filter references tag %%%s before it is defined", v.Str)}
				}
			}
		}
	}

	if hasTag {
		tags[tagName(f.directive("tag"), f.Name)] = true
	}

	if f.Selection == nil {
		return nil
	}

	var targets []string
	for _, tn := range typeNames {
		targets = append(targets, schema.EdgeTargets(tn, f.Name)...)
	}
	targets = dedupStrings(targets)

	childTags := tags
	if hasFold {
		childTags = cloneTagSet(tags)
	}
	return validateSelection(targets, f.Selection, childTags, schema)
}

// filterArity is the required operand count per @filter op (spec.md
// §4.3.3): an op given the wrong number of operands is ill-typed and must
// fail validation rather than silently evaluate to "no match" at runtime.
var filterArity = map[string]int{
	"is_null":       0,
	"not_null":      0,
	"=":             1,
	"!=":            1,
	"<":             1,
	"<=":            1,
	">":             1,
	">=":            1,
	"one_of":        1,
	"has_substring": 1,
}

func lookupAny(typeNames []string, field string, schema Schema) (isEdge bool, found bool) {
	for _, tn := range typeNames {
		if e, ok := schema.LookupField(tn, field); ok {
			return e, true
		}
	}
	return false, false
}

func cloneTagSet(tags map[string]bool) map[string]bool {
	c := make(map[string]bool, len(tags))
	for k, v := range tags {
		c[k] = v
	}
	return c
}

func dedupStrings(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
