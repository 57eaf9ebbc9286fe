package query

// Document is a parsed query: a single top-level selection set against the
// synthetic diff root.
type Document struct {
	Selection *SelectionSet
}

// SelectionSet is an ordered list of sibling fields, evaluated in document
// order — the ordering that governs tag visibility (spec.md §4.3.2 rule 2).
type SelectionSet struct {
	Fields []*Field
}

// Field is either a named field (scalar property or edge) or an inline
// type refinement ("... on T").
type Field struct {
	Pos Position

	IsFragment   bool
	FragmentType string // set when IsFragment

	Name       string // set when !IsFragment
	Directives []*Directive
	Selection  *SelectionSet // nil for a scalar leaf field
}

// Directive is one of @output, @tag, @filter, @optional, @recurse, @fold,
// @transform attached to a Field.
type Directive struct {
	Pos  Position
	Name string
	Args []*Argument
}

func (f *Field) directive(name string) *Directive {
	for _, d := range f.Directives {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Argument is one name:value pair inside a directive's argument list.
type Argument struct {
	Name  string
	Value Value
}

func (d *Directive) arg(name string) *Argument {
	for _, a := range d.Args {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// ValueKind identifies the shape of a literal or reference in query text.
type ValueKind int

const (
	ValString ValueKind = iota
	ValInt
	ValBool
	ValList
	ValArgRef // $name
	ValTagRef // %name
)

// Value is a literal or a reference appearing as a directive argument.
type Value struct {
	Kind ValueKind
	Str  string
	Int  int64
	Bool bool
	List []Value
}
