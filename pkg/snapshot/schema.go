package snapshot

import "fmt"

// UnknownFieldError is raised when a query names a property or edge that
// the concrete type (nor any interface it implements) declares.
type UnknownFieldError struct {
	TypeName, Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("type %q has no field %q", e.TypeName, e.Field)
}

type fieldEntry struct {
	isEdge bool
	scalar func(Node) Value
	edge   func(Node) []Node
}

type typeEntry struct {
	fields     map[string]fieldEntry
	interfaces map[string]bool
}

// registry is the dispatch table keyed on (concrete type name, field name),
// per spec.md §9's design note: "model with a capability registry... do not
// model with inheritance."
var registry = map[string]*typeEntry{}

func register(typeName string, interfaces []string, fields map[string]fieldEntry) {
	te := &typeEntry{fields: fields, interfaces: map[string]bool{}}
	for _, i := range interfaces {
		te.interfaces[i] = true
	}
	registry[typeName] = te
}

// itemField resolves a scalar property common to every Item.
func itemField(name string, fn func(*Item) Value) (string, fieldEntry) {
	return name, fieldEntry{scalar: func(n Node) Value {
		it, ok := n.(*Item)
		if !ok {
			return Null
		}
		return fn(it)
	}}
}

func init() {
	commonItemFields := func() map[string]fieldEntry {
		m := map[string]fieldEntry{}
		name, e := itemField("id", func(it *Item) Value { return String(string(it.ID)) })
		m[name] = e
		name, e = itemField("crate_id", func(it *Item) Value { return String(string(it.CrateID)) })
		m[name] = e
		name, e = itemField("name", func(it *Item) Value {
			if it.Name == nil {
				return Null
			}
			return String(*it.Name)
		})
		m[name] = e
		name, e = itemField("docs", func(it *Item) Value {
			if it.Docs == nil {
				return Null
			}
			return String(*it.Docs)
		})
		m[name] = e
		name, e = itemField("visibility_limit", func(it *Item) Value { return String(string(it.Visibility)) })
		m[name] = e
		name, e = itemField("attrs", func(it *Item) Value { return StringList(it.Attrs) })
		m[name] = e
		m["span"] = fieldEntry{isEdge: true, edge: func(n Node) []Node {
			it, ok := n.(*Item)
			if !ok || it.Span == nil {
				return nil
			}
			return []Node{it.Span}
		}}
		return m
	}

	importableEdge := func(m map[string]fieldEntry) {
		m["path"] = fieldEntry{isEdge: true, edge: func(n Node) []Node {
			it, ok := n.(*Item)
			if !ok {
				return nil
			}
			out := make([]Node, len(it.Paths))
			for i, p := range it.Paths {
				out[i] = p
			}
			return out
		}}
	}

	structFields := commonItemFields()
	structFields["struct_type"] = fieldEntry{scalar: func(n Node) Value {
		it := n.(*Item)
		return String(string(it.StructType))
	}}
	structFields["fields_stripped"] = fieldEntry{scalar: func(n Node) Value {
		return Bool(n.(*Item).FieldsStripped)
	}}
	structFields["field"] = fieldEntry{isEdge: true, edge: func(n Node) []Node {
		it := n.(*Item)
		out := make([]Node, len(it.Fields))
		for i, f := range it.Fields {
			out[i] = f
		}
		return out
	}}
	importableEdge(structFields)
	register(KindStruct, []string{"Item", "Importable"}, structFields)

	fieldFields := commonItemFields()
	register(KindStructField, []string{"Item"}, fieldFields)

	enumFields := commonItemFields()
	enumFields["variants_stripped"] = fieldEntry{scalar: func(n Node) Value {
		return Bool(n.(*Item).VariantsStripped)
	}}
	enumFields["variant"] = fieldEntry{isEdge: true, edge: func(n Node) []Node {
		it := n.(*Item)
		out := make([]Node, len(it.Variants))
		for i, v := range it.Variants {
			out[i] = v
		}
		return out
	}}
	importableEdge(enumFields)
	register(KindEnum, []string{"Item", "Importable"}, enumFields)

	for _, k := range []string{KindPlainVariant, KindTupleVariant, KindStructVariant} {
		register(k, []string{"Item", "Variant"}, commonItemFields())
	}

	fnLikeFields := func() map[string]fieldEntry {
		m := commonItemFields()
		m["const"] = fieldEntry{scalar: func(n Node) Value { return Bool(n.(*Item).Const) }}
		m["unsafe"] = fieldEntry{scalar: func(n Node) Value { return Bool(n.(*Item).Unsafe) }}
		m["async"] = fieldEntry{scalar: func(n Node) Value { return Bool(n.(*Item).Async) }}
		return m
	}

	functionFields := fnLikeFields()
	importableEdge(functionFields)
	register(KindFunction, []string{"Item", "FunctionLike", "Importable"}, functionFields)

	register(KindMethod, []string{"Item", "FunctionLike"}, fnLikeFields())

	register("Span", nil, map[string]fieldEntry{
		"filename":     {scalar: func(n Node) Value { return String(n.(*SpanNode).Filename) }},
		"begin_line":   {scalar: func(n Node) Value { return Int(int64(n.(*SpanNode).BeginLine)) }},
		"begin_column": {scalar: func(n Node) Value { return Int(int64(n.(*SpanNode).BeginColumn)) }},
		"end_line":     {scalar: func(n Node) Value { return Int(int64(n.(*SpanNode).EndLine)) }},
		"end_column":   {scalar: func(n Node) Value { return Int(int64(n.(*SpanNode).EndColumn)) }},
	})

	register("Path", nil, map[string]fieldEntry{
		"path": {scalar: func(n Node) Value { return StringList(n.(*PathNode).Segments) }},
	})

	register("Crate", nil, map[string]fieldEntry{
		"root_id":          {scalar: func(n Node) Value { return String(string(n.(*Crate).RootID)) }},
		"crate_version":    {scalar: func(n Node) Value {
			c := n.(*Crate)
			if c.CrateVersion == nil {
				return Null
			}
			return String(*c.CrateVersion)
		}},
		"includes_private": {scalar: func(n Node) Value { return Bool(n.(*Crate).IncludesPrivate) }},
		"format_version":   {scalar: func(n Node) Value { return Int(int64(n.(*Crate).FormatVersion)) }},
		"item": {isEdge: true, edge: func(n Node) []Node {
			c := n.(*Crate)
			out := make([]Node, len(c.Items))
			for i, it := range c.Items {
				out[i] = it
			}
			return out
		}},
	})
}

// edgeTargets is a static, independent-of-evaluation declaration of the
// possible concrete destination types of every edge, used only by the
// query package's static validator (pkg/query's Schema interface) to catch
// unknown nested field names before evaluation, per spec.md §4.3.3's
// static-error requirement. The dynamic resolvers above never consult it.
var edgeTargets = map[string]map[string][]string{
	KindStruct: {
		"span":  {"Span"},
		"field": {KindStructField},
		"path":  {"Path"},
	},
	KindStructField: {
		"span": {"Span"},
	},
	KindEnum: {
		"span":    {"Span"},
		"variant": {KindPlainVariant, KindTupleVariant, KindStructVariant},
		"path":    {"Path"},
	},
	KindPlainVariant:  {"span": {"Span"}},
	KindTupleVariant:  {"span": {"Span"}},
	KindStructVariant: {"span": {"Span"}},
	KindFunction: {
		"span": {"Span"},
		"path": {"Path"},
	},
	KindMethod: {
		"span": {"Span"},
	},
	"Crate": {
		"item": {KindStruct, KindStructField, KindEnum, KindPlainVariant, KindTupleVariant, KindStructVariant, KindFunction, KindMethod},
	},
}

// EdgeTargets reports the possible concrete types an edge may resolve to.
// A nil/empty result for a field that LookupField reports as an edge means
// the caller should not attempt static validation of its nested selection.
func EdgeTargets(typeName, field string) []string {
	return edgeTargets[typeName][field]
}

// TypeOf returns the concrete schema type name of a node.
func TypeOf(n Node) string { return n.TypeName() }

// Implements is the static schema check: does concrete type implement the
// named capability ("Item", "Importable", "FunctionLike", "Variant")?
// A type always implements itself.
func Implements(typeName, capability string) bool {
	if typeName == capability {
		return true
	}
	te, ok := registry[typeName]
	if !ok {
		return false
	}
	return te.interfaces[capability]
}

// LookupField reports whether typeName declares field (directly; this
// schema has no field name collisions across interfaces so no further
// walk is needed beyond the concrete type's own merged map) and whether
// it is an edge or a scalar property.
func LookupField(typeName, field string) (isEdge bool, ok bool) {
	te, found := registry[typeName]
	if !found {
		return false, false
	}
	fe, found := te.fields[field]
	if !found {
		return false, false
	}
	return fe.isEdge, true
}

// Property resolves a scalar property by declared name. It returns an
// UnknownFieldError if the type has no such property.
func Property(n Node, name string) (Value, error) {
	te, ok := registry[TypeOf(n)]
	if !ok {
		return Null, &UnknownFieldError{TypeName: TypeOf(n), Field: name}
	}
	fe, ok := te.fields[name]
	if !ok || fe.isEdge {
		return Null, &UnknownFieldError{TypeName: TypeOf(n), Field: name}
	}
	return fe.scalar(n), nil
}

// Neighbors resolves an outgoing edge by declared name. An empty sequence
// (not an error) means the edge exists but currently has no targets.
func Neighbors(n Node, name string) ([]Node, error) {
	te, ok := registry[TypeOf(n)]
	if !ok {
		return nil, &UnknownFieldError{TypeName: TypeOf(n), Field: name}
	}
	fe, ok := te.fields[name]
	if !ok || !fe.isEdge {
		return nil, &UnknownFieldError{TypeName: TypeOf(n), Field: name}
	}
	return fe.edge(n), nil
}
