package snapshot

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies which of the scalar shapes a Value carries.
type Kind int

const (
	// KindNull marks a value declared optional and currently absent.
	KindNull Kind = iota
	KindBool
	KindInt
	KindString
	KindStringList
)

// Value is the only scalar shape properties(), @output, @tag and @filter
// ever operate on: boolean, integer, string, string list, or null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
	list []string
}

// Null is the value a declared-optional, absent property resolves to.
var Null = Value{kind: KindNull}

func Bool(b bool) Value           { return Value{kind: KindBool, b: b} }
func Int(i int64) Value           { return Value{kind: KindInt, i: i} }
func String(s string) Value       { return Value{kind: KindString, s: s} }
func StringList(l []string) Value { return Value{kind: KindStringList, list: l} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() bool       { return v.b }
func (v Value) Int() int64       { return v.i }
func (v Value) String() string   { return v.s }
func (v Value) List() []string   { return v.list }

// Render renders the value for message-template substitution. A null value
// renders as the literal string "None", matching the optional-absent
// contract (spec.md §4.4).
func (v Value) Render() string {
	switch v.kind {
	case KindNull:
		return "None"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindString:
		return v.s
	case KindStringList:
		out := "["
		for i, s := range v.list {
			if i > 0 {
				out += ", "
			}
			out += s
		}
		return out + "]"
	default:
		return ""
	}
}

// Equal implements the "=" filter operator. Two null values are never equal
// — callers must use is_null/not_null for null checks (spec.md §4.3.1).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindString:
		return v.s == other.s
	case KindStringList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != other.list[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare implements the ordering filter operators. Only defined for ints;
// callers must not call it on other kinds.
func (v Value) Compare(other Value) int {
	switch {
	case v.i < other.i:
		return -1
	case v.i > other.i:
		return 1
	default:
		return 0
	}
}

// MarshalJSON encodes a Value as its typed JSON scalar — null, bool,
// number, string, or array — per spec.md §6.3's
// `bindings: map<string, scalar|null>` contract. Findings are rendered to
// JSON through this, not through Render, so a null binding is
// distinguishable from the literal string "None" and an int binding stays
// a number.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindInt:
		return json.Marshal(v.i)
	case KindString:
		return json.Marshal(v.s)
	case KindStringList:
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a Value from its typed JSON scalar form, the
// inverse of MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Null
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = Bool(b)
		return nil
	}
	var i int64
	if err := json.Unmarshal(data, &i); err == nil {
		*v = Int(i)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = StringList(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = String(s)
		return nil
	}
	return fmt.Errorf("snapshot: cannot unmarshal %s into Value", data)
}
