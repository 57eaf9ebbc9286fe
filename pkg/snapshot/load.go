package snapshot

import (
	"encoding/json"
	"fmt"
)

// SupportedFormatMajor is the highest rustdoc-JSON-shaped format_version
// major version this loader understands. Unknown major versions are
// refused per spec.md §6.1.
const SupportedFormatMajor = 30

// SnapshotLoadError wraps a malformed snapshot document. Fatal for the run.
type SnapshotLoadError struct {
	Path string
	Err  error
}

func (e *SnapshotLoadError) Error() string {
	return fmt.Sprintf("failed to load snapshot %q: %v", e.Path, e.Err)
}

func (e *SnapshotLoadError) Unwrap() error { return e.Err }

// UnsupportedSnapshotVersionError is raised when format_version names an
// unknown major schema version.
type UnsupportedSnapshotVersionError struct {
	FormatVersion int
}

func (e *UnsupportedSnapshotVersionError) Error() string {
	return fmt.Sprintf("unsupported snapshot format_version %d (this build understands up to %d)",
		e.FormatVersion, SupportedFormatMajor)
}

// rawDocument mirrors the on-disk rustdoc-JSON-shaped snapshot (§4.8).
type rawDocument struct {
	Root            string             `json:"root"`
	CrateVersion    *string            `json:"crate_version"`
	IncludesPrivate bool               `json:"includes_private"`
	FormatVersion   int                `json:"format_version"`
	Index           map[string]rawItem `json:"index"`
	Paths           map[string]rawPath `json:"paths"`
}

type rawSpan struct {
	Filename    string `json:"filename"`
	BeginLine   int    `json:"begin_line"`
	BeginColumn int    `json:"begin_column"`
	EndLine     int    `json:"end_line"`
	EndColumn   int    `json:"end_column"`
}

type rawInner struct {
	Struct *struct {
		Kind           string   `json:"kind"`
		FieldsStripped bool     `json:"fields_stripped"`
		Fields         []string `json:"fields"`
	} `json:"struct"`
	Enum *struct {
		VariantsStripped bool     `json:"variants_stripped"`
		Variants         []string `json:"variants"`
	} `json:"enum"`
	StructField *struct{} `json:"struct_field"`
	Variant     *struct {
		Kind string `json:"kind"` // plain | tuple | struct
	} `json:"variant"`
	Function *struct {
		Header rawFnHeader `json:"header"`
	} `json:"function"`
	Method *struct {
		Header rawFnHeader `json:"header"`
	} `json:"method"`
}

type rawFnHeader struct {
	Const  bool `json:"const"`
	Unsafe bool `json:"unsafe"`
	Async  bool `json:"async"`
}

type rawItem struct {
	ID         string   `json:"id"`
	CrateID    string   `json:"crate_id"`
	Name       *string  `json:"name"`
	Docs       *string  `json:"docs"`
	Attrs      []string `json:"attrs"`
	Visibility string   `json:"visibility"`
	Span       *rawSpan `json:"span"`
	Inner      rawInner `json:"inner"`
}

type rawPath struct {
	Path []string `json:"path"`
}

// Load decodes a rustdoc-JSON-shaped snapshot document.
func Load(data []byte) (*Snapshot, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &SnapshotLoadError{Err: err}
	}
	if doc.FormatVersion > SupportedFormatMajor {
		return nil, &UnsupportedSnapshotVersionError{FormatVersion: doc.FormatVersion}
	}

	items := make(map[string]*Item, len(doc.Index))
	for id, raw := range doc.Index {
		it, err := buildItem(id, raw)
		if err != nil {
			return nil, &SnapshotLoadError{Err: err}
		}
		if it != nil {
			items[id] = it
		}
	}

	// Resolve struct field / enum variant ID references into pointers.
	for id, raw := range doc.Index {
		it := items[id]
		if it == nil {
			continue
		}
		if raw.Inner.Struct != nil {
			for _, fid := range raw.Inner.Struct.Fields {
				if f := items[fid]; f != nil {
					it.Fields = append(it.Fields, f)
				}
			}
		}
		if raw.Inner.Enum != nil {
			for _, vid := range raw.Inner.Enum.Variants {
				if v := items[vid]; v != nil {
					it.Variants = append(it.Variants, v)
				}
			}
		}
	}

	// Attach importable paths: one Path node per (id, path) pair recorded
	// in the paths table, matching spec.md §3.1's "Path: multi; each Path
	// = one importable path."
	for id, rp := range doc.Paths {
		it := items[id]
		if it == nil || len(rp.Path) == 0 {
			continue
		}
		it.Paths = append(it.Paths, &PathNode{Segments: rp.Path})
	}

	var crateItems []*Item
	for _, it := range items {
		crateItems = append(crateItems, it)
	}

	return New(&Crate{
		RootID:          ID(doc.Root),
		CrateVersion:    doc.CrateVersion,
		IncludesPrivate: doc.IncludesPrivate,
		FormatVersion:   doc.FormatVersion,
		Items:           crateItems,
	}), nil
}

func buildItem(id string, raw rawItem) (*Item, error) {
	kind, err := kindOf(raw)
	if err != nil {
		// Items the schema doesn't model (e.g. modules, impls) are simply
		// not materialized as Item nodes; they are not an error.
		return nil, nil //nolint:nilerr // unmodeled item kinds are skipped, not failures
	}

	var span *SpanNode
	if raw.Span != nil {
		span = &SpanNode{
			Filename:    raw.Span.Filename,
			BeginLine:   raw.Span.BeginLine,
			BeginColumn: raw.Span.BeginColumn,
			EndLine:     raw.Span.EndLine,
			EndColumn:   raw.Span.EndColumn,
		}
	}

	it := &Item{
		ID:         ID(id),
		Kind:       kind,
		CrateID:    ID(raw.CrateID),
		Name:       raw.Name,
		Docs:       raw.Docs,
		Attrs:      raw.Attrs,
		Visibility: VisibilityLimit(raw.Visibility),
		Span:       span,
	}

	switch {
	case raw.Inner.Struct != nil:
		it.StructType = structTypeOf(raw.Inner.Struct.Kind)
		it.FieldsStripped = raw.Inner.Struct.FieldsStripped
	case raw.Inner.Enum != nil:
		it.VariantsStripped = raw.Inner.Enum.VariantsStripped
	case raw.Inner.Function != nil:
		it.Const, it.Unsafe, it.Async = raw.Inner.Function.Header.Const, raw.Inner.Function.Header.Unsafe, raw.Inner.Function.Header.Async
	case raw.Inner.Method != nil:
		it.Const, it.Unsafe, it.Async = raw.Inner.Method.Header.Const, raw.Inner.Method.Header.Unsafe, raw.Inner.Method.Header.Async
	}

	return it, nil
}

func kindOf(raw rawItem) (string, error) {
	switch {
	case raw.Inner.Struct != nil:
		return KindStruct, nil
	case raw.Inner.StructField != nil:
		return KindStructField, nil
	case raw.Inner.Enum != nil:
		return KindEnum, nil
	case raw.Inner.Variant != nil:
		switch raw.Inner.Variant.Kind {
		case "tuple":
			return KindTupleVariant, nil
		case "struct":
			return KindStructVariant, nil
		default:
			return KindPlainVariant, nil
		}
	case raw.Inner.Function != nil:
		return KindFunction, nil
	case raw.Inner.Method != nil:
		return KindMethod, nil
	default:
		return "", fmt.Errorf("unmodeled item kind for id %q", raw.ID)
	}
}

func structTypeOf(k string) StructType {
	switch k {
	case "tuple":
		return StructTuple
	case "unit":
		return StructUnit
	default:
		return StructPlain
	}
}
