package lint

import (
	"fmt"
	"regexp"

	"github.com/obi1kenobi/semver-check-go/pkg/query"
	"github.com/obi1kenobi/semver-check-go/pkg/snapshot"
)

var templateField = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// renderTemplate substitutes {{field}} with the string form of binding
// field; a missing binding renders as the literal string "None", per
// spec.md §4.4's optional-absent contract.
func renderTemplate(tmpl string, bindings query.Bindings) string {
	return templateField.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := templateField.FindStringSubmatch(m)[1]
		val, ok := bindings[name]
		if !ok {
			return "None"
		}
		return val.Render()
	})
}

// renderedBindings copies a binding row into the Finding.Bindings field
// (§6.3's map<string, scalar|null>), keeping each value typed rather than
// stringifying it — only the per-result message template renders values
// to text.
func renderedBindings(bindings query.Bindings) map[string]snapshot.Value {
	out := make(map[string]snapshot.Value, len(bindings))
	for k, v := range bindings {
		out[k] = v
	}
	return out
}

// convertArguments converts a lint's YAML-decoded arguments map into typed
// scalars usable as $name references in @filter values.
func convertArguments(args map[string]any) (map[string]snapshot.Value, error) {
	out := make(map[string]snapshot.Value, len(args))
	for name, raw := range args {
		val, err := convertScalar(raw)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}
		out[name] = val
	}
	return out, nil
}

func convertScalar(v any) (snapshot.Value, error) {
	switch t := v.(type) {
	case nil:
		return snapshot.Null, nil
	case bool:
		return snapshot.Bool(t), nil
	case int:
		return snapshot.Int(int64(t)), nil
	case int64:
		return snapshot.Int(t), nil
	case string:
		return snapshot.String(t), nil
	case []any:
		strs := make([]string, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return snapshot.Null, fmt.Errorf("list element %d is not a string", i)
			}
			strs[i] = s
		}
		return snapshot.StringList(strs), nil
	default:
		return snapshot.Null, fmt.Errorf("unsupported argument scalar type %T", v)
	}
}
