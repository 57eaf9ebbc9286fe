package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obi1kenobi/semver-check-go/pkg/diffroot"
	"github.com/obi1kenobi/semver-check-go/pkg/query"
	"github.com/obi1kenobi/semver-check-go/pkg/snapshot"
)

func runOn(t *testing.T, src string, root snapshot.Node, args map[string]snapshot.Value) []query.Bindings {
	t.Helper()
	doc, err := query.Parse(src)
	require.NoError(t, err)
	require.NoError(t, query.Validate(doc, diffroot.Schema{}, diffroot.TypeOf(root)))

	ev := query.NewEvaluator(diffroot.Schema{}, args)
	rows, err := ev.Evaluate(doc, root)
	require.NoError(t, err)
	return rows
}

func crateWith(items ...*snapshot.Item) *snapshot.Crate {
	return &snapshot.Crate{RootID: "0", FormatVersion: snapshot.SupportedFormatMajor, Items: items}
}

func namedEnum(name string, vis snapshot.VisibilityLimit) *snapshot.Item {
	return &snapshot.Item{Kind: snapshot.KindEnum, Name: &name, Visibility: vis}
}

func namedFunction(name string, vis snapshot.VisibilityLimit) *snapshot.Item {
	return &snapshot.Item{Kind: snapshot.KindFunction, Name: &name, Visibility: vis}
}

// Invariant 4: fold-count semantics reflect rows surviving the fold's
// nested type refinement and filters, not the raw neighbor count.
func TestFoldCountReflectsFilteredRows(t *testing.T) {
	const src = `
{
  item @fold @transform(op: "count") @output(name: "n") {
    ... on Enum {
      visibility_limit @filter(op: "=", value: [$public])
    }
  }
}
`
	crate := crateWith(
		namedEnum("A", snapshot.VisibilityPublic),
		namedEnum("B", snapshot.VisibilityPublic),
		namedEnum("C", snapshot.VisibilityCrate),
		namedFunction("D", snapshot.VisibilityPublic),
	)
	rows := runOn(t, src, crate, map[string]snapshot.Value{"public": snapshot.String("public")})
	require.Len(t, rows, 1)
	assert.Equal(t, snapshot.Int(2), rows[0]["n"])
}

func TestFoldCountIsZeroWhenBagIsEmpty(t *testing.T) {
	const src = `
{
  item @fold @transform(op: "count") @output(name: "n") {
    ... on Enum {
      visibility_limit @filter(op: "=", value: [$public])
    }
  }
}
`
	crate := crateWith()
	rows := runOn(t, src, crate, map[string]snapshot.Value{"public": snapshot.String("public")})
	require.Len(t, rows, 1)
	assert.Equal(t, snapshot.Int(0), rows[0]["n"])
}

// Invariant 5: an absent @optional edge binds null in every output its
// selection dominates, rather than dropping the row.
func TestOptionalAbsenceBindsNull(t *testing.T) {
	const src = `
{
  item {
    ... on Enum {
      name @output
      span @optional {
        filename @output(name: "span_filename")
        begin_line @output(name: "span_begin_line")
      }
    }
  }
}
`
	crate := crateWith(namedEnum("Foo", snapshot.VisibilityPublic))
	rows := runOn(t, src, crate, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, snapshot.String("Foo"), rows[0]["name"])
	assert.True(t, rows[0]["span_filename"].IsNull())
	assert.True(t, rows[0]["span_begin_line"].IsNull())
}

func TestOptionalPresenceBindsActualValues(t *testing.T) {
	const src = `
{
  item {
    ... on Enum {
      name @output
      span @optional {
        filename @output(name: "span_filename")
      }
    }
  }
}
`
	crate := crateWith(&snapshot.Item{
		Kind: snapshot.KindEnum, Name: strp("Foo"), Visibility: snapshot.VisibilityPublic,
		Span: &snapshot.SpanNode{Filename: "src/lib.rs", BeginLine: 3},
	})
	rows := runOn(t, src, crate, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, snapshot.String("src/lib.rs"), rows[0]["span_filename"])
}

// Invariant 6: a value bound via @tag and later read back via %name in a
// @filter round-trips without transformation.
func TestTagEqualityRoundTrip(t *testing.T) {
	const src = `
{
  item {
    ... on Enum {
      name @tag(name: "n") @output
    }
  }
}
`
	crate := crateWith(namedEnum("Foo", snapshot.VisibilityPublic))
	rows := runOn(t, src, crate, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, snapshot.String("Foo"), rows[0]["name"])

	// The tag filter variant: one row names the tag, a sibling fold counts
	// items whose name equals that tag's value read back via %n, and the row
	// survives only if exactly one item matches.
	const matchSrc = `
{
  item {
    ... on Enum {
      name @tag(name: "n") @output
    }
  }
  item @fold @transform(op: "count") @filter(op: "=", value: [$one]) {
    ... on Enum {
      name @filter(op: "=", value: [%n])
    }
  }
}
`
	sameRows := runOn(t, matchSrc, crate, map[string]snapshot.Value{"one": snapshot.Int(1)})
	require.Equal(t, rows, sameRows)
}

func TestTagReferencedByLaterFilter(t *testing.T) {
	const src = `
{
  item {
    ... on Enum {
      name @tag(name: "n")
      visibility_limit @filter(op: "=", value: [%n])
    }
  }
}
`
	// The enum is named "public", so the tag captured from name equals the
	// visibility_limit value: the defined tag resolves without error and the
	// filter keeps the row.
	crate := crateWith(namedEnum("public", snapshot.VisibilityPublic))
	rows := runOn(t, src, crate, nil)
	assert.Len(t, rows, 1) // name == "public" == visibility_limit value
}

// Invariant 1: determinism — evaluating the same document against the same
// root twice yields identical results.
func TestEvaluationIsDeterministic(t *testing.T) {
	const src = `
{
  item {
    ... on Enum {
      name @output
      visibility_limit @output(name: "vis")
    }
  }
}
`
	crate := crateWith(
		namedEnum("A", snapshot.VisibilityPublic),
		namedEnum("B", snapshot.VisibilityCrate),
	)
	first := runOn(t, src, crate, nil)
	second := runOn(t, src, crate, nil)
	assert.Equal(t, first, second)
}

func strp(s string) *string { return &s }
