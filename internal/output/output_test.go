package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obi1kenobi/semver-check-go/pkg/lint"
	"github.com/obi1kenobi/semver-check-go/pkg/semver"
	"github.com/obi1kenobi/semver-check-go/pkg/snapshot"
)

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeJSON, ParseMode("json"))
	assert.Equal(t, ModeText, ParseMode("text"))
	assert.Equal(t, ModeText, ParseMode("anything-else"))
	assert.Equal(t, ModeText, ParseMode(""))
}

func TestRenderRunTextNoFindings(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, ModeText)
	err := r.RenderRun(RunResult{Summary: lint.Summary{}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no breaking changes detected")
}

func TestRenderRunTextWithFindings(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, ModeText)
	res := RunResult{
		Findings: []lint.Finding{
			{LintID: "enum_missing", RequiredUpdate: semver.Major, Message: "enum Foo is missing"},
		},
		Summary: lint.Summary{
			TotalFindings:   1,
			HighestRequired: semver.Major,
		},
		ActualBump: semver.Major,
		BumpKnown:  true,
	}
	require.NoError(t, r.RenderRun(res))

	out := buf.String()
	assert.Contains(t, out, "enum_missing")
	assert.Contains(t, out, "enum Foo is missing")
	assert.Contains(t, out, "total findings: 1")
	assert.Contains(t, out, "actual version change")
}

func TestRenderRunTextVerboseShowsSkippedLints(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, ModeText)
	res := RunResult{
		Summary:       lint.Summary{},
		Verbose:       true,
		SkippedByGate: []string{"enum_missing"},
	}
	require.NoError(t, r.RenderRun(res))
	assert.Contains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), "enum_missing")
}

func TestRenderRunJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, ModeJSON)
	res := RunResult{
		Findings: []lint.Finding{{
			LintID:         "enum_missing",
			RequiredUpdate: semver.Major,
			Bindings: map[string]snapshot.Value{
				"name":            snapshot.String("Foo"),
				"span_begin_line": snapshot.Int(10),
				"span_filename":   snapshot.Null,
			},
		}},
		Summary: lint.Summary{TotalFindings: 1},
	}
	require.NoError(t, r.RenderRun(res))

	// Bindings must serialize as typed JSON scalars, not stringified
	// values — a null binding stays `null`, an int stays a number.
	assert.JSONEq(t, `{
		"name": "Foo",
		"span_begin_line": 10,
		"span_filename": null
	}`, extractBindingsJSON(t, buf.Bytes()))

	var decoded RunResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.Summary.TotalFindings)
	require.Len(t, decoded.Findings, 1)
	assert.Equal(t, "enum_missing", decoded.Findings[0].LintID)
	assert.Equal(t, snapshot.String("Foo"), decoded.Findings[0].Bindings["name"])
	assert.Equal(t, snapshot.Int(10), decoded.Findings[0].Bindings["span_begin_line"])
	assert.True(t, decoded.Findings[0].Bindings["span_filename"].IsNull())
}

func extractBindingsJSON(t *testing.T, data []byte) string {
	t.Helper()
	var raw struct {
		Findings []struct {
			Bindings json.RawMessage `json:"bindings"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw.Findings, 1)
	return string(raw.Findings[0].Bindings)
}

func TestRenderLintsText(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, ModeText)
	lints := []*lint.Lint{
		{ID: "enum_missing", RequiredUpdate: "Major", HumanReadableName: "public enum removed or renamed"},
	}
	require.NoError(t, r.RenderLints(lints))

	out := buf.String()
	assert.True(t, strings.Contains(out, "enum_missing"))
	assert.True(t, strings.Contains(out, "public enum removed or renamed"))
}

func TestRenderLintsJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, ModeJSON)
	lints := []*lint.Lint{{ID: "enum_missing", RequiredUpdate: "Major"}}
	require.NoError(t, r.RenderLints(lints))

	var decoded []*lint.Lint
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "enum_missing", decoded[0].ID)
}

func TestRenderLintDetailText(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, ModeText)
	l := &lint.Lint{
		ID:                "enum_missing",
		HumanReadableName: "public enum removed or renamed",
		Description:       "An enum disappeared.",
		RequiredUpdate:    "Major",
		Query:             "{ baseline { item { ... on Enum { name } } } }",
	}
	require.NoError(t, r.RenderLintDetail(l))

	out := buf.String()
	assert.Contains(t, out, "enum_missing")
	assert.Contains(t, out, "An enum disappeared.")
	assert.Contains(t, out, "... on Enum")
}
