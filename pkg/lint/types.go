// Package lint is the Lint Catalogue (LC): lints are data, not code. A
// catalogue is loaded once from an embedded YAML directory, each lint's
// query is parsed and statically validated up front, and the driver runs
// every lint's query against a DiffRoot to produce Findings.
package lint

import (
	"github.com/obi1kenobi/semver-check-go/pkg/semver"
	"github.com/obi1kenobi/semver-check-go/pkg/snapshot"
)

// Lint is one breaking-change pattern, specified as data per spec.md §4.4.
type Lint struct {
	ID                     string         `yaml:"id"`
	HumanReadableName      string         `yaml:"human_readable_name"`
	Description            string         `yaml:"description"`
	ReferenceLink          string         `yaml:"reference_link,omitempty"`
	RequiredUpdate         string         `yaml:"required_update"`
	Query                  string         `yaml:"query"`
	Arguments              map[string]any `yaml:"arguments,omitempty"`
	ErrorMessage           string         `yaml:"error_message"`
	PerResultErrorTemplate string         `yaml:"per_result_error_template"`
}

// Finding is one breaking-change occurrence, per spec.md §4.4/§6.3.
// Bindings carries each output binding as a typed scalar or null
// (spec.md §6.3: `bindings: map<string, scalar|null>`) — Message is the
// only field that renders values to text.
type Finding struct {
	LintID         string                    `json:"lint_id"`
	RequiredUpdate semver.Bump               `json:"required_update"`
	Message        string                    `json:"message"`
	Bindings       map[string]snapshot.Value `json:"bindings"`
}

// Summary is the driver's release-gating output (§6.3): counts per lint
// and the highest required update across every non-empty lint.
type Summary struct {
	RunID           string              `json:"run_id"`
	TotalFindings   int                 `json:"total_findings"`
	CountByLint     map[string]int      `json:"count_by_lint"`
	HighestRequired semver.Bump         `json:"highest_required"`
	ParseErrors     []*LintParseError   `json:"parse_errors,omitempty"`
	StaticErrors    []*QueryStaticError `json:"static_errors,omitempty"`
}
