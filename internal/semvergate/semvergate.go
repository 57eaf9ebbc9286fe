// Package semvergate applies the optional optimization described in
// original_source/src/check_release.rs's run_check_release: when the actual
// version bump between baseline and current is already known (both
// crate_version fields are present and parse as valid SemVer), any lint
// whose required_update is already satisfied by that actual bump can be
// skipped without evaluating its query at all.
//
// A lint skipped here is not evaluated, so it contributes no findings to
// the run summary: the actual bump already meets or exceeds what the lint
// would require. Because check's exit code is computed from the findings
// alone, a skipped lint can never fail the run.
package semvergate

import (
	"github.com/obi1kenobi/semver-check-go/pkg/lint"
	"github.com/obi1kenobi/semver-check-go/pkg/semver"
)

// Decision records, for one lint, whether it was skipped by the gate.
type Decision struct {
	LintID  string
	Skipped bool
}

// Gate classifies baseline/current crate versions once per run and filters
// a lint set down to the ones still worth evaluating.
type Gate struct {
	actual  semver.Bump
	known   bool
	verbose bool
}

// New builds a Gate from the two crates' version strings, either of which
// may be nil (unversioned or absent baseline). If the actual bump cannot be
// determined, the gate passes every lint through unskipped, matching
// get_semver_version_change's "assume no change" fallback — translated
// here as "assume we can't skip anything."
func New(baselineVersion, currentVersion *string, verbose bool) *Gate {
	actual, ok := semver.ClassifyChange(baselineVersion, currentVersion)
	return &Gate{actual: actual, known: ok, verbose: verbose}
}

// Filter splits lints into the ones to run and the ones the gate skipped.
// A lint is skipped only when the actual bump is known and already
// satisfies the lint's required_update.
func (g *Gate) Filter(lints []*lint.Lint) (toRun []*lint.Lint, skipped []Decision) {
	if !g.known {
		return lints, nil
	}
	for _, l := range lints {
		required, ok := semver.ParseRequiredUpdate(l.RequiredUpdate)
		if ok && semver.Satisfied(required, g.actual) {
			skipped = append(skipped, Decision{LintID: l.ID, Skipped: true})
			continue
		}
		toRun = append(toRun, l)
	}
	return toRun, skipped
}

// ActualBump reports the classified bump and whether it was determined at
// all.
func (g *Gate) ActualBump() (semver.Bump, bool) { return g.actual, g.known }
