package lint

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/obi1kenobi/semver-check-go/pkg/diffroot"
	"github.com/obi1kenobi/semver-check-go/pkg/query"
	"github.com/obi1kenobi/semver-check-go/pkg/semver"
	"github.com/obi1kenobi/semver-check-go/pkg/snapshot"
)

// compiledLint is a lint whose query has already been parsed and
// statically validated, ready to evaluate against any DiffRoot.
type compiledLint struct {
	lint     *Lint
	doc      *query.Document
	args     map[string]snapshot.Value
	required semver.Bump
}

// Driver runs every lint in a Registry against one DiffRoot. Each lint
// owns an isolated Evaluator; running lints concurrently via errgroup is
// safe per spec.md §5 since snapshots are read-only and shared freely.
//
// Findings from multiple baseline matches to the same current-absent
// result are intentionally not deduplicated — spec.md §9's third Open
// Question resolves this as the host's concern, not the driver's.
type Driver struct {
	registry *Registry
	schema   query.Schema
	logger   *slog.Logger
}

// NewDriver builds a Driver over a Registry, logging to a discard handler.
func NewDriver(registry *Registry) *Driver {
	return NewDriverWithLogger(registry, nil)
}

// NewDriverWithLogger builds a Driver that logs compile/run progress through
// logger. A nil logger falls back to a discard handler, matching the
// optional-logger convention used elsewhere in this module.
func NewDriverWithLogger(registry *Registry, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Driver{registry: registry, schema: diffroot.Schema{}, logger: logger}
}

func (d *Driver) compile(l *Lint) (*compiledLint, error) {
	doc, err := query.Parse(l.Query)
	if err != nil {
		return nil, err
	}
	if err := query.Validate(doc, d.schema, diffroot.RootTypeName); err != nil {
		if se, ok := err.(*query.StaticError); ok {
			return nil, &QueryStaticError{LintID: l.ID, Pos: se.Pos, Err: se}
		}
		return nil, err
	}
	args, err := convertArguments(l.Arguments)
	if err != nil {
		return nil, err
	}
	required, ok := semver.ParseRequiredUpdate(l.RequiredUpdate)
	if !ok {
		return nil, fmt.Errorf("unknown required_update %q", l.RequiredUpdate)
	}
	return &compiledLint{lint: l, doc: doc, args: args, required: required}, nil
}

func (d *Driver) runOne(c *compiledLint, root *diffroot.Root) ([]Finding, error) {
	ev := query.NewEvaluator(d.schema, c.args)
	rows, err := ev.Evaluate(c.doc, root)
	if err != nil {
		return nil, err
	}
	findings := make([]Finding, len(rows))
	for i, b := range rows {
		findings[i] = Finding{
			LintID:         c.lint.ID,
			RequiredUpdate: c.required,
			Message:        renderTemplate(c.lint.PerResultErrorTemplate, b),
			Bindings:       renderedBindings(b),
		}
	}
	return findings, nil
}

type runSlot struct {
	findings  []Finding
	parseErr  *LintParseError
	staticErr *QueryStaticError
}

// Run evaluates every registered lint against root. A lint that fails to
// parse or fails static validation is skipped and recorded in the
// returned Summary (§7); a true dynamic error aborts the run early, but
// spec.md §4.3.3 expects none to occur under normal traversal.
func (d *Driver) Run(ctx context.Context, root *diffroot.Root, runID string) ([]Finding, Summary, error) {
	if err := diffroot.Validate(root); err != nil {
		return nil, Summary{}, err
	}

	lints := d.registry.All()
	slots := make([]runSlot, len(lints))

	d.logger.Debug("starting run", "run_id", runID, "lint_count", len(lints))

	g, _ := errgroup.WithContext(ctx)
	for i, l := range lints {
		i, l := i, l
		g.Go(func() error {
			compiled, err := d.compile(l)
			if err != nil {
				if se, ok := err.(*QueryStaticError); ok {
					d.logger.Debug("lint skipped: static error", "lint_id", l.ID, "error", se.Error())
					slots[i].staticErr = se
					return nil
				}
				d.logger.Debug("lint skipped: parse error", "lint_id", l.ID, "error", err.Error())
				slots[i].parseErr = &LintParseError{LintID: l.ID, Err: err}
				return nil
			}
			findings, err := d.runOne(compiled, root)
			if err != nil {
				return err
			}
			d.logger.Debug("lint evaluated", "lint_id", l.ID, "findings", len(findings))
			slots[i].findings = findings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Summary{}, err
	}

	summary := Summary{RunID: runID, CountByLint: map[string]int{}}
	var all []Finding
	for i, l := range lints {
		s := slots[i]
		switch {
		case s.parseErr != nil:
			summary.ParseErrors = append(summary.ParseErrors, s.parseErr)
		case s.staticErr != nil:
			summary.StaticErrors = append(summary.StaticErrors, s.staticErr)
		case len(s.findings) > 0:
			summary.CountByLint[l.ID] = len(s.findings)
			summary.TotalFindings += len(s.findings)
			if required, ok := semver.ParseRequiredUpdate(l.RequiredUpdate); ok && required > summary.HighestRequired {
				summary.HighestRequired = required
			}
			all = append(all, s.findings...)
		}
	}
	d.logger.Debug("run complete", "run_id", runID, "total_findings", summary.TotalFindings, "required_update", summary.HighestRequired.String())
	return all, summary, nil
}
