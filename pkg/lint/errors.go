package lint

import (
	"fmt"

	"github.com/obi1kenobi/semver-check-go/pkg/query"
)

// LintParseError wraps a malformed lint: a bad query, a missing required
// field, an unparsable required_update. Per spec.md §7, the driver skips
// this lint and continues with the others.
type LintParseError struct {
	LintID string
	Err    error
}

func (e *LintParseError) Error() string {
	return fmt.Sprintf("lint %q: %v", e.LintID, e.Err)
}

func (e *LintParseError) Unwrap() error { return e.Err }

// QueryStaticError wraps a lint whose query fails static validation:
// unknown field/type, or a tag referenced before it is in scope. Treated
// like LintParseError (§7).
type QueryStaticError struct {
	LintID string
	Pos    query.Position
	Err    error
}

func (e *QueryStaticError) Error() string {
	return fmt.Sprintf("lint %q: %d:%d: %v", e.LintID, e.Pos.Line, e.Pos.Column, e.Err)
}

func (e *QueryStaticError) Unwrap() error { return e.Err }
