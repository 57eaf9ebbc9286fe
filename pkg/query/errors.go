package query

import "fmt"

// ParseError is a lexical or syntactic error in query source text, detected
// before any evaluation is attempted.
type ParseError struct {
	Pos Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// StaticError is raised by the validation pass that runs after parsing and
// before evaluation: unknown fields, undefined tag references, directive
// placement rules. It carries no lint ID of its own — pkg/lint wraps it in
// a QueryStaticError naming the offending lint.
type StaticError struct {
	Pos Position
	Msg string
}

func (e *StaticError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}
