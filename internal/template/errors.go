package template

import "fmt"

// UnresolvedError reports a placeholder token with no defined
// substitution. Partial substitution that leaves literal tokens in
// consumer-facing output is a defect, not a degraded result.
type UnresolvedError struct {
	Token string
	File  string
	Line  int
}

func (e *UnresolvedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("unresolved placeholder [%s] in %s:%d", e.Token, e.File, e.Line)
	}
	return fmt.Sprintf("unresolved placeholder [%s] in %s", e.Token, e.File)
}

// WriteError reports a destination that could not be written. Fatal for
// the whole distribution; no partial result is a success.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("destination unwritable: %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
