package command

import "fmt"

// ParseError reports a command file that could not be read or decoded.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed command %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DuplicateError reports two files deriving the same command name.
// Both offending files are named so the author can rename either.
type DuplicateError struct {
	Name     string
	File     string // the file that collided
	Existing string // the file already registered under Name
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate command %q: %s and %s", e.Name, e.Existing, e.File)
}

// EmptyPromptError reports a command file whose prompt is missing, empty,
// or whitespace-only.
type EmptyPromptError struct {
	File string
}

func (e *EmptyPromptError) Error() string {
	return fmt.Sprintf("empty prompt in %s", e.File)
}
