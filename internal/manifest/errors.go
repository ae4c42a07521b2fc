package manifest

import "fmt"

// MalformedError reports a manifest that failed structural validation:
// unreadable, undecodable, or missing a required field.
type MalformedError struct {
	Path   string // manifest file, empty when parsing raw bytes
	Reason string
	Err    error // underlying decode error, if any
}

func (e *MalformedError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed manifest %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("malformed manifest: %s", e.Reason)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// MissingContextError reports a manifest whose contextFileName does not
// resolve to an existing file at load time.
type MissingContextError struct {
	Manifest    string // manifest file path
	ContextFile string // the unresolved contextFileName value
}

func (e *MissingContextError) Error() string {
	return fmt.Sprintf("context file %q referenced by %s does not exist", e.ContextFile, e.Manifest)
}
