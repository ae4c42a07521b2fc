package archive

import "fmt"

// WriteError reports an archive that could not be produced. Fatal; no
// retry is attempted here.
type WriteError struct {
	Output string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("archive write failed: %s: %v", e.Output, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
