package dataset

import "fmt"

// LoadError represents a failure to read or decode a dataset document
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	source := e.Path
	if source == "" {
		source = "(input)"
	}
	if e.Cause != nil {
		return fmt.Sprintf("dataset load error: %s: %s: %v", source, e.Message, e.Cause)
	}
	return fmt.Sprintf("dataset load error: %s: %s", source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
