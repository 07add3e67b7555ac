package poi

import "fmt"

// SourceError represents a failed POI query. It aborts the whole batch;
// callers decide whether to retry (user action) or fall back.
type SourceError struct {
	Message string
	Err     error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("POI source error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("POI source error: %s", e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new POI source error
func NewSourceError(message string, err error) *SourceError {
	return &SourceError{
		Message: message,
		Err:     err,
	}
}
