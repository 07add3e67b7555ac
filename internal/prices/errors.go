package prices

import "fmt"

// RegistryError represents a failed price registry fetch.
type RegistryError struct {
	Message string
	Err     error
}

func (e *RegistryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("price registry error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("price registry error: %s", e.Message)
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}

// NewRegistryError creates a new price registry error
func NewRegistryError(message string, err error) *RegistryError {
	return &RegistryError{
		Message: message,
		Err:     err,
	}
}
