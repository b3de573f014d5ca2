package appcontext

import "fmt"

// ExitError asks the process to exit with Code without printing anything.
// Commands return it for successful runs that still need a non-zero code.
type ExitError struct {
	Code int
}

// Error implements the error interface
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Exit returns an ExitError for code, or nil for code 0.
func Exit(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitError{Code: code}
}
