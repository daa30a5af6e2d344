package errors

import "errors"

// Exit codes reported by the CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitUnknownModule indicates a requested module is not in the catalog.
	ExitUnknownModule = 2

	// ExitCycle indicates the catalog requires-graph contains a cycle.
	ExitCycle = 3

	// ExitStaging indicates staging the package layout failed.
	ExitStaging = 4

	// ExitPackageBuild indicates the package-build collaborator failed.
	ExitPackageBuild = 5

	// ExitDocsPartial indicates the package was built but documentation
	// generation failed (partial success).
	ExitDocsPartial = 6
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitUnknownModule:
		return "Unknown Module"
	case ExitCycle:
		return "Dependency Cycle"
	case ExitStaging:
		return "Staging Error"
	case ExitPackageBuild:
		return "Package Build Failed"
	case ExitDocsPartial:
		return "Partial Success (docs failed)"
	default:
		return "Unknown"
	}
}

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed marks that the command layer already printed the error,
	// so main must not print it again.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrUnknownModule):
		return ExitUnknownModule
	case errors.Is(err, ErrCycle):
		return ExitCycle
	case errors.Is(err, ErrStaging):
		return ExitStaging
	case errors.Is(err, ErrPackageBuild):
		return ExitPackageBuild
	case errors.Is(err, ErrDocsBuild):
		return ExitDocsPartial
	default:
		return ExitGeneralError
	}
}
