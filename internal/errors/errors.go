// Package errors provides sentinel errors for the modpack CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrUnknownModule indicates a requested or required module name is
	// absent from the catalog.
	ErrUnknownModule = errors.New("unknown module")

	// ErrCycle indicates the catalog's requires-graph contains a cycle.
	ErrCycle = errors.New("dependency cycle")

	// ErrStaging indicates a filesystem failure while materializing the
	// staged layout.
	ErrStaging = errors.New("staging error")

	// ErrPackageBuild indicates the package-build collaborator failed.
	ErrPackageBuild = errors.New("package build failed")

	// ErrDocsBuild indicates the documentation-build collaborator failed.
	ErrDocsBuild = errors.New("documentation build failed")
)

// DetailError captures structured error information for terminal display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is a file or directory path (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewUnknownModuleError creates an unknown-module error with details.
// known lists the catalog's valid module names for the hint.
func NewUnknownModuleError(name string, known []string) error {
	return &DetailError{
		Type:    "unknown module",
		Message: fmt.Sprintf("module %q is not declared in the catalog", name),
		Hint:    fmt.Sprintf("Known modules: %s", strings.Join(known, ", ")),
		Cause:   ErrUnknownModule,
	}
}

// NewCycleError creates a dependency-cycle error naming the cycle path.
func NewCycleError(path []string) error {
	return &DetailError{
		Type:    "dependency cycle",
		Message: fmt.Sprintf("catalog requires-graph contains a cycle: %s", strings.Join(path, " -> ")),
		Hint:    "Fix the requires lists in the module catalog; cycles are never valid.",
		Cause:   ErrCycle,
	}
}

// NewStagingError creates a staging I/O error with the failing path.
func NewStagingError(message, location string, cause error) error {
	return &DetailError{
		Type:     "staging failed",
		Message:  message,
		Location: location,
		Hint:     "Check permissions and disk space, then re-run with a clean build.",
		Cause:    fmt.Errorf("%w: %w", ErrStaging, cause),
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
