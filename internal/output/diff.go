package output

// Diff rendering utilities. The dyff comparison itself lives in
// internal/stager/drift.go to avoid import cycles; this file provides the
// styled line renderers.

import (
	"strings"
)

// DiffRenderer renders module drift with styles.
type DiffRenderer struct {
	styles *Styles
}

// NewDiffRenderer creates a new DiffRenderer with default styles.
func NewDiffRenderer() *DiffRenderer {
	return &DiffRenderer{
		styles: GetStyles(),
	}
}

// RenderAdded renders a module missing from the staged layout.
func (r *DiffRenderer) RenderAdded(name string) string {
	return "  + " + r.styles.Success.Render(name)
}

// RenderRemoved renders a stale module (staged but no longer selected).
func (r *DiffRenderer) RenderRemoved(name string) string {
	return "  - " + r.styles.Error.Render(name)
}

// RenderAddedHeader renders the "Missing:" section header.
func (r *DiffRenderer) RenderAddedHeader() string {
	return r.styles.Success.Render("Missing from staged layout:")
}

// RenderRemovedHeader renders the "Stale:" section header.
func (r *DiffRenderer) RenderRemovedHeader() string {
	return r.styles.Error.Render("Stale in staged layout:")
}

// IndentDiff indents a diff string for display under a section header.
func IndentDiff(diff string, indent string) string {
	if diff == "" {
		return ""
	}

	var sb strings.Builder
	lines := strings.Split(diff, "\n")
	for _, line := range lines {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
