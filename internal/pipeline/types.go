package pipeline

// Request is one validated build invocation.
type Request struct {
	// Modules are the requested module names. May be empty: the build then
	// contains only the catalog's always-included modules.
	Modules []string

	// Docs enables the documentation build step.
	Docs bool

	// Clean removes prior artifacts before staging.
	Clean bool
}

// Outcome is the terminal value of one build.
type Outcome struct {
	// Resolved is the staged module closure, lexicographically sorted.
	Resolved []string

	// PackageBuilt reports whether the package artifact was produced.
	PackageBuilt bool

	// DocsBuilt reports whether documentation was produced. Always false
	// when the docs step was not requested.
	DocsBuilt bool

	// DocsFailed reports whether the docs step was requested and failed.
	DocsFailed bool

	// ArtifactPath is the produced archive path (empty on failure).
	ArtifactPath string

	// DocsIndexPath is the docs entry point (empty unless docs succeeded).
	DocsIndexPath string

	// Diagnostics is the ordered list of non-fatal messages accumulated
	// during the build.
	Diagnostics []string
}

// PartialSuccess reports the one tolerated degraded outcome: package built,
// documentation failed.
func (o *Outcome) PartialSuccess() bool {
	return o.PackageBuilt && o.DocsFailed
}
