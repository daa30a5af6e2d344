// Package registry provides the static module catalog.
//
// The catalog is a fixed, versioned mapping from module name to source paths,
// requires-list, and always-included flag. It is loaded once per invocation
// and read-only thereafter. The requires-graph is an explicit adjacency
// structure; the registry never follows references into module code.
package registry

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	merrors "github.com/modpack/cli/internal/errors"
)

// DefaultCatalogFile is the catalog file looked up in the working directory
// when no --catalog flag, env var, or config value is set.
const DefaultCatalogFile = "modpack.yaml"

// PackageMeta identifies the assembled package.
type PackageMeta struct {
	// Name is the package name; it is also the staging root directory name.
	Name string `yaml:"name"`

	// Version is the package version written into the staged manifest.
	Version string `yaml:"version"`
}

// Module describes one selectable feature unit. Immutable once loaded.
type Module struct {
	// Name is the unique module identifier.
	Name string `yaml:"name"`

	// Paths are the source paths copied when the module is staged,
	// relative to the catalog's source root. Defaults to [Name].
	Paths []string `yaml:"paths,omitempty"`

	// Requires lists names of other modules this module needs.
	Requires []string `yaml:"requires,omitempty"`

	// Always marks the module as part of every build (shared base types).
	Always bool `yaml:"always,omitempty"`
}

// SourcePaths returns the module's source paths, defaulting to the module
// name when none are declared.
func (m *Module) SourcePaths() []string {
	if len(m.Paths) > 0 {
		return m.Paths
	}
	return []string{m.Name}
}

// Catalog is the on-disk shape of the module catalog.
type Catalog struct {
	// Package is the assembled package's metadata.
	Package PackageMeta `yaml:"package"`

	// SourceRoot is the directory holding all module payloads,
	// relative to the catalog file's directory.
	SourceRoot string `yaml:"source_root"`

	// Modules is the full module list.
	Modules []Module `yaml:"modules"`
}

// Registry is the validated, in-memory catalog.
type Registry struct {
	catalog Catalog
	byName  map[string]*Module
}

// Load reads and validates a catalog file.
func Load(path string) (*Registry, error) {
	if path == "" {
		path = DefaultCatalogFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	return New(catalog)
}

// New builds a Registry from an in-memory catalog, validating it.
func New(catalog Catalog) (*Registry, error) {
	r := &Registry{
		catalog: catalog,
		byName:  make(map[string]*Module, len(catalog.Modules)),
	}

	for i := range catalog.Modules {
		m := &catalog.Modules[i]
		if m.Name == "" {
			return nil, fmt.Errorf("catalog: module %d has no name", i)
		}
		if _, dup := r.byName[m.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate module %q", m.Name)
		}
		r.byName[m.Name] = m
	}

	if err := r.validateRequires(); err != nil {
		return nil, err
	}

	return r, nil
}

// validateRequires checks every requires reference resolves and no module
// requires itself directly. Transitive cycles are the resolver's concern.
func (r *Registry) validateRequires() error {
	for _, m := range r.byName {
		for _, req := range m.Requires {
			if req == m.Name {
				return merrors.NewCycleError([]string{m.Name, m.Name})
			}
			if _, ok := r.byName[req]; !ok {
				return &merrors.DetailError{
					Type:    "invalid catalog",
					Message: fmt.Sprintf("module %q requires %q, which is not declared", m.Name, req),
					Hint:    "Every name in a requires list must be a declared module.",
					Cause:   merrors.ErrUnknownModule,
				}
			}
		}
	}
	return nil
}

// Lookup returns the module descriptor for name.
func (r *Registry) Lookup(name string) (*Module, error) {
	m, ok := r.byName[name]
	if !ok {
		return nil, merrors.NewUnknownModuleError(name, r.Names())
	}
	return m, nil
}

// Has reports whether name is declared in the catalog.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Names returns all declared module names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AlwaysIncluded returns the names of always-included modules, sorted.
func (r *Registry) AlwaysIncluded() []string {
	var names []string
	for name, m := range r.byName {
		if m.Always {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Modules returns all module descriptors, sorted by name.
func (r *Registry) Modules() []Module {
	names := r.Names()
	mods := make([]Module, 0, len(names))
	for _, name := range names {
		mods = append(mods, *r.byName[name])
	}
	return mods
}

// Package returns the assembled package's metadata.
func (r *Registry) Package() PackageMeta {
	return r.catalog.Package
}

// SourceRoot returns the directory holding module payloads.
func (r *Registry) SourceRoot() string {
	if r.catalog.SourceRoot == "" {
		return "modules"
	}
	return r.catalog.SourceRoot
}
