// Package resolver computes the dependency closure of a module selection.
package resolver

import (
	"sort"

	merrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/registry"
)

// ResolvedSet is the closure of modules to stage. Membership is what matters;
// consumers impose their own deterministic ordering.
type ResolvedSet map[string]struct{}

// Names returns the set's members in lexicographic order.
func (s ResolvedSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Contains reports set membership.
func (s ResolvedSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Resolve computes the closure of requested: the requested modules, the
// catalog's always-included modules, and every transitive requirement.
//
// An empty request is valid and yields exactly the always-included set.
// Unknown names fail before any expansion; a requires-cycle fails with a
// cycle error naming the offending path.
func Resolve(reg *registry.Registry, requested []string) (ResolvedSet, error) {
	// Validate every requested name first so the caller can fail fast
	// before any filesystem work.
	for _, name := range requested {
		if !reg.Has(name) {
			return nil, merrors.NewUnknownModuleError(name, reg.Names())
		}
	}

	resolved := make(ResolvedSet)
	seeds := append([]string{}, requested...)
	seeds = append(seeds, reg.AlwaysIncluded()...)

	for _, name := range seeds {
		if err := expand(reg, name, resolved, nil); err != nil {
			return nil, err
		}
	}

	return resolved, nil
}

// expand adds name and its transitive requirements to resolved.
// path holds the current expansion chain for cycle detection: encountering a
// module already on the path means the requires-graph loops back on itself.
func expand(reg *registry.Registry, name string, resolved ResolvedSet, path []string) error {
	for i, onPath := range path {
		if onPath == name {
			return merrors.NewCycleError(append(path[i:], name))
		}
	}

	if resolved.Contains(name) {
		return nil
	}

	mod, err := reg.Lookup(name)
	if err != nil {
		return err
	}

	path = append(path, name)
	for _, req := range mod.Requires {
		if err := expand(reg, req, resolved, path); err != nil {
			return err
		}
	}

	resolved[name] = struct{}{}
	return nil
}
