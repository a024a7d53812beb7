// Package tables keeps the registry of named tables and resolves structured
// references such as `Sales[[#Headers],[Amount]]` against it.
package tables

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
)

// ErrInvalidTable indicates a table spec that cannot be registered.
var ErrInvalidTable = errors.New("tables: invalid table")

// ErrTableNotFound indicates a name that is not registered.
var ErrTableNotFound = errors.New("tables: table not found")

// ErrDuplicateTable indicates a rename onto an existing name.
var ErrDuplicateTable = errors.New("tables: duplicate table name")

// Registry maps table names, compared case-insensitively, to their specs.
type Registry struct {
	tables map[string]models.TableSpec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]models.TableSpec)}
}

// Add registers spec, replacing any table of the same name.
func (r *Registry) Add(spec models.TableSpec) error {
	spec.Name = strings.TrimSpace(spec.Name)
	if spec.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTable)
	}
	b := spec.Bounds
	if b.Min.X < 1 || b.Min.Y < 1 || b.Min.X > b.Max.X || b.Min.Y > b.Max.Y {
		return fmt.Errorf("%w: %q has invalid bounds", ErrInvalidTable, spec.Name)
	}
	if len(spec.Columns) != b.Width() {
		return fmt.Errorf("%w: %q has %d columns but spans %d", ErrInvalidTable, spec.Name, len(spec.Columns), b.Width())
	}
	spec.Columns = slices.Clone(spec.Columns)
	r.tables[key(spec.Name)] = spec
	return nil
}

// Remove unregisters name and reports whether it was present.
func (r *Registry) Remove(name string) bool {
	k := key(name)
	if _, ok := r.tables[k]; !ok {
		return false
	}
	delete(r.tables, k)
	return true
}

// RemoveSheet unregisters every table on sheet and returns how many were removed.
func (r *Registry) RemoveSheet(sheet models.SheetID) int {
	n := 0
	for k, spec := range r.tables {
		if spec.Sheet == sheet {
			delete(r.tables, k)
			n++
		}
	}
	return n
}

// Rename changes a table's name. References written with the old name stop
// resolving.
func (r *Registry) Rename(oldName, newName string) error {
	oldKey, newKey := key(oldName), key(newName)
	spec, ok := r.tables[oldKey]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTableNotFound, oldName)
	}
	if _, taken := r.tables[newKey]; taken && newKey != oldKey {
		return fmt.Errorf("%w: %q", ErrDuplicateTable, newName)
	}
	delete(r.tables, oldKey)
	spec.Name = strings.TrimSpace(newName)
	r.tables[newKey] = spec
	return nil
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (models.TableSpec, bool) {
	spec, ok := r.tables[key(name)]
	return spec, ok
}

// HasTable reports whether name is registered.
func (r *Registry) HasTable(name string) bool {
	_, ok := r.tables[key(name)]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tables))
	for _, spec := range r.tables {
		names = append(names, spec.Name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered tables.
func (r *Registry) Len() int {
	return len(r.tables)
}

// ResolveTable resolves sel against the registry. A table that has been
// renamed or removed yields false.
func (r *Registry) ResolveTable(sel models.TableSelector) (models.SheetRect, bool) {
	spec, ok := r.Lookup(sel.Table)
	if !ok {
		return models.SheetRect{}, false
	}
	rect, ok := Resolve(spec, sel)
	if !ok {
		return models.SheetRect{}, false
	}
	return models.SheetRect{Sheet: spec.Sheet, Rect: rect}, true
}

func key(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
