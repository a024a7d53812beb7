package gridref

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
)

// ErrDuplicateSheet indicates a sheet name that is already in use.
var ErrDuplicateSheet = errors.New("duplicate sheet name")

// SheetRegistry assigns stable ids to sheets and resolves their display
// names, compared case-insensitively. Ids survive renames.
type SheetRegistry struct {
	names  map[models.SheetID]string
	byName map[string]models.SheetID
	order  []models.SheetID
	next   int
}

// NewSheetRegistry creates an empty registry.
func NewSheetRegistry() *SheetRegistry {
	return &SheetRegistry{
		names:  make(map[models.SheetID]string),
		byName: make(map[string]models.SheetID),
	}
}

// Add registers a sheet and returns its new id.
func (r *SheetRegistry) Add(name string) (models.SheetID, error) {
	k := sheetKey(name)
	if k == "" {
		return "", errors.New("empty sheet name")
	}
	if _, ok := r.byName[k]; ok {
		return "", fmt.Errorf("%w: %q", ErrDuplicateSheet, name)
	}
	r.next++
	id := models.SheetID(fmt.Sprintf("sheet%d", r.next))
	r.names[id] = name
	r.byName[k] = id
	r.order = append(r.order, id)
	return id, nil
}

// SheetID returns the id of the sheet called name.
func (r *SheetRegistry) SheetID(name string) (models.SheetID, bool) {
	id, ok := r.byName[sheetKey(name)]
	return id, ok
}

// SheetName returns the display name of id.
func (r *SheetRegistry) SheetName(id models.SheetID) (string, bool) {
	name, ok := r.names[id]
	return name, ok
}

// Rename changes the display name of id.
func (r *SheetRegistry) Rename(id models.SheetID, name string) error {
	old, ok := r.names[id]
	if !ok {
		return fmt.Errorf("unknown sheet %q", id)
	}
	k := sheetKey(name)
	if other, taken := r.byName[k]; taken && other != id {
		return fmt.Errorf("%w: %q", ErrDuplicateSheet, name)
	}
	delete(r.byName, sheetKey(old))
	r.names[id] = name
	r.byName[k] = id
	return nil
}

// Remove unregisters id and reports whether it was present.
func (r *SheetRegistry) Remove(id models.SheetID) bool {
	name, ok := r.names[id]
	if !ok {
		return false
	}
	delete(r.names, id)
	delete(r.byName, sheetKey(name))
	r.order = slices.DeleteFunc(r.order, func(v models.SheetID) bool { return v == id })
	return true
}

// IDs returns sheet ids in the order they were added.
func (r *SheetRegistry) IDs() []models.SheetID {
	return slices.Clone(r.order)
}

func sheetKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
