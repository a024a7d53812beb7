package gridref

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// Component names the stage of analysis that failed.
type Component string

const (
	ComponentTables     Component = "tables"
	ComponentPrintAreas Component = "print areas"
	ComponentConfig     Component = "config tables"
	ComponentFormulas   Component = "formulas"
)

// AnalysisError reports a part of a workbook that was left out of the
// analysis. Cell is set when the failure belongs to one formula cell.
type AnalysisError struct {
	Sheet     string
	Cell      string
	Component Component
	Err       error
}

func (e *AnalysisError) Error() string {
	if e.Cell != "" {
		return fmt.Sprintf("%s: %s!%s: %v", e.Component, e.Sheet, e.Cell, e.Err)
	}
	return fmt.Sprintf("%s: sheet %q: %v", e.Component, e.Sheet, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates an AnalysisError for a whole sheet.
func NewAnalysisError(sheet string, component Component, err error) *AnalysisError {
	return &AnalysisError{Sheet: sheet, Component: component, Err: err}
}

// newCellError creates an AnalysisError for one formula cell.
func newCellError(sheet, cell string, err error) *AnalysisError {
	return &AnalysisError{Sheet: sheet, Cell: cell, Component: ComponentFormulas, Err: err}
}
