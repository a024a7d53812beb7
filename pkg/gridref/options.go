// Package gridref analyzes the cell references and dependencies of Excel
// workbooks.
package gridref

import (
	"io"
	"log"

	"github.com/ukaji3/gridref-go/pkg/gridref/tables"
)

// Options configures workbook analysis.
type Options struct {
	// DefaultSheet names the sheet that unprefixed references in the table
	// config belong to. If empty, the first sheet of the workbook is used.
	DefaultSheet string
	// Config holds tables defined outside the workbook. They are registered
	// after the workbook's own tables and replace any of the same name.
	Config *tables.Config
	// Logger receives warnings about references that could not be analyzed.
	// If nil, warnings are discarded.
	Logger *log.Logger
	// IncludeTables specifies whether to read tables stored in the workbook.
	// If nil, defaults to true.
	IncludeTables *bool
	// IncludePrintAreas specifies whether to read print areas.
	// If nil, defaults to true.
	IncludePrintAreas *bool
}

// DefaultOptions returns default analysis options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldIncludeTables returns whether to read workbook tables.
func (o Options) ShouldIncludeTables() bool {
	if o.IncludeTables != nil {
		return *o.IncludeTables
	}
	return true
}

// ShouldIncludePrintAreas returns whether to read print areas.
func (o Options) ShouldIncludePrintAreas() bool {
	if o.IncludePrintAreas != nil {
		return *o.IncludePrintAreas
	}
	return true
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard, "", 0)
}
