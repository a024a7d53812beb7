package models

// Section is a bit set of table row sections.
type Section uint8

const (
	// SectionHeaders is the column header row.
	SectionHeaders Section = 1 << iota
	// SectionData is the data rows.
	SectionData
	// SectionTotals is the totals row.
	SectionTotals

	// SectionAll is every addressable section.
	SectionAll = SectionHeaders | SectionData | SectionTotals
)

// Has reports whether every bit of o is set in s.
func (s Section) Has(o Section) bool {
	return s&o == o
}

// TableSelector is the parsed form of a structured reference such as
// `Sales[[#Headers],[Region]:[Amount]]`.
type TableSelector struct {
	// Table is the table name as written.
	Table string `json:"table"`
	// Sections lists the row sections selected. Zero means data rows.
	Sections Section `json:"sections,omitempty"`
	// ColumnStart is the first selected column name. Empty selects all columns.
	ColumnStart string `json:"column_start,omitempty"`
	// ColumnEnd is the last selected column name. Empty for a single column.
	ColumnEnd string `json:"column_end,omitempty"`
}

// RowSections returns the selected sections, defaulting to data rows.
func (t TableSelector) RowSections() Section {
	if t.Sections == 0 {
		return SectionData
	}
	return t.Sections
}

// TableSpec is a registry entry describing where a table lives.
type TableSpec struct {
	// Name is the table name.
	Name string `json:"name" yaml:"name"`
	// Sheet owns the table.
	Sheet SheetID `json:"sheet" yaml:"sheet"`
	// Bounds covers every row of the table including name, header and totals rows.
	Bounds Rect `json:"bounds" yaml:"-"`
	// Columns lists column names left to right.
	Columns []string `json:"columns" yaml:"columns"`
	// ShowName is set when the first row displays the table name.
	ShowName bool `json:"show_name,omitempty" yaml:"show_name"`
	// ShowHeader is set when a column header row is displayed.
	ShowHeader bool `json:"show_header,omitempty" yaml:"show_header"`
	// ShowTotals is set when the last row is a totals row.
	ShowTotals bool `json:"show_totals,omitempty" yaml:"show_totals"`
}
