package models

// Part is one entry of a multi-range selection.
type Part struct {
	Range Range `json:"range"`
	// Exclude subtracts the range from the parts before and after it.
	Exclude bool `json:"exclude,omitempty"`
}

// Selection is an ordered list of included and excluded ranges on one sheet.
type Selection struct {
	Sheet SheetID `json:"sheet"`
	Parts []Part  `json:"parts"`
}
