package models

// SheetID identifies a sheet independently of its display name.
type SheetID string

// SheetReference is a parsed range together with the sheet that owns it.
type SheetReference struct {
	Sheet SheetID `json:"sheet"`
	Range Range   `json:"range"`
}

// SheetPos is a cell on a specific sheet.
type SheetPos struct {
	Sheet SheetID `json:"sheet"`
	Pos   Pos     `json:"pos"`
}

// SheetRect is a region on a specific sheet.
type SheetRect struct {
	Sheet SheetID `json:"sheet"`
	Rect  Rect    `json:"rect"`
}
