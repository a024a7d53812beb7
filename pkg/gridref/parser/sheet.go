package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
)

// ErrMixedSheets indicates a selection whose parts name different sheets.
var ErrMixedSheets = errors.New("selection spans more than one sheet")

// SheetNames resolves sheet display names to ids and back.
type SheetNames interface {
	SheetID(name string) (models.SheetID, bool)
	SheetName(id models.SheetID) (string, bool)
}

var (
	plainSheetName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	cellLikeName   = regexp.MustCompile(`^[A-Za-z]{1,3}[0-9]*$`)
)

// ParseSheetReference parses `[Sheet!]ref`. Sheet names containing spaces or
// punctuation are written in single quotes with `''` for a literal quote.
// Without a prefix the reference belongs to defaultSheet.
func ParseSheetReference(text string, defaultSheet models.SheetID, sheets SheetNames, tables TableNames) (models.SheetReference, error) {
	name, ref, hasSheet, err := splitSheetPrefix(strings.TrimSpace(text))
	if err != nil {
		return models.SheetReference{}, NewParseError(text, err)
	}

	sheet := defaultSheet
	if hasSheet {
		id, ok := lookupSheet(sheets, name)
		if !ok {
			return models.SheetReference{}, NewParseError(text, fmt.Errorf("%w: %q", ErrUnknownSheet, name))
		}
		sheet = id
	}

	r, err := Parse(ref, tables)
	if err != nil {
		return models.SheetReference{}, reparent(text, err)
	}
	return models.SheetReference{Sheet: sheet, Range: r}, nil
}

// FormatSheetReference renders ref, omitting the sheet prefix when the
// reference is on defaultSheet.
func FormatSheetReference(ref models.SheetReference, defaultSheet models.SheetID, sheets SheetNames) string {
	return sheetPrefix(ref.Sheet, defaultSheet, sheets) + Format(ref.Range)
}

// ParseSelection parses a comma-separated list of ranges. A part prefixed
// with `-` is excluded. Only the first part may carry a sheet prefix other
// than the selection's own; parts without a prefix inherit it.
func ParseSelection(text string, defaultSheet models.SheetID, sheets SheetNames, tables TableNames) (models.Selection, error) {
	parts := splitTopLevel(text)
	sel := models.Selection{Sheet: defaultSheet}
	for i, part := range parts {
		part = strings.TrimSpace(part)
		exclude := strings.HasPrefix(part, "-")
		if exclude {
			part = strings.TrimSpace(part[1:])
		}
		inherit := sel.Sheet
		if i == 0 {
			inherit = defaultSheet
		}
		ref, err := ParseSheetReference(part, inherit, sheets, tables)
		if err != nil {
			return models.Selection{}, reparent(text, err)
		}
		if i == 0 {
			sel.Sheet = ref.Sheet
		} else if ref.Sheet != sel.Sheet {
			return models.Selection{}, NewParseError(text, ErrMixedSheets)
		}
		sel.Parts = append(sel.Parts, models.Part{Range: ref.Range, Exclude: exclude})
	}
	return sel, nil
}

// FormatSelection renders sel so that ParseSelection reads it back.
func FormatSelection(sel models.Selection, defaultSheet models.SheetID, sheets SheetNames) string {
	var b strings.Builder
	for i, part := range sel.Parts {
		if i > 0 {
			b.WriteByte(',')
		}
		if part.Exclude {
			b.WriteByte('-')
		}
		if i == 0 {
			b.WriteString(sheetPrefix(sel.Sheet, defaultSheet, sheets))
		}
		b.WriteString(Format(part.Range))
	}
	return b.String()
}

// QuoteSheetName quotes name when it would not survive unquoted.
func QuoteSheetName(name string) string {
	if plainSheetName.MatchString(name) && !looksLikeReference(name) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func sheetPrefix(sheet, defaultSheet models.SheetID, sheets SheetNames) string {
	if sheet == defaultSheet || sheets == nil {
		return ""
	}
	name, ok := sheets.SheetName(sheet)
	if !ok {
		return ""
	}
	return QuoteSheetName(name) + "!"
}

// looksLikeReference reports names such as "AB" or "XFD12" that would be read
// as a column or cell within the classic 16384 column limit.
func looksLikeReference(name string) bool {
	return cellLikeName.MatchString(name)
}

func lookupSheet(sheets SheetNames, name string) (models.SheetID, bool) {
	if sheets == nil {
		return "", false
	}
	return sheets.SheetID(name)
}

// splitSheetPrefix separates `Sheet!ref`. Only `!` before the first `[` is
// a separator, so table column names may contain it.
func splitSheetPrefix(s string) (name, ref string, hasSheet bool, err error) {
	if strings.HasPrefix(s, "'") {
		var b strings.Builder
		for i := 1; i < len(s); i++ {
			if s[i] != '\'' {
				b.WriteByte(s[i])
				continue
			}
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i++
				continue
			}
			rest := s[i+1:]
			if !strings.HasPrefix(rest, "!") {
				return "", "", false, fmt.Errorf("%w: expected '!' after quoted sheet name", ErrInvalidPosition)
			}
			rest = rest[1:]
			if strings.Contains(head(rest), "!") {
				return "", "", false, ErrMultipleSheetSeparators
			}
			return b.String(), rest, true, nil
		}
		return "", "", false, fmt.Errorf("%w: unterminated sheet name", ErrInvalidPosition)
	}

	h := head(s)
	switch strings.Count(h, "!") {
	case 0:
		return "", s, false, nil
	case 1:
		idx := strings.IndexByte(h, '!')
		return strings.TrimSpace(s[:idx]), s[idx+1:], true, nil
	default:
		return "", "", false, ErrMultipleSheetSeparators
	}
}

func head(s string) string {
	if idx := strings.IndexByte(s, '['); idx >= 0 {
		return s[:idx]
	}
	return s
}

// splitTopLevel splits on commas outside quoted sheet names and brackets.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case depth > 0 && c == '\'':
			i++
		case c == '\'':
			inQuote = !inQuote
		case inQuote:
		case c == '[':
			depth++
		case c == ']':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// reparent reports a nested parse failure against the full input text.
func reparent(text string, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return NewParseError(text, pe.Err)
	}
	return NewParseError(text, err)
}
