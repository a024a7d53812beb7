package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
)

// TableNames reports whether a name refers to a known table.
type TableNames interface {
	HasTable(name string) bool
}

const cellPattern = `(\$?)([A-Za-z]+)(\$?)([0-9]+)`

var (
	columnPattern   = regexp.MustCompile(`^(\$?)([A-Za-z]+)(?::(?:(\$?)([A-Za-z]+))?)?$`)
	rowPattern      = regexp.MustCompile(`^(\$?)([0-9]+)(?::(?:(\$?)([0-9]+))?)?$`)
	rectPattern     = regexp.MustCompile(`^` + cellPattern + `:` + cellPattern + `$`)
	openRectPattern = regexp.MustCompile(`^` + cellPattern + `:$`)
	posPattern      = regexp.MustCompile(`^` + cellPattern + `$`)
)

// Parse parses reference text without a sheet prefix. Alternatives are tried
// in order and the first that matches wins: `*`, columns, rows, a cell
// rectangle, a single cell, then a table reference whose name is known to
// tables. tables may be nil.
func Parse(text string, tables TableNames) (models.Range, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, NewParseError(text, ErrEmptyReference)
	}
	if s == "*" {
		return models.All{}, nil
	}

	// The first alternative to fail conversion supplies the error, unless
	// a later alternative matches.
	var firstErr error
	note := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if m := columnPattern.FindStringSubmatch(s); m != nil {
		r, err := parseColumns(m)
		if err == nil {
			return r, nil
		}
		note(err)
	}
	if m := rowPattern.FindStringSubmatch(s); m != nil {
		r, err := parseRows(m)
		if err == nil {
			return r, nil
		}
		note(err)
	}
	if m := rectPattern.FindStringSubmatch(s); m != nil {
		a, errA := parseCell(m[1:5])
		b, errB := parseCell(m[5:9])
		if errA == nil && errB == nil {
			return models.NewCellRect(a, b), nil
		}
		note(firstNonNil(errA, errB))
	}
	if m := openRectPattern.FindStringSubmatch(s); m != nil {
		a, err := parseCell(m[1:5])
		if err == nil {
			return models.CellRect{
				Min: a,
				Max: models.RelPos{X: models.Rel(models.Unbounded), Y: models.Rel(models.Unbounded)},
			}, nil
		}
		note(err)
	}
	if m := posPattern.FindStringSubmatch(s); m != nil {
		p, err := parseCell(m[1:5])
		if err == nil {
			return models.CellPos{Pos: p}, nil
		}
		note(err)
	}

	if sel, ok, err := parseTable(s, tables); ok {
		if err != nil {
			return nil, NewParseError(text, err)
		}
		return models.TableRef{Selector: sel}, nil
	}

	if firstErr == nil {
		firstErr = ErrInvalidPosition
	}
	return nil, NewParseError(text, firstErr)
}

// MustParse is like Parse but panics on error. It is intended for tests and
// constant references.
func MustParse(text string) models.Range {
	r, err := Parse(text, nil)
	if err != nil {
		panic(err)
	}
	return r
}

func parseColumns(m []string) (models.Range, error) {
	start, err := columnIndex(m[1], m[2])
	if err != nil {
		return nil, err
	}
	if m[4] == "" {
		return models.Column{Col: start}, nil
	}
	end, err := columnIndex(m[3], m[4])
	if err != nil {
		return nil, err
	}
	return models.NewColumnRange(start, end), nil
}

func parseRows(m []string) (models.Range, error) {
	start, err := rowIndex(m[1], m[2])
	if err != nil {
		return nil, err
	}
	if m[4] == "" {
		return models.Row{Row: start}, nil
	}
	end, err := rowIndex(m[3], m[4])
	if err != nil {
		return nil, err
	}
	return models.NewRowRange(start, end), nil
}

// parseCell converts the four submatches ($, letters, $, digits) of one
// cell reference.
func parseCell(m []string) (models.RelPos, error) {
	x, err := columnIndex(m[0], m[1])
	if err != nil {
		return models.RelPos{}, err
	}
	y, err := rowIndex(m[2], m[3])
	if err != nil {
		return models.RelPos{}, err
	}
	return models.RelPos{X: x, Y: y}, nil
}

func columnIndex(dollar, letters string) (models.Index, error) {
	n, err := ColumnFromLetters(letters)
	if err != nil {
		return models.Index{}, err
	}
	return models.Index{Coord: n, Absolute: dollar == "$"}, nil
}

func rowIndex(dollar, digits string) (models.Index, error) {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n >= models.Unbounded {
		return models.Index{}, ErrInvalidRow
	}
	return models.Index{Coord: n, Absolute: dollar == "$"}, nil
}

func firstNonNil(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
