// Package translate moves the relative coordinates of a range, for copy and
// paste and for row and column insertion or deletion.
package translate

import (
	"fmt"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
)

// Translate adds dx to every relative column and dy to every relative row of
// r. Absolute coordinates and open ends are left alone. It fails when a
// relative coordinate would become 0 or negative.
func Translate(r models.Range, dx, dy int) (models.Range, error) {
	return shift(r, shifter{dx: dx, dy: dy, fromX: 1, fromY: 1})
}

// ShiftColumns adds delta to every relative column at or after from. Inserting
// n columns before c is ShiftColumns(r, c, n); deleting column c is
// ShiftColumns(r, c+1, -1), and references to c itself are left to the caller.
func ShiftColumns(r models.Range, from, delta int) (models.Range, error) {
	return shift(r, shifter{dx: delta, fromX: from, fromY: 1})
}

// ShiftRows adds delta to every relative row at or after from.
func ShiftRows(r models.Range, from, delta int) (models.Range, error) {
	return shift(r, shifter{dy: delta, fromX: 1, fromY: from})
}

type shifter struct {
	dx, dy       int
	fromX, fromY int
}

func (s shifter) col(i models.Index) (models.Index, error) {
	return move(i, s.dx, s.fromX, ErrInvalidColumn)
}

func (s shifter) row(i models.Index) (models.Index, error) {
	return move(i, s.dy, s.fromY, ErrInvalidRow)
}

func (s shifter) pos(p models.RelPos) (models.RelPos, error) {
	x, err := s.col(p.X)
	if err != nil {
		return models.RelPos{}, err
	}
	y, err := s.row(p.Y)
	if err != nil {
		return models.RelPos{}, err
	}
	return models.RelPos{X: x, Y: y}, nil
}

func move(i models.Index, delta, from int, invalid error) (models.Index, error) {
	if delta == 0 || i.Absolute || i.IsUnbounded() || i.Coord < from {
		return i, nil
	}
	moved := i.Coord + delta
	if moved <= 0 || moved >= models.Unbounded {
		return i, &TranslationError{Coord: i.Coord, Delta: delta, Err: invalid}
	}
	return models.Index{Coord: moved}, nil
}

func shift(r models.Range, s shifter) (models.Range, error) {
	switch v := r.(type) {
	case models.All:
		return v, nil
	case models.Column:
		c, err := s.col(v.Col)
		if err != nil {
			return nil, err
		}
		return models.Column{Col: c}, nil
	case models.Row:
		row, err := s.row(v.Row)
		if err != nil {
			return nil, err
		}
		return models.Row{Row: row}, nil
	case models.ColumnRange:
		start, err := s.col(v.Start)
		if err != nil {
			return nil, err
		}
		end, err := s.col(v.End)
		if err != nil {
			return nil, err
		}
		return models.NewColumnRange(start, end), nil
	case models.RowRange:
		start, err := s.row(v.Start)
		if err != nil {
			return nil, err
		}
		end, err := s.row(v.End)
		if err != nil {
			return nil, err
		}
		return models.NewRowRange(start, end), nil
	case models.CellRect:
		lo, err := s.pos(v.Min)
		if err != nil {
			return nil, err
		}
		hi, err := s.pos(v.Max)
		if err != nil {
			return nil, err
		}
		return models.NewCellRect(lo, hi), nil
	case models.CellPos:
		p, err := s.pos(v.Pos)
		if err != nil {
			return nil, err
		}
		return models.CellPos{Pos: p}, nil
	case models.TableRef:
		// Structured references follow their table, not the grid.
		return v, nil
	default:
		panic(fmt.Sprintf("translate: unhandled range %T", r))
	}
}
