package model1

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// DuplicateIDError is returned when two domain objects share an identity.
type DuplicateIDError struct {
	ID    string
	First int
	Dup   int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate row id %q at positions %d and %d", e.ID, e.First, e.Dup)
}

// Project maps domain objects into rows, in input order. It has no side
// effects. A cell function that fails leaves its cell empty instead of
// aborting the table. Ids must be unique; a duplicate rejects the whole
// projection.
func Project[R any](data []R, cols Columns[R], getID IDFunc[R]) (Rows[R], error) {
	rows := make(Rows[R], 0, len(data))
	seen := make(map[string]int, len(data))
	width := cols.CellCount()
	for i, obj := range data {
		id := getID(obj)
		if first, ok := seen[id]; ok {
			return nil, &DuplicateIDError{ID: id, First: first, Dup: i}
		}
		seen[id] = i

		row := Row[R]{ID: id, Cells: make([]Cell, 0, width), Source: obj}
		for _, c := range cols {
			if c.Cell == nil {
				continue
			}
			row.Cells = append(row.Cells, projectCell(c, obj, id))
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func projectCell[R any](c Column[R], obj R, id string) Cell {
	cell, ok := EvalCell(c, obj, id)
	if ok && c.Header.Decorator != nil {
		cell.Display = c.Header.Decorator(cell.Display)
	}

	return cell
}

// EvalCell runs the cell function of c on obj. A function that returns an
// error or panics yields an empty cell and false.
func EvalCell[R any](c Column[R], obj R, id string) (cell Cell, ok bool) {
	if c.Cell == nil {
		return Cell{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			log.WithField("row", id).Warnf("column %s panicked: %v", c.Header.Name, r)
			cell, ok = Cell{}, false
		}
	}()

	cell, err := c.Cell(obj)
	if err != nil {
		log.WithField("row", id).Debugf("column %s: %v", c.Header.Name, err)
		return Cell{}, false
	}

	return cell, true
}
