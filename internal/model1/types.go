package model1

import "github.com/gdamore/tcell/v2"

const NAValue = "n/a"

// ResEvent represents a row change event between two refreshes.
type ResEvent int

const (
	EventUnchanged ResEvent = 1 << iota
	EventAdd
	EventUpdate
	EventDelete
)

// Direction represents a sort direction.
type Direction int

const (
	// Ascending sorts from lowest to highest key.
	Ascending Direction = iota
	// Descending sorts from highest to lowest key.
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// ParseDirection converts "asc"/"desc" into a Direction.
func ParseDirection(s string) Direction {
	switch s {
	case "desc", "descending":
		return Descending
	default:
		return Ascending
	}
}

// DecoratorFunc decorates a string
type DecoratorFunc func(string) string

// ColorerFunc represents a resource row colorer
type ColorerFunc func(h Header, re RowEvent) tcell.Color

// IDFunc extracts a stable identity from a domain object.
type IDFunc[R any] func(R) string
