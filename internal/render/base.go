package render

import (
	"github.com/aic/aic/internal/model1"
	"github.com/gdamore/tcell/v2"
)

// Renderer describes how one resource kind shows up in a table.
type Renderer[R any] interface {
	// Columns returns the column descriptors, in display order.
	Columns() model1.Columns[R]

	// ID returns the stable row identity of an object.
	ID(R) string

	// DefaultSort returns the sort applied when no view state is saved.
	DefaultSort() model1.SortState

	// ColorerFunc returns the row colorer.
	ColorerFunc() model1.ColorerFunc
}

// Base provides a base renderer implementation
type Base struct{}

// ColorerFunc returns the default colorer
func (*Base) ColorerFunc() model1.ColorerFunc {
	return model1.DefaultColorer
}

// DefaultSort sorts by the first sortable column, ascending.
func (*Base) DefaultSort() model1.SortState {
	return model1.SortState{Column: -1}
}

// Options returns table options for r. A saved sort wins over the
// renderer default.
func Options[R any](r Renderer[R], saved *model1.SortState, pageSize int, sizes []int, paged bool) model1.Options {
	opts := model1.DefaultOptions()
	opts.DefaultSort = r.DefaultSort()
	if saved != nil {
		opts.DefaultSort = *saved
	}
	if pageSize > 0 {
		opts.PageSize = pageSize
	}
	if len(sizes) > 0 {
		opts.PageSizeOptions = sizes
	}
	opts.ShowPagination = paged

	return opts
}

// NewTable returns an empty table for r.
func NewTable[R any](r Renderer[R], opts model1.Options) *model1.Table[R] {
	return model1.NewTable(r.Columns(), r.ID, opts)
}

// statusColorer colors rows by the value of their STATUS cell, falling
// back to the change colors for unknown statuses.
func statusColorer(colors map[string]colorKind) model1.ColorerFunc {
	return func(h model1.Header, re model1.RowEvent) tcell.Color {
		if re.Kind == model1.EventAdd || re.Kind == model1.EventDelete {
			return model1.DefaultColorer(h, re)
		}
		idx, ok := h.IndexOf("STATUS", true)
		if !ok || idx >= len(re.Fields) {
			return model1.DefaultColorer(h, re)
		}
		switch colors[re.Fields[idx]] {
		case colorOK:
			return model1.StdColor
		case colorBusy:
			return model1.PendingColor
		case colorDone:
			return model1.CompletedColor
		case colorWarn:
			return model1.ModColor
		case colorError:
			return model1.ErrColor
		case colorOff:
			return model1.KillColor
		default:
			return model1.DefaultColorer(h, re)
		}
	}
}

type colorKind int

const (
	colorNone colorKind = iota
	colorOK
	colorBusy
	colorDone
	colorWarn
	colorError
	colorOff
)
