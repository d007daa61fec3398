package model1

// DeltaRow holds, per cell, the previous display value of cells that
// changed since the last refresh. Unchanged cells are blank.
type DeltaRow []string

// NewDeltaRow compares two field sets of the same row.
func NewDeltaRow(o, n Fields) DeltaRow {
	deltas := make(DeltaRow, len(n))
	for i, old := range o {
		if i >= len(n) {
			break
		}
		if old != n[i] {
			deltas[i] = old
		}
	}
	return deltas
}

func (d DeltaRow) IsBlank() bool {
	for _, v := range d {
		if v != "" {
			return false
		}
	}
	return true
}

// Changed returns true if cell col changed.
func (d DeltaRow) Changed(col int) bool {
	return col >= 0 && col < len(d) && d[col] != ""
}

func (d DeltaRow) Clone() DeltaRow {
	res := make(DeltaRow, len(d))
	copy(res, d)
	return res
}
