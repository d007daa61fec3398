package model1

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 20

// DefaultPageSizeOptions lists the page sizes offered by the pager.
var DefaultPageSizeOptions = []int{10, 20, 50, 100}

// PageState tracks the current page (1-based) and page size.
type PageState struct {
	Page     int
	PageSize int
}

// NewPageState returns a page state on page 1.
func NewPageState(size int) PageState {
	if size <= 0 {
		size = DefaultPageSize
	}
	return PageState{Page: 1, PageSize: size}
}

// PageCount returns ceil(total/pageSize).
func (p PageState) PageCount(total int) int {
	if total <= 0 || p.PageSize <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// Clamp keeps the page within [1, max(1, pageCount)].
func (p PageState) Clamp(total int) PageState {
	last := max(1, p.PageCount(total))
	switch {
	case p.Page < 1:
		p.Page = 1
	case p.Page > last:
		p.Page = last
	}
	return p
}

// Bounds returns the half-open row range of the current page.
func (p PageState) Bounds(total int) (int, int) {
	if p.PageSize <= 0 || total <= 0 {
		return 0, 0
	}
	start := min((p.Page-1)*p.PageSize, total)
	end := min(p.Page*p.PageSize, total)
	if start < 0 {
		start = 0
	}
	return start, end
}

// Slice returns the rows of the current page.
func Slice[R any](rows Rows[R], p PageState) Rows[R] {
	start, end := p.Bounds(len(rows))
	return rows[start:end]
}
