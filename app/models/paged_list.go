package models

// PagedList is one page of a larger result set.
type PagedList[T any] struct {
	Items      []T
	PageIndex  int
	PageSize   int
	TotalCount int
	TotalPages int
}

// NewPagedList slices source into the page at the zero-based pageIndex.
func NewPagedList[T any](source []T, pageIndex, pageSize int) *PagedList[T] {
	if pageIndex < 0 {
		pageIndex = 0
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(source)
	pl := &PagedList[T]{
		PageIndex:  pageIndex,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: total / pageSize,
		Items:      []T{},
	}
	if total%pageSize > 0 {
		pl.TotalPages++
	}

	start := pageIndex * pageSize
	if start >= total {
		return pl
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	pl.Items = append(pl.Items, source[start:end]...)
	return pl
}

// HasPreviousPage reports whether a page precedes this one.
func (pl *PagedList[T]) HasPreviousPage() bool {
	return pl.PageIndex > 0
}

// HasNextPage reports whether a page follows this one.
func (pl *PagedList[T]) HasNextPage() bool {
	return pl.PageIndex+1 < pl.TotalPages
}
