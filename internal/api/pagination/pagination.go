// Package pagination computes offset windows for page-numbered listings.
package pagination

// Window describes the slice of an ordered collection that one page
// covers. A Limit of zero means the page is past the end and the
// caller should return an empty result rather than an error.
type Window struct {
	Offset     int
	Limit      int
	TotalPages int
}

// Paginate maps a 1-based page number onto a collection of total items.
// totalPages is ceil(total/pageSize) with a floor of one so that an
// empty collection still reports a single (empty) page. Pages below one
// are treated as page one; pages past the end produce an empty window.
func Paginate(total, page, pageSize int) Window {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page > totalPages {
		return Window{Offset: 0, Limit: 0, TotalPages: totalPages}
	}

	offset := (page - 1) * pageSize
	limit := pageSize
	if remaining := total - offset; remaining < limit {
		limit = remaining
	}
	if limit < 0 {
		limit = 0
	}
	return Window{Offset: offset, Limit: limit, TotalPages: totalPages}
}
