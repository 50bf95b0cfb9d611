// Package view holds the rendering models for the delivery tables: pagination
// arithmetic, column toggles, and the per-row in-flight locks that back the
// status editor.
package view

// PageSize is the fixed number of rows per rendered table page.
const PageSize = 5

// Page describes one rendered slice of a delivery list.
type Page struct {
	Number  int
	Count   int
	Start   int
	End     int
	HasPrev bool
	HasNext bool
}

// Paginate computes the slice bounds for a 1-based page over total items.
// Count is ceil(total/size). The requested page is clamped into range even
// though disabled controls should never produce an out-of-range value.
func Paginate(total, page, size int) Page {
	if size <= 0 {
		size = PageSize
	}
	if total < 0 {
		total = 0
	}

	count := (total + size - 1) / size

	if page < 1 {
		page = 1
	}
	if count > 0 && page > count {
		page = count
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}

	return Page{
		Number:  page,
		Count:   count,
		Start:   start,
		End:     end,
		HasPrev: page > 1,
		HasNext: page < count,
	}
}

// Prev returns the page number the "Précédent" control targets.
func (p Page) Prev() int {
	if p.Number <= 1 {
		return 1
	}
	return p.Number - 1
}

// Next returns the page number the "Suivant" control targets.
func (p Page) Next() int {
	if p.Number >= p.Count {
		return p.Number
	}
	return p.Number + 1
}
