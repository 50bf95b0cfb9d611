package view

import "github.com/sycelim/delivery-web/internal/domain"

// Options toggles the table's optional columns and the status editor.
type Options struct {
	// ShowCourier renders the "Livreur" column (admin view: the data
	// carries the courier field).
	ShowCourier bool
	// ShowActions renders the per-row actions column (admin view: delete).
	ShowActions bool
	// EditableStatus renders the status select instead of a plain label.
	EditableStatus bool
}

// Row is one delivery line plus its editor state.
type Row struct {
	Delivery domain.Delivery
	// Busy disables this row's status editor while a mutation is in
	// flight. Other rows are unaffected.
	Busy bool
}

// Table is the view model for one rendered delivery table. Err non-empty
// renders the error state; otherwise the table is ready.
type Table struct {
	Rows     []Row
	Page     Page
	Options  Options
	Statuses []domain.Status
	Err      string
}

// Build slices the full, server-ordered delivery list into the requested
// page and attaches per-row editor state from the lock table.
func Build(deliveries []domain.Delivery, page int, locks *RowLocks, opts Options) Table {
	p := Paginate(len(deliveries), page, PageSize)

	rows := make([]Row, 0, p.End-p.Start)
	for _, d := range deliveries[p.Start:p.End] {
		busy := false
		if locks != nil {
			busy = locks.Busy(d.ID)
		}
		rows = append(rows, Row{Delivery: d, Busy: busy})
	}

	return Table{
		Rows:     rows,
		Page:     p,
		Options:  opts,
		Statuses: domain.Statuses(),
	}
}

// BuildError returns the error-state table for a failed load.
func BuildError(msg string) Table {
	return Table{Err: msg, Page: Paginate(0, 1, PageSize)}
}
