package domain

// Delivery - a tracked shipment record owned by the remote API.
// The front end only ever holds a transient per-view copy.
type Delivery struct {
	ID           string
	CustomerName string
	Address      string
	Status       Status
	CreatedAt    string
	CourierName  string
}

// CreatedDate returns the date part of the server timestamp.
// The API guarantees an ISO-8601 string whose first 10 characters
// form a YYYY-MM-DD date.
func (d Delivery) CreatedDate() string {
	if len(d.CreatedAt) < 10 {
		return d.CreatedAt
	}
	return d.CreatedAt[:10]
}

// CourierLabel returns the courier display value, "-" when unassigned.
func (d Delivery) CourierLabel() string {
	if d.CourierName == "" {
		return "-"
	}
	return d.CourierName
}
