package domain

// Status represents the wire status of a delivery.
type Status string

// List of possible delivery statuses
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDelivered  Status = "delivered"
)

// List of allowed statuses
var allowedStatuses = [...]Status{
	StatusPending, StatusInProgress, StatusDelivered,
}

// statusLabels maps wire statuses to their display labels.
var statusLabels = map[Status]string{
	StatusPending:    "En attente",
	StatusInProgress: "En cours",
	StatusDelivered:  "Livrée",
}

// Valid checks if the Status is one of the allowed wire values.
func (s Status) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns the display label for the status. Unknown wire values
// pass through verbatim rather than failing.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Statuses returns the fixed set of selectable statuses in display order.
func Statuses() []Status {
	return allowedStatuses[:]
}
