package response

// OrderStatus is the body returned after a staff status change.
type OrderStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// SessionEnded confirms a table was cleared for the next party.
type SessionEnded struct {
	Success bool `json:"success"`
}
