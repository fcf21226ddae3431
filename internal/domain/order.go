package domain

import (
	"math"
	"time"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusRejected  = "rejected"
)

// TaxRate applied on the order subtotal.
const TaxRate = 0.05

// orderStatuses is the full status set. Any member can be applied from any
// current status; only membership is validated. Terminal states are not
// locked either, staff can reopen a completed order.
var orderStatuses = map[string]struct{}{
	OrderStatusPending:   {},
	OrderStatusAccepted:  {},
	OrderStatusPreparing: {},
	OrderStatusReady:     {},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
	OrderStatusRejected:  {},
}

func ValidOrderStatus(status string) bool {
	_, ok := orderStatuses[status]
	return ok
}

// Order is one cart submission, owned by a guest session. Immutable after
// creation except for Status/UpdatedAt.
type Order struct {
	ID              string      `json:"id"`
	TableSessionID  string      `json:"table_session_id"`
	GuestSessionID  string      `json:"guest_session_id"`
	Status          string      `json:"status"`
	PreparationTime int         `json:"preparation_time"` // minutes
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem is one priced line within an order. Price is snapshotted from the
// menu at order time and never recomputed from the live catalog.
type OrderItem struct {
	ID         string  `json:"id"`
	OrderID    string  `json:"order_id"`
	MenuItemID uint    `json:"menu_item_id"`
	Name       string  `json:"name,omitempty"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
}

// ComputeTotals derives the money amounts for a set of order items from
// their snapshotted prices. Tax is rounded half-up to the nearest currency
// unit.
func ComputeTotals(items []OrderItem) (subtotal, tax, total float64) {
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	tax = math.Round(subtotal * TaxRate)
	total = subtotal + tax

	return subtotal, tax, total
}

// ItemCount is the total quantity across all lines.
func ItemCount(items []OrderItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	return count
}

// OrderReceipt is returned right after a cart submission.
type OrderReceipt struct {
	OrderID  string  `json:"order_id"`
	Status   string  `json:"status"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// OrderDetail is a single order with its table number and named lines,
// totals recomputed from the stored items.
type OrderDetail struct {
	ID          string            `json:"id"`
	TableNumber int               `json:"table_number"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	Subtotal    float64           `json:"subtotal"`
	Tax         float64           `json:"tax"`
	Total       float64           `json:"total"`
	Items       []OrderDetailItem `json:"items"`
}

type OrderDetailItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// OrderSummary is one row in a table's order list.
type OrderSummary struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Subtotal  float64   `json:"subtotal"`
	Tax       float64   `json:"tax"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"item_count"`
}
