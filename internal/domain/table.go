package domain

import "time"

// Table is a physical ordering point identified by its client-facing number.
// Tables are created lazily the first time an unseen number shows up on a
// menu fetch or an order.
type Table struct {
	ID          uint      `json:"id"`
	TableNumber int       `json:"table_number"`
	QRCodeURL   string    `json:"qr_code_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
