package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type Order struct {
	ID string `gorm:"primaryKey"`

	TableSessionID string       `gorm:"not null;index"`
	TableSession   TableSession `gorm:"foreignKey:TableSessionID"`
	GuestSessionID string       `gorm:"not null;index"`
	GuestSession   GuestSession `gorm:"foreignKey:GuestSessionID"`

	Status          string      `gorm:"not null;default:'pending'"`
	PreparationTime int         `gorm:"not null"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type OrderItem struct {
	ID string `gorm:"primaryKey"`

	OrderID    string   `gorm:"not null;index"`
	MenuItemID uint     `gorm:"not null"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID"`

	Quantity int     `gorm:"not null"`
	Price    float64 `gorm:"type:decimal(10,2);not null"` // snapshot at order time
	Status   string  `gorm:"not null;default:'pending'"`
}

type OrderDAO struct {
	db *gorm.DB
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{
		db: db,
	}
}

// InsertWithItems persists the order and all its lines in one transaction.
// A failed insert leaves no partial order behind.
func (d *OrderDAO) InsertWithItems(ctx context.Context, order Order, items []OrderItem) (Order, []OrderItem, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		items[i].OrderID = order.ID
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return Order{}, nil, err
	}

	return order, items, nil
}

func (d *OrderDAO) FindByID(ctx context.Context, orderID string) (Order, error) {
	var order Order

	result := d.db.WithContext(ctx).
		Preload("Items.MenuItem").
		Preload("TableSession.Table").
		First(&order, "id = ?", orderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, result.Error
	}

	return order, nil
}

// FindForActiveSessions returns orders belonging to the table's
// currently-active sessions, newest first. Orders from completed seatings
// are excluded. An empty guestSessionID disables the guest filter.
func (d *OrderDAO) FindForActiveSessions(ctx context.Context, tableID uint, guestSessionID string) ([]Order, error) {
	query := d.db.WithContext(ctx).
		Joins("JOIN table_sessions ON table_sessions.id = orders.table_session_id").
		Where("table_sessions.table_id = ? AND table_sessions.status = ?", tableID, "active").
		Preload("Items").
		Order("orders.created_at DESC")

	if guestSessionID != "" {
		query = query.Where("orders.guest_session_id = ?", guestSessionID)
	}

	var orders []Order
	result := query.Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}

	return orders, nil
}

func (d *OrderDAO) UpdateStatus(ctx context.Context, orderID, status string) (Order, error) {
	result := d.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return Order{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Order{}, ErrOrderNotFound
	}

	var order Order
	if err := d.db.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		return Order{}, err
	}

	return order, nil
}
