package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tableside/cafe-ordering-api/internal/domain"
	"github.com/tableside/cafe-ordering-api/internal/repository/dao"
)

var ErrOrderNotFound = dao.ErrOrderNotFound

type OrderDAO interface {
	InsertWithItems(ctx context.Context, order dao.Order, items []dao.OrderItem) (dao.Order, []dao.OrderItem, error)
	FindByID(ctx context.Context, orderID string) (dao.Order, error)
	FindForActiveSessions(ctx context.Context, tableID uint, guestSessionID string) ([]dao.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (dao.Order, error)
}

type OrderRepository struct {
	dao OrderDAO
}

func NewOrderRepository(dao OrderDAO) *OrderRepository {
	return &OrderRepository{
		dao: dao,
	}
}

func orderItemDAOToDomain(item dao.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		ID:         item.ID,
		OrderID:    item.OrderID,
		MenuItemID: item.MenuItemID,
		Name:       item.MenuItem.Name,
		Quantity:   item.Quantity,
		Price:      item.Price,
		Status:     item.Status,
	}
}

func orderDAOToDomain(o dao.Order) domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemDAOToDomain(item)
	}

	return domain.Order{
		ID:              o.ID,
		TableSessionID:  o.TableSessionID,
		GuestSessionID:  o.GuestSessionID,
		Status:          o.Status,
		PreparationTime: o.PreparationTime,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// CreateWithItems persists the order and its lines atomically.
func (r *OrderRepository) CreateWithItems(ctx context.Context, order domain.Order) (domain.Order, error) {
	orderDAO := dao.Order{
		TableSessionID:  order.TableSessionID,
		GuestSessionID:  order.GuestSessionID,
		Status:          order.Status,
		PreparationTime: order.PreparationTime,
	}

	itemsDAO := make([]dao.OrderItem, len(order.Items))
	for i, item := range order.Items {
		itemsDAO[i] = dao.OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
			Status:     item.Status,
		}
	}

	createdOrder, createdItems, err := r.dao.InsertWithItems(ctx, orderDAO, itemsDAO)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.InsertWithItems -> %w", err)
	}

	created := orderDAOToDomain(createdOrder)
	created.Items = make([]domain.OrderItem, len(createdItems))
	for i, item := range createdItems {
		created.Items[i] = orderItemDAOToDomain(item)
	}

	return created, nil
}

// FindByID returns the order with named items and the owning table's number.
func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (domain.Order, int, error) {
	order, err := r.dao.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, dao.ErrOrderNotFound) {
			return domain.Order{}, 0, ErrOrderNotFound
		}

		return domain.Order{}, 0, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return orderDAOToDomain(order), order.TableSession.Table.TableNumber, nil
}

func (r *OrderRepository) FindForActiveSessions(ctx context.Context, tableID uint, guestSessionID string) ([]domain.Order, error) {
	ordersDAO, err := r.dao.FindForActiveSessions(ctx, tableID, guestSessionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindForActiveSessions -> %w", err)
	}

	orders := make([]domain.Order, len(ordersDAO))
	for i, o := range ordersDAO {
		orders[i] = orderDAOToDomain(o)
	}

	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID, status string) (domain.Order, error) {
	order, err := r.dao.UpdateStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, dao.ErrOrderNotFound) {
			return domain.Order{}, ErrOrderNotFound
		}

		return domain.Order{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return orderDAOToDomain(order), nil
}
