package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tableside/cafe-ordering-api/internal/domain"
	"github.com/tableside/cafe-ordering-api/internal/repository"
)

var (
	ErrOrderNotFound       = repository.ErrOrderNotFound
	ErrGuestSessionUnknown = repository.ErrGuestSessionNotFound
	ErrEmptyCart           = errors.New("order must contain at least one item")
	ErrInvalidCartItem     = errors.New("cart items need a menu item id and a positive quantity")
	ErrItemsUnavailable    = errors.New("some menu items are not available or do not exist")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
)

// CartItem is one requested line of a cart submission.
type CartItem struct {
	MenuItemID uint
	Quantity   int
}

type OrderRepository interface {
	CreateWithItems(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, orderID string) (domain.Order, int, error)
	FindForActiveSessions(ctx context.Context, tableID uint, guestSessionID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (domain.Order, error)
}

type OrderMenuRepository interface {
	FindAvailableItemsByIDs(ctx context.Context, ids []uint) ([]domain.MenuItem, error)
}

type OrderTableRepository interface {
	FindByNumber(ctx context.Context, tableNumber int) (domain.Table, error)
}

// SessionManager resolves the (table, table session, guest session) triple an
// order attaches to.
type SessionManager interface {
	ResolveTable(ctx context.Context, tableNumber int) (domain.Table, error)
	ResolveTableSession(ctx context.Context, table domain.Table) (domain.TableSession, error)
	ResolveGuestSession(ctx context.Context, tableSession domain.TableSession, guestToken string) (domain.GuestSession, error)
	FindGuestSessionByToken(ctx context.Context, guestToken string) (domain.GuestSession, error)
}

// OrderService turns carts into priced, status-tracked orders and serves the
// order read paths.
type OrderService struct {
	repo     OrderRepository
	menuRepo OrderMenuRepository
	tables   OrderTableRepository
	sessions SessionManager
}

func NewOrderService(repo OrderRepository, menuRepo OrderMenuRepository, tables OrderTableRepository, sessions SessionManager) *OrderService {
	return &OrderService{
		repo:     repo,
		menuRepo: menuRepo,
		tables:   tables,
		sessions: sessions,
	}
}

// CreateOrder validates the cart against the catalog, resolves the session
// context and persists the order with its lines in one shot. Duplicate menu
// items in the cart stay separate lines; each line snapshots the current
// menu price. Any unavailable or unknown item fails the whole order.
func (s *OrderService) CreateOrder(ctx context.Context, tableNumber int, cart []CartItem, guestToken string) (domain.OrderReceipt, error) {
	if len(cart) == 0 {
		return domain.OrderReceipt{}, ErrEmptyCart
	}
	for _, line := range cart {
		if line.MenuItemID == 0 || line.Quantity <= 0 {
			return domain.OrderReceipt{}, ErrInvalidCartItem
		}
	}

	table, err := s.sessions.ResolveTable(ctx, tableNumber)
	if err != nil {
		return domain.OrderReceipt{}, err
	}

	tableSession, err := s.sessions.ResolveTableSession(ctx, table)
	if err != nil {
		return domain.OrderReceipt{}, fmt.Errorf("s.sessions.ResolveTableSession -> %w", err)
	}

	guestSession, err := s.sessions.ResolveGuestSession(ctx, tableSession, guestToken)
	if err != nil {
		return domain.OrderReceipt{}, fmt.Errorf("s.sessions.ResolveGuestSession -> %w", err)
	}

	menuItems, err := s.resolveCartItems(ctx, cart)
	if err != nil {
		return domain.OrderReceipt{}, err
	}

	items := make([]domain.OrderItem, len(cart))
	for i, line := range cart {
		items[i] = domain.OrderItem{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			Price:      menuItems[line.MenuItemID].Price,
			Status:     domain.OrderStatusPending,
		}
	}

	prepItems := make([]domain.MenuItem, 0, len(menuItems))
	for _, item := range menuItems {
		prepItems = append(prepItems, item)
	}

	created, err := s.repo.CreateWithItems(ctx, domain.Order{
		TableSessionID:  tableSession.ID,
		GuestSessionID:  guestSession.ID,
		Status:          domain.OrderStatusPending,
		PreparationTime: domain.MaxPreparationTime(prepItems),
		Items:           items,
	})
	if err != nil {
		return domain.OrderReceipt{}, fmt.Errorf("s.repo.CreateWithItems -> %w", err)
	}

	subtotal, tax, total := domain.ComputeTotals(created.Items)

	return domain.OrderReceipt{
		OrderID:  created.ID,
		Status:   created.Status,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
	}, nil
}

// resolveCartItems fetches the distinct requested menu items, available ones
// only, and fails when anything is missing.
func (s *OrderService) resolveCartItems(ctx context.Context, cart []CartItem) (map[uint]domain.MenuItem, error) {
	distinct := make([]uint, 0, len(cart))
	seen := make(map[uint]struct{}, len(cart))
	for _, line := range cart {
		if _, ok := seen[line.MenuItemID]; ok {
			continue
		}
		seen[line.MenuItemID] = struct{}{}
		distinct = append(distinct, line.MenuItemID)
	}

	menuItems, err := s.menuRepo.FindAvailableItemsByIDs(ctx, distinct)
	if err != nil {
		return nil, fmt.Errorf("s.menuRepo.FindAvailableItemsByIDs -> %w", err)
	}

	if len(menuItems) != len(distinct) {
		return nil, ErrItemsUnavailable
	}

	byID := make(map[uint]domain.MenuItem, len(menuItems))
	for _, item := range menuItems {
		byID[item.ID] = item
	}

	return byID, nil
}

// GetOrder fetches a single order with its table number and named lines,
// recomputing totals from the stored items.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (domain.OrderDetail, error) {
	order, tableNumber, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domain.OrderDetail{}, ErrOrderNotFound
		}

		return domain.OrderDetail{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	subtotal, tax, total := domain.ComputeTotals(order.Items)

	items := make([]domain.OrderDetailItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = domain.OrderDetailItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Price * float64(item.Quantity),
		}
	}

	return domain.OrderDetail{
		ID:          order.ID,
		TableNumber: tableNumber,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       total,
		Items:       items,
	}, nil
}

// GetOrdersForTable lists the orders of the table's currently-active seating,
// newest first, optionally narrowed to one guest's orders. Orders from
// completed seatings are excluded.
func (s *OrderService) GetOrdersForTable(ctx context.Context, tableNumber int, guestToken string) ([]domain.OrderSummary, error) {
	if tableNumber <= 0 {
		return nil, ErrInvalidTableNumber
	}

	table, err := s.tables.FindByNumber(ctx, tableNumber)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return nil, ErrTableNotFound
		}

		return nil, fmt.Errorf("s.tables.FindByNumber -> %w", err)
	}

	guestSessionID := ""
	if guestToken != "" {
		guestSession, err := s.sessions.FindGuestSessionByToken(ctx, guestToken)
		if err != nil {
			// A token this system never saw has no orders here.
			if errors.Is(err, repository.ErrGuestSessionNotFound) {
				return []domain.OrderSummary{}, nil
			}

			return nil, fmt.Errorf("s.sessions.FindGuestSessionByToken -> %w", err)
		}
		guestSessionID = guestSession.ID
	}

	orders, err := s.repo.FindForActiveSessions(ctx, table.ID, guestSessionID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindForActiveSessions -> %w", err)
	}

	summaries := make([]domain.OrderSummary, len(orders))
	for i, order := range orders {
		subtotal, tax, total := domain.ComputeTotals(order.Items)
		summaries[i] = domain.OrderSummary{
			ID:        order.ID,
			Status:    order.Status,
			CreatedAt: order.CreatedAt,
			Subtotal:  subtotal,
			Tax:       tax,
			Total:     total,
			ItemCount: domain.ItemCount(order.Items),
		}
	}

	return summaries, nil
}

// UpdateOrderStatus applies a staff status change. Only membership in the
// known status set is validated; the transition graph is deliberately
// permissive.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, status string) (domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return domain.Order{}, ErrInvalidOrderStatus
	}

	order, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domain.Order{}, ErrOrderNotFound
		}

		return domain.Order{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return order, nil
}
