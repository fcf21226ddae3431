package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tableside/cafe-ordering-api/internal/domain"
	"github.com/tableside/cafe-ordering-api/internal/repository/dao"
	"github.com/tableside/cafe-ordering-api/internal/service"
)

func TestCreateOrder_CartValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, 1, nil, "")
	assert.ErrorIs(t, err, service.ErrEmptyCart)

	_, err = svc.CreateOrder(ctx, 1, []service.CartItem{{MenuItemID: 1, Quantity: 0}}, "")
	assert.ErrorIs(t, err, service.ErrInvalidCartItem)

	_, err = svc.CreateOrder(ctx, 1, []service.CartItem{{MenuItemID: 0, Quantity: 1}}, "")
	assert.ErrorIs(t, err, service.ErrInvalidCartItem)

	_, err = svc.CreateOrder(ctx, 0, []service.CartItem{{MenuItemID: 1, Quantity: 1}}, "")
	assert.ErrorIs(t, err, service.ErrInvalidTableNumber)
}

func TestCreateOrder_ComputesTotals(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	latte := seedMenuItem(t, db, "Latte", 111, true, 5)

	receipt := placeOrder(t, svc, 1, "", []service.CartItem{
		{MenuItemID: latte.ID, Quantity: 3},
	})

	assert.Equal(t, domain.OrderStatusPending, receipt.Status)
	assert.Equal(t, 333.0, receipt.Subtotal)
	assert.Equal(t, 17.0, receipt.Tax)
	assert.Equal(t, 350.0, receipt.Total)
}

func TestCreateOrder_DuplicateLinesStaySeparate(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	latte := seedMenuItem(t, db, "Latte", 100, true, 5)

	receipt := placeOrder(t, svc, 1, "", []service.CartItem{
		{MenuItemID: latte.ID, Quantity: 1},
		{MenuItemID: latte.ID, Quantity: 2},
	})

	assert.Equal(t, 300.0, receipt.Subtotal)
	assert.Equal(t, 15.0, receipt.Tax)
	assert.Equal(t, 315.0, receipt.Total)

	var lines int64
	require.NoError(t, db.Model(&dao.OrderItem{}).Count(&lines).Error)
	assert.EqualValues(t, 2, lines)
}

func TestCreateOrder_UnavailableItemFailsWholeOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	latte := seedMenuItem(t, db, "Latte", 100, true, 5)
	soup := seedMenuItem(t, db, "Soup of the Day", 80, false, 15)

	_, err := svc.CreateOrder(ctx, 1, []service.CartItem{
		{MenuItemID: latte.ID, Quantity: 1},
		{MenuItemID: soup.ID, Quantity: 1},
	}, "")
	assert.ErrorIs(t, err, service.ErrItemsUnavailable)

	_, err = svc.CreateOrder(ctx, 1, []service.CartItem{
		{MenuItemID: 9999, Quantity: 1},
	}, "")
	assert.ErrorIs(t, err, service.ErrItemsUnavailable)

	// Nothing was persisted for the failed submissions.
	var orders int64
	require.NoError(t, db.Model(&dao.Order{}).Count(&orders).Error)
	assert.EqualValues(t, 0, orders)
}

func TestCreateOrder_PreparationTimeIsMax(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	latte := seedMenuItem(t, db, "Latte", 100, true, 5)
	steak := seedMenuItem(t, db, "Steak", 400, true, 25)
	water := seedMenuItem(t, db, "Water", 10, true, 0) // unset, defaults to 10

	receipt := placeOrder(t, svc, 1, "", []service.CartItem{
		{MenuItemID: latte.ID, Quantity: 4},
		{MenuItemID: steak.ID, Quantity: 1},
		{MenuItemID: water.ID, Quantity: 2},
	})

	var order dao.Order
	require.NoError(t, db.First(&order, "id = ?", receipt.OrderID).Error)
	assert.Equal(t, 25, order.PreparationTime)
}

func TestCreateOrder_QuickCartKeepsItsOwnPrepTime(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	espresso := seedMenuItem(t, db, "Espresso", 60, true, 5)

	receipt := placeOrder(t, svc, 1, "", []service.CartItem{
		{MenuItemID: espresso.ID, Quantity: 2},
	})

	// A cart whose slowest item takes 5 minutes reports 5, not the
	// unset-item default.
	var order dao.Order
	require.NoError(t, db.First(&order, "id = ?", receipt.OrderID).Error)
	assert.Equal(t, 5, order.PreparationTime)
}

func TestGetOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	latte := seedMenuItem(t, db, "Latte", 100, true, 5)

	receipt := placeOrder(t, svc, 4, "", []service.CartItem{
		{MenuItemID: latte.ID, Quantity: 2},
	})

	detail, err := svc.GetOrder(ctx, receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, receipt.OrderID, detail.ID)
	assert.Equal(t, 4, detail.TableNumber)
	assert.Equal(t, domain.OrderStatusPending, detail.Status)
	assert.Equal(t, 200.0, detail.Subtotal)
	assert.Equal(t, 10.0, detail.Tax)
	assert.Equal(t, 210.0, detail.Total)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Latte", detail.Items[0].Name)
	assert.Equal(t, 2, detail.Items[0].Quantity)
	assert.Equal(t, 200.0, detail.Items[0].Total)

	_, err = svc.GetOrder(ctx, "no-such-order")
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
}

func TestGetOrder_PriceSnapshotSurvivesMenuChanges(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	latte := seedMenuItem(t, db, "Latte", 100, true, 5)

	receipt := placeOrder(t, svc, 1, "", []service.CartItem{
		{MenuItemID: latte.ID, Quantity: 1},
	})

	// The kitchen raises the price after the order was placed.
	require.NoError(t, db.Model(&dao.MenuItem{}).
		Where("id = ?", latte.ID).
		Update("price", 250).Error)

	detail, err := svc.GetOrder(ctx, receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, detail.Subtotal)
	assert.Equal(t, receipt.Total, detail.Total)
}

func TestGetOrdersForTable(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	latte := seedMenuItem(t, db, "Latte", 100, true, 5)

	placeOrder(t, svc, 2, "guest_alice111", []service.CartItem{
		{MenuItemID: latte.ID, Quantity: 1},
	})
	placeOrder(t, svc, 2, "guest_bob22222", []service.CartItem{
		{MenuItemID: latte.ID, Quantity: 3},
	})

	_, err := svc.GetOrdersForTable(ctx, 99, "")
	assert.ErrorIs(t, err, service.ErrTableNotFound)

	all, err := svc.GetOrdersForTable(ctx, 2, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.GetOrdersForTable(ctx, 2, "guest_bob22222")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 3, mine[0].ItemCount)
	assert.Equal(t, 300.0, mine[0].Subtotal)

	// A token this system never issued simply has no orders.
	unknown, err := svc.GetOrdersForTable(ctx, 2, "guest_stranger9")
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestGetOrdersForTable_ExcludesCompletedSeatings(t *testing.T) {
	db := newTestDB(t)
	orderSvc := newOrderService(db)
	sessionSvc := newSessionService(db)
	ctx := context.Background()

	latte := seedMenuItem(t, db, "Latte", 100, true, 5)

	placeOrder(t, orderSvc, 5, "", []service.CartItem{
		{MenuItemID: latte.ID, Quantity: 1},
	})

	require.NoError(t, sessionSvc.EndTableSession(ctx, 5))

	// The previous party's orders do not leak into the next seating.
	orders, err := orderSvc.GetOrdersForTable(ctx, 5, "")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	latte := seedMenuItem(t, db, "Latte", 100, true, 5)

	receipt := placeOrder(t, svc, 1, "", []service.CartItem{
		{MenuItemID: latte.ID, Quantity: 1},
	})

	_, err := svc.UpdateOrderStatus(ctx, receipt.OrderID, "shipped")
	assert.ErrorIs(t, err, service.ErrInvalidOrderStatus)

	// The bogus update left the order untouched.
	var stored dao.Order
	require.NoError(t, db.First(&stored, "id = ?", receipt.OrderID).Error)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)

	updated, err := svc.UpdateOrderStatus(ctx, receipt.OrderID, domain.OrderStatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, updated.Status)

	_, err = svc.UpdateOrderStatus(ctx, "no-such-order", domain.OrderStatusReady)
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
}
