package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tableside/cafe-ordering-api/internal/domain"
	"github.com/tableside/cafe-ordering-api/internal/repository"
	"github.com/tableside/cafe-ordering-api/internal/repository/dao"
	"github.com/tableside/cafe-ordering-api/internal/service"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%v?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(db))

	return db
}

func newSessionService(db *gorm.DB) *service.SessionService {
	return service.NewSessionService(
		repository.NewSessionRepository(dao.NewSessionDAO(db)),
		repository.NewTableRepository(dao.NewTableDAO(db)),
	)
}

func newOrderService(db *gorm.DB) *service.OrderService {
	return service.NewOrderService(
		repository.NewOrderRepository(dao.NewOrderDAO(db)),
		repository.NewMenuRepository(dao.NewMenuDAO(db)),
		repository.NewTableRepository(dao.NewTableDAO(db)),
		newSessionService(db),
	)
}

func newMenuService(db *gorm.DB) *service.MenuService {
	return service.NewMenuService(
		repository.NewMenuRepository(dao.NewMenuDAO(db)),
		newSessionService(db),
		"https://cdn.cafe-ordering.com",
	)
}

// seedMenuItem creates a category on first use and one item under it.
func seedMenuItem(t *testing.T, db *gorm.DB, name string, price float64, available bool, prepTime int) dao.MenuItem {
	t.Helper()

	var category dao.MenuCategory
	err := db.First(&category).Error
	if err != nil {
		require.ErrorIs(t, err, gorm.ErrRecordNotFound)
		category = dao.MenuCategory{Name: "Drinks", IsActive: true}
		require.NoError(t, db.Create(&category).Error)
	}

	item := dao.MenuItem{
		CategoryID:      category.ID,
		Name:            name,
		Price:           price,
		IsAvailable:     available,
		PreparationTime: prepTime,
	}
	require.NoError(t, db.Create(&item).Error)

	return item
}

func placeOrder(t *testing.T, svc *service.OrderService, tableNumber int, guestToken string, cart []service.CartItem) domain.OrderReceipt {
	t.Helper()

	receipt, err := svc.CreateOrder(context.Background(), tableNumber, cart, guestToken)
	require.NoError(t, err)

	return receipt
}
