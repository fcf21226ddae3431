package v1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	v1 "github.com/tableside/cafe-ordering-api/internal/api/handler/v1"
	"github.com/tableside/cafe-ordering-api/internal/repository"
	"github.com/tableside/cafe-ordering-api/internal/repository/dao"
	"github.com/tableside/cafe-ordering-api/internal/service"
)

func setupOrderRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%v?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(db))

	sessionSvc := service.NewSessionService(
		repository.NewSessionRepository(dao.NewSessionDAO(db)),
		repository.NewTableRepository(dao.NewTableDAO(db)),
	)
	orderSvc := service.NewOrderService(
		repository.NewOrderRepository(dao.NewOrderDAO(db)),
		repository.NewMenuRepository(dao.NewMenuDAO(db)),
		repository.NewTableRepository(dao.NewTableDAO(db)),
		sessionSvc,
	)
	handler := v1.NewOrderHandler(orderSvc)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/orders", handler.HandleCreateOrder)
	router.GET("/orders/:orderID", handler.HandleGetOrder)
	router.PATCH("/orders/:orderID/status", handler.HandleUpdateOrderStatus)

	return router, db
}

func seedAvailableItem(t *testing.T, db *gorm.DB, price float64) dao.MenuItem {
	t.Helper()

	category := dao.MenuCategory{Name: "Drinks", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	item := dao.MenuItem{
		CategoryID:  category.ID,
		Name:        "Latte",
		Price:       price,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&item).Error)

	return item
}

func TestHandleCreateOrder(t *testing.T) {
	router, db := setupOrderRouter(t)
	item := seedAvailableItem(t, db, 100)

	payload := map[string]interface{}{
		"table_number": 1,
		"items": []map[string]interface{}{
			{"menu_item_id": item.ID, "quantity": 2},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var receipt struct {
		OrderID  string  `json:"order_id"`
		Status   string  `json:"status"`
		Subtotal float64 `json:"subtotal"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &receipt))
	assert.NotEmpty(t, receipt.OrderID)
	assert.Equal(t, "pending", receipt.Status)
	assert.Equal(t, 200.0, receipt.Subtotal)
	assert.Equal(t, 10.0, receipt.Tax)
	assert.Equal(t, 210.0, receipt.Total)
}

func TestHandleCreateOrder_BadRequests(t *testing.T) {
	router, db := setupOrderRouter(t)
	item := seedAvailableItem(t, db, 100)

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{
			name: "missing items",
			payload: map[string]interface{}{
				"table_number": 1,
			},
		},
		{
			name: "missing table number",
			payload: map[string]interface{}{
				"items": []map[string]interface{}{
					{"menu_item_id": item.ID, "quantity": 1},
				},
			},
		},
		{
			name: "malformed guest token",
			payload: map[string]interface{}{
				"table_number": 1,
				"items": []map[string]interface{}{
					{"menu_item_id": item.ID, "quantity": 1},
				},
				"guest_token": "bad token!",
			},
		},
		{
			name: "unknown menu item",
			payload: map[string]interface{}{
				"table_number": 1,
				"items": []map[string]interface{}{
					{"menu_item_id": 9999, "quantity": 1},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
		})
	}
}

func TestHandleGetOrder_NotFound(t *testing.T) {
	router, _ := setupOrderRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/orders/no-such-order", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleUpdateOrderStatus(t *testing.T) {
	router, db := setupOrderRouter(t)
	item := seedAvailableItem(t, db, 100)

	body, err := json.Marshal(map[string]interface{}{
		"table_number": 1,
		"items": []map[string]interface{}{
			{"menu_item_id": item.ID, "quantity": 1},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var receipt struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &receipt))

	// An unknown status is rejected before touching storage.
	body, err = json.Marshal(map[string]string{"status": "shipped"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPatch, "/orders/"+receipt.OrderID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	body, err = json.Marshal(map[string]string{"status": "accepted"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPatch, "/orders/"+receipt.OrderID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var status struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &status))
	assert.Equal(t, receipt.OrderID, status.ID)
	assert.Equal(t, "accepted", status.Status)
}
