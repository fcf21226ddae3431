package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tableside/cafe-ordering-api/internal/api/handler/v1/request"
	"github.com/tableside/cafe-ordering-api/internal/api/handler/v1/response"
	"github.com/tableside/cafe-ordering-api/internal/domain"
	"github.com/tableside/cafe-ordering-api/internal/service"
)

type OrderService interface {
	CreateOrder(ctx context.Context, tableNumber int, cart []service.CartItem, guestToken string) (domain.OrderReceipt, error)
	GetOrder(ctx context.Context, orderID string) (domain.OrderDetail, error)
	GetOrdersForTable(ctx context.Context, tableNumber int, guestToken string) ([]domain.OrderSummary, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (domain.Order, error)
}

type OrderHandler struct {
	svc OrderService
}

func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{
		svc: svc,
	}
}

// HandleCreateOrder godoc
// @Summary      Place an order
// @Description  Validates the cart, attaches it to the table's active session and returns the priced receipt
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateOrderRequest  true  "request body"
// @Success      201      {object}  domain.OrderReceipt
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /orders [post]
func (h *OrderHandler) HandleCreateOrder(ctx *gin.Context) {
	var req request.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	cart := make([]service.CartItem, len(req.Items))
	for i, line := range req.Items {
		cart[i] = service.CartItem{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
		}
	}

	receipt, err := h.svc.CreateOrder(ctx.Request.Context(), req.TableNumber, cart, req.GuestToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTableNumber),
			errors.Is(err, service.ErrEmptyCart),
			errors.Is(err, service.ErrInvalidCartItem),
			errors.Is(err, service.ErrItemsUnavailable):
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateOrder -> h.svc.CreateOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, receipt)
}

// HandleGetOrder godoc
// @Summary      Get an order
// @Description  Returns a single order with its named lines and computed totals
// @Tags         orders
// @Produce      json
// @Param        orderID  path      string  true  "Order ID"
// @Success      200      {object}  domain.OrderDetail
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /orders/{orderID} [get]
func (h *OrderHandler) HandleGetOrder(ctx *gin.Context) {
	orderID := ctx.Param("orderID")

	detail, err := h.svc.GetOrder(ctx.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", orderID))
			return
		}

		err = fmt.Errorf("v1.HandleGetOrder -> h.svc.GetOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// HandleGetOrdersForTable godoc
// @Summary      List a table's current orders
// @Description  Lists orders of the table's active seating, newest first, optionally narrowed to one guest token
// @Tags         orders
// @Produce      json
// @Param        tableNumber  path      int     true   "Table number"
// @Param        guest_token  query     string  false  "Guest token"
// @Success      200          {array}   domain.OrderSummary
// @Failure      400          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /orders/table/{tableNumber} [get]
func (h *OrderHandler) HandleGetOrdersForTable(ctx *gin.Context) {
	tableNumber, err := strconv.Atoi(ctx.Param("tableNumber"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid table number: %w", err)))
		return
	}

	summaries, err := h.svc.GetOrdersForTable(ctx.Request.Context(), tableNumber, ctx.Query("guest_token"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidTableNumber) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidTableNumber))
			return
		}
		if errors.Is(err, service.ErrTableNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("table", "number", tableNumber))
			return
		}

		err = fmt.Errorf("v1.HandleGetOrdersForTable -> h.svc.GetOrdersForTable -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summaries)
}

// HandleUpdateOrderStatus godoc
// @Summary      Update an order's status
// @Description  Staff endpoint moving an order through its lifecycle
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderID  path      string  true  "Order ID"
// @Param        request  body      request.UpdateOrderStatusRequest  true  "request body"
// @Success      200      {object}  response.OrderStatus
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /orders/{orderID}/status [patch]
func (h *OrderHandler) HandleUpdateOrderStatus(ctx *gin.Context) {
	orderID := ctx.Param("orderID")

	var req request.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := h.svc.UpdateOrderStatus(ctx.Request.Context(), orderID, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrderStatus) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidOrderStatus))
			return
		}
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", orderID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateOrderStatus -> h.svc.UpdateOrderStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.OrderStatus{
		ID:     order.ID,
		Status: order.Status,
	})
}
