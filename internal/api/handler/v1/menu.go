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

type MenuService interface {
	GetMenu(ctx context.Context, tableNumber int) (domain.MenuView, error)
	AddCategory(ctx context.Context, name string) (domain.MenuCategory, error)
	DeleteCategory(ctx context.Context, categoryID uint) error
	AddMenuItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, itemID uint) error
}

type MenuHandler struct {
	svc MenuService
}

func NewMenuHandler(svc MenuService) *MenuHandler {
	return &MenuHandler{
		svc: svc,
	}
}

// HandleGetMenu godoc
// @Summary      Get the menu for a table
// @Description  Resolves the table by number (creating it on first sight) and returns all active categories with their items
// @Tags         menu
// @Produce      json
// @Param        table  query     int  true  "Table number"
// @Success      200    {object}  domain.MenuView
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /menu [get]
func (h *MenuHandler) HandleGetMenu(ctx *gin.Context) {
	tableNumber, err := strconv.Atoi(ctx.Query("table"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid table number: %w", err)))
		return
	}

	menu, err := h.svc.GetMenu(ctx.Request.Context(), tableNumber)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTableNumber) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidTableNumber))
			return
		}

		err = fmt.Errorf("v1.HandleGetMenu -> h.svc.GetMenu -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, menu)
}

// HandleAddCategory godoc
// @Summary      Add a menu category
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateCategoryRequest  true  "request body"
// @Success      201      {object}  domain.MenuCategory
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /menu/categories [post]
func (h *MenuHandler) HandleAddCategory(ctx *gin.Context) {
	var req request.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	category, err := h.svc.AddCategory(ctx.Request.Context(), req.Name)
	if err != nil {
		err = fmt.Errorf("v1.HandleAddCategory -> h.svc.AddCategory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// HandleDeleteCategory godoc
// @Summary      Delete a menu category
// @Tags         menu
// @Produce      json
// @Param        categoryID  path  int  true  "Category ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /menu/categories/{categoryID} [delete]
func (h *MenuHandler) HandleDeleteCategory(ctx *gin.Context) {
	categoryID, err := strconv.ParseUint(ctx.Param("categoryID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid category ID: %w", err)))
		return
	}

	if err = h.svc.DeleteCategory(ctx.Request.Context(), uint(categoryID)); err != nil {
		if errors.Is(err, service.ErrMenuCategoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("category", "ID", categoryID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteCategory -> h.svc.DeleteCategory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAddMenuItem godoc
// @Summary      Add a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateMenuItemRequest  true  "request body"
// @Success      201      {object}  domain.MenuItem
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /menu/items [post]
func (h *MenuHandler) HandleAddMenuItem(ctx *gin.Context) {
	var req request.CreateMenuItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	item, err := h.svc.AddMenuItem(ctx.Request.Context(), domain.MenuItem{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		IsAvailable:     available,
		PreparationTime: req.PreparationTime,
		ImageKey:        req.ImageKey,
	})
	if err != nil {
		if errors.Is(err, service.ErrMenuCategoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("category", "ID", req.CategoryID))
			return
		}

		err = fmt.Errorf("v1.HandleAddMenuItem -> h.svc.AddMenuItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// HandleUpdateMenuItem godoc
// @Summary      Update a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        itemID   path      int  true  "Menu item ID"
// @Param        request  body      request.UpdateMenuItemRequest  true  "request body"
// @Success      200      {object}  domain.MenuItem
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /menu/items/{itemID} [put]
func (h *MenuHandler) HandleUpdateMenuItem(ctx *gin.Context) {
	itemID, err := strconv.ParseUint(ctx.Param("itemID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid item ID: %w", err)))
		return
	}

	var req request.UpdateMenuItemRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	item, err := h.svc.UpdateMenuItem(ctx.Request.Context(), domain.MenuItem{
		ID:              uint(itemID),
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		IsAvailable:     available,
		PreparationTime: req.PreparationTime,
		ImageKey:        req.ImageKey,
	})
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("menu item", "ID", itemID))
			return
		}
		if errors.Is(err, service.ErrMenuCategoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("category", "ID", req.CategoryID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateMenuItem -> h.svc.UpdateMenuItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleDeleteMenuItem godoc
// @Summary      Delete a menu item
// @Tags         menu
// @Produce      json
// @Param        itemID  path  int  true  "Menu item ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /menu/items/{itemID} [delete]
func (h *MenuHandler) HandleDeleteMenuItem(ctx *gin.Context) {
	itemID, err := strconv.ParseUint(ctx.Param("itemID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid item ID: %w", err)))
		return
	}

	if err = h.svc.DeleteMenuItem(ctx.Request.Context(), uint(itemID)); err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("menu item", "ID", itemID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteMenuItem -> h.svc.DeleteMenuItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
