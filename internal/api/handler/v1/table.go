package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tableside/cafe-ordering-api/internal/api/handler/v1/response"
	"github.com/tableside/cafe-ordering-api/internal/domain"
	"github.com/tableside/cafe-ordering-api/internal/service"
)

type TableService interface {
	ListTables(ctx context.Context) ([]domain.Table, error)
	EndTableSession(ctx context.Context, tableNumber int) error
}

type TableHandler struct {
	svc TableService
}

func NewTableHandler(svc TableService) *TableHandler {
	return &TableHandler{
		svc: svc,
	}
}

// HandleListTables godoc
// @Summary      List tables
// @Tags         tables
// @Produce      json
// @Success      200  {array}   domain.Table
// @Failure      500  {object}  response.Err
// @Router       /tables [get]
func (h *TableHandler) HandleListTables(ctx *gin.Context) {
	tables, err := h.svc.ListTables(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListTables -> h.svc.ListTables -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tables)
}

// HandleEndTableSession godoc
// @Summary      End a table's session
// @Description  Completes the table's active session and all attached guest sessions, clearing it for the next party
// @Tags         tables
// @Produce      json
// @Param        tableNumber  path      int  true  "Table number"
// @Success      200          {object}  response.SessionEnded
// @Failure      400          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /tables/{tableNumber}/session/end [post]
func (h *TableHandler) HandleEndTableSession(ctx *gin.Context) {
	tableNumber, err := strconv.Atoi(ctx.Param("tableNumber"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid table number: %w", err)))
		return
	}

	if err = h.svc.EndTableSession(ctx.Request.Context(), tableNumber); err != nil {
		if errors.Is(err, service.ErrInvalidTableNumber) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidTableNumber))
			return
		}
		if errors.Is(err, service.ErrTableNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("table", "number", tableNumber))
			return
		}

		err = fmt.Errorf("v1.HandleEndTableSession -> h.svc.EndTableSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.SessionEnded{Success: true})
}
