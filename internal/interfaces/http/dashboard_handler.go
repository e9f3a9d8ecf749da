package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/dashboard"
	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/domain/batchview"
)

// DashboardHandler maneja el tablero, la tarjeta de estiba y /me.
type DashboardHandler struct {
	uc *dashboard.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetDashboard godoc
// @Summary      Tablero de lotes
// @Description  Lotes agrupados por día (más reciente primero), con ventas filtradas por
//
//	estado de pago y entrega, y el total a cobrar sin filtrar.
//
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        paid       query  string  false  "all | paid | not_paid"
// @Param        delivered  query  string  false  "all | delivered | not_delivered"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	criteria := batchview.ParseCriteria(c.Query("paid"), c.Query("delivered"))
	out, err := h.uc.GetDashboard(c.Context(), userID, criteria)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMe godoc
// @Summary      Usuario actual y capacidades
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *DashboardHandler) GetMe(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetStockCard godoc
// @Summary      Tarjeta de estiba
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD (por defecto hace 7 días)"
// @Param        to    query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Param        view  query  string  false  "all | sold | remaining"
// @Success      200  {object}  dto.StockCardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-card [get]
func (h *DashboardHandler) GetStockCard(c *fiber.Ctx) error {
	out, err := h.uc.GetStockCard(c.Context(), dashboard.StockCardQuery{
		From: c.Query("from"),
		To:   c.Query("to"),
		View: c.Query("view"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
