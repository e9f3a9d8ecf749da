package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/usecase"
)

// BatchHandler maneja lotes y sus ventas (protegido).
type BatchHandler struct {
	uc *usecase.BatchUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *usecase.BatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// List godoc
// @Summary      Listar lotes con sus ventas
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.BatchResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear lote
// @Description  price acepta número o texto; date "YYYY-MM-DD" (vacío = hoy).
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "breadType, quantityMade, price, date"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in, GetEmail(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar lote (y sus ventas)
// @Tags         batches
// @Security     Bearer
// @Param        id   path  string  true  "ID del lote"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [delete]
func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateDate godoc
// @Summary      Cambiar la fecha de un lote
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del lote"
// @Param        body  body  dto.UpdateBatchDateRequest  true  "date"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/date [patch]
func (h *BatchHandler) UpdateDate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	var in dto.UpdateBatchDateRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateDate(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateSale godoc
// @Summary      Registrar venta en un lote
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del lote"
// @Param        body  body  dto.CreateSaleRequest  true  "personName, quantitySold, isPaid, isDelivered, isGift"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/sales [post]
func (h *BatchHandler) CreateSale(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	var in dto.CreateSaleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateSale(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSale godoc
// @Summary      Actualizar venta (pagado, entregado, regalo, nombre)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                 true  "ID del lote"
// @Param        saleId  path  string                 true  "ID de la venta"
// @Param        body    body  dto.UpdateSaleRequest  true  "campos a modificar"
// @Success      200     {object}  dto.SaleResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/sales/{saleId} [patch]
func (h *BatchHandler) UpdateSale(c *fiber.Ctx) error {
	batchID, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	saleID, ok := paramID(c, "saleId")
	if !ok {
		return notFound(c)
	}
	var in dto.UpdateSaleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateSale(c.Context(), batchID, saleID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteSale godoc
// @Summary      Eliminar venta
// @Tags         sales
// @Security     Bearer
// @Param        id      path  string  true  "ID del lote"
// @Param        saleId  path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/sales/{saleId} [delete]
func (h *BatchHandler) DeleteSale(c *fiber.Ctx) error {
	batchID, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	saleID, ok := paramID(c, "saleId")
	if !ok {
		return notFound(c)
	}
	if err := h.uc.DeleteSale(c.Context(), batchID, saleID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
