package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// StockService consulta de existencias y umbral de alerta (*inventory.StockUseCase).
type StockService interface {
	GetStock(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error)
	SetAlert(ctx context.Context, productID, warehouseID string, in dto.SetAlertRequest) (*entity.StockEntry, error)
}

// StockHandler existencias por producto y bodega.
type StockHandler struct {
	uc  StockService
	log *logger.Logger
}

func NewStockHandler(uc StockService, log *logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, log: log}
}

// GetStock godoc
// @Summary      Existencia de un producto en una bodega
// @Description  Si el par aún no tiene movimientos responde cantidad 0.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId    path      string  true  "ID del producto"
// @Param        warehouseId  path      string  true  "ID de la bodega"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock/{productId}/{warehouseId} [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	e, err := h.uc.GetStock(c.UserContext(), c.Params("productId"), c.Params("warehouseId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewStockResponse(e))
}

// SetAlert godoc
// @Summary      Cambiar umbral de alerta
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId    path      string               true  "ID del producto"
// @Param        warehouseId  path      string               true  "ID de la bodega"
// @Param        body         body      dto.SetAlertRequest  true  "Nuevo umbral"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/{productId}/{warehouseId}/alert [put]
func (h *StockHandler) SetAlert(c *fiber.Ctx) error {
	var in dto.SetAlertRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	e, err := h.uc.SetAlert(c.UserContext(), c.Params("productId"), c.Params("warehouseId"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewStockResponse(e))
}
