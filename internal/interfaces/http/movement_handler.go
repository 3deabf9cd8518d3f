package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// MovementService operaciones de movimiento que expone la API.
// La implementa *inventory.MovementUseCase.
type MovementService interface {
	CreatePurchase(ctx context.Context, in dto.CreatePurchaseRequest) (*entity.Purchase, error)
	UpdatePurchase(ctx context.Context, id string, in dto.UpdatePurchaseRequest) (*entity.Purchase, error)
	GetPurchase(ctx context.Context, id string) (*entity.Purchase, error)
	CreatePurchaseReturn(ctx context.Context, purchaseID string, in dto.CreateReturnRequest) (*entity.PurchaseReturn, error)
	GetPurchaseReturn(ctx context.Context, id string) (*entity.PurchaseReturn, error)

	CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*entity.Sale, error)
	UpdateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*entity.Sale, error)
	GetSale(ctx context.Context, id string) (*entity.Sale, error)
	CreateSalesReturn(ctx context.Context, saleID string, in dto.CreateReturnRequest) (*entity.SalesReturn, error)
	GetSalesReturn(ctx context.Context, id string) (*entity.SalesReturn, error)

	CreateTransfer(ctx context.Context, in dto.CreateTransferRequest) (*entity.Transfer, error)
	GetTransfer(ctx context.Context, id string) (*entity.Transfer, error)
	RegisterLostDamaged(ctx context.Context, in dto.LostDamagedRequest) (*entity.LostDamaged, error)
}

// MovementHandler compras, ventas, traslados, bajas y devoluciones (protegido).
type MovementHandler struct {
	uc  MovementService
	log *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc MovementService, log *logger.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, log: log}
}

// ── Compras ───────────────────────────────────────────────────────────────────

// CreatePurchase godoc
// @Summary      Registrar compra
// @Description  Con status 0 (recibida) suma cada línea al stock de la bodega en la misma transacción.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePurchaseRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *MovementHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.uc.CreatePurchase(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPurchaseResponse(p))
}

// UpdatePurchase godoc
// @Summary      Editar compra
// @Description  Revierte el efecto de la versión anterior y aplica la nueva; falla completo si el stock no alcanza.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID de la compra"
// @Param        body  body      dto.UpdatePurchaseRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [put]
func (h *MovementHandler) UpdatePurchase(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.uc.UpdatePurchase(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewPurchaseResponse(p))
}

// GetPurchase godoc
// @Summary      Obtener compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *MovementHandler) GetPurchase(c *fiber.Ctx) error {
	p, err := h.uc.GetPurchase(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewPurchaseResponse(p))
}

// CreatePurchaseReturn godoc
// @Summary      Devolución de compra
// @Description  Descuenta del stock lo devuelto al proveedor y reduce la línea original.
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "ID de la compra"
// @Param        body  body      dto.CreateReturnRequest  true  "Productos y cantidades"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/returns [post]
func (h *MovementHandler) CreatePurchaseReturn(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	r, err := h.uc.CreatePurchaseReturn(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPurchaseReturnResponse(r))
}

// GetPurchaseReturn godoc
// @Summary      Obtener devolución de compra
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-returns/{id} [get]
func (h *MovementHandler) GetPurchaseReturn(c *fiber.Ctx) error {
	r, err := h.uc.GetPurchaseReturn(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewPurchaseReturnResponse(r))
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// CreateSale godoc
// @Summary      Registrar venta
// @Description  Con status 0 descuenta cada línea del stock; si alguna no alcanza no se persiste nada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSaleRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *MovementHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.UserID = GetUserID(c)
	s, err := h.uc.CreateSale(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSaleResponse(s))
}

// UpdateSale godoc
// @Summary      Editar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID de la venta"
// @Param        body  body      dto.UpdateSaleRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *MovementHandler) UpdateSale(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	s, err := h.uc.UpdateSale(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewSaleResponse(s))
}

// GetSale godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *MovementHandler) GetSale(c *fiber.Ctx) error {
	s, err := h.uc.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewSaleResponse(s))
}

// CreateSalesReturn godoc
// @Summary      Devolución de venta
// @Description  Reingresa al stock lo devuelto por el cliente y recalcula los totales de la venta.
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "ID de la venta"
// @Param        body  body      dto.CreateReturnRequest  true  "Productos y cantidades"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/returns [post]
func (h *MovementHandler) CreateSalesReturn(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	r, err := h.uc.CreateSalesReturn(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSalesReturnResponse(r))
}

// GetSalesReturn godoc
// @Summary      Obtener devolución de venta
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-returns/{id} [get]
func (h *MovementHandler) GetSalesReturn(c *fiber.Ctx) error {
	r, err := h.uc.GetSalesReturn(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewSalesReturnResponse(r))
}

// ── Traslados y bajas ─────────────────────────────────────────────────────────

// CreateTransfer godoc
// @Summary      Trasladar entre bodegas
// @Description  Descuenta del origen y suma al destino cada línea; la cantidad total se conserva.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTransferRequest  true  "Origen, destino y líneas"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *MovementHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	t, err := h.uc.CreateTransfer(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTransferResponse(t))
}

// GetTransfer godoc
// @Summary      Obtener traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *MovementHandler) GetTransfer(c *fiber.Ctx) error {
	t, err := h.uc.GetTransfer(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewTransferResponse(t))
}

// RegisterLostDamaged godoc
// @Summary      Registrar pérdida o daño
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LostDamagedRequest  true  "Producto, bodega, cantidad y motivo"
// @Success      201   {object}  dto.LostDamagedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lost-damaged [post]
func (h *MovementHandler) RegisterLostDamaged(c *fiber.Ctx) error {
	var in dto.LostDamagedRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ld, err := h.uc.RegisterLostDamaged(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLostDamagedResponse(ld))
}
