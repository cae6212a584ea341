package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lfc-estoque/internal/application/dto"
	"github.com/jhoicas/lfc-estoque/internal/application/inventory"
	"github.com/jhoicas/lfc-estoque/pkg/logger"
)

// StockHandler maneja la vista agrupada de inventario, asignaciones y retiradas (protegido).
type StockHandler struct {
	uc  *inventory.StockUseCase
	log *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Inventario agrupado por producto
// @Description  Una fila por producto con la cantidad total y las estanterías donde está guardado.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  false  "Texto a buscar"
// @Param        field  query  string  false  "name | sku | barcode"  default(barcode)
// @Success      200    {object}  dto.GroupedStockResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var in dto.StockSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de búsqueda inválidos"})
	}
	out, err := h.uc.ListGrouped(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar stock a una estantería
// @Description  Suma la cantidad al vínculo (producto, estantería), creándolo si no existe, y al total del producto.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignStockRequest  true  "product_id, shelf_id, quantity"
// @Success      201   {object}  dto.AssignStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.ProductID) == "" || strings.TrimSpace(in.ShelfID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y shelf_id son requeridos"})
	}
	in.CreatedBy = GetUserID(c)
	out, err := h.uc.Assign(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ByProduct godoc
// @Summary      Vínculos de stock de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {object}  dto.ProductStockResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/stock/products/{productId} [get]
func (h *StockHandler) ByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ByProduct(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Withdraw godoc
// @Summary      Retirar stock de un vínculo
// @Description  Resta la cantidad del vínculo y del total del producto; si el vínculo queda en cero se elimina.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del vínculo"
// @Param        body  body  dto.WithdrawStockRequest  true  "quantity"
// @Success      200   {object}  dto.WithdrawStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/withdraw [post]
func (h *StockHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.WithdrawStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.CreatedBy = GetUserID(c)
	out, err := h.uc.Withdraw(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF del inventario agrupado
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        q      query  string  false  "Texto a buscar"
// @Param        field  query  string  false  "name | sku | barcode"  default(barcode)
// @Success      200    {file}  binary
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/stock/report.pdf [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	var in dto.StockSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de búsqueda inválidos"})
	}
	pdf, err := h.uc.Report(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	filename := "inventario-" + time.Now().Format("20060102") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Reconcile godoc
// @Summary      Recalcular totales de productos
// @Description  Recalcula el total cacheado de cada producto a partir de sus vínculos de stock.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/stock/reconcile [post]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.uc.Reconcile(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos de stock
// @Description  Asignaciones y retiradas registradas, más reciente primero. from y to en RFC3339.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtra por producto"
// @Param        shelf_id    query  string  false  "Filtra por estantería"
// @Param        from        query  string  false  "Desde (inclusive, RFC3339)"
// @Param        to          query  string  false  "Hasta (exclusive, RFC3339)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Desplazamiento"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	var in dto.MovementSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de búsqueda inválidos"})
	}
	var err error
	if in.From, err = parseTimeQuery(c, "from"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe estar en formato RFC3339"})
	}
	if in.To, err = parseTimeQuery(c, "to"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe estar en formato RFC3339"})
	}
	out, err := h.uc.Movements(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
